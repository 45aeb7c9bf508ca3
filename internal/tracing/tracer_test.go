// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"context"
	"strings"
	"testing"

	"github.com/canonical/agency-service/internal/logging"
)

func TestNewTracerDisabled(t *testing.T) {
	tracer := NewTracer(NewConfig(false, "", "", logging.NewNoopLogger()))

	ctx, span := tracer.Start(context.Background(), "test.span")
	defer span.End()

	if ctx == nil {
		t.Fatal("expected context")
	}

	if span.SpanContext().IsValid() {
		t.Error("expected a non recording span when tracing is disabled")
	}
}

func TestNewNoopTracer(t *testing.T) {
	tracer := NewNoopTracer()

	_, span := tracer.Start(context.Background(), "test.noop")
	defer span.End()

	if span.IsRecording() {
		t.Error("noop tracer must not record spans")
	}
}

func TestConfigSampler(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  string
	}{
		{name: "default keeps every trace", ratio: 1, want: "ParentBased{root:AlwaysOnSampler"},
		{name: "zero keeps every trace", ratio: 0, want: "ParentBased{root:AlwaysOnSampler"},
		{name: "ratio", ratio: 0.25, want: "ParentBased{root:TraceIDRatioBased{0.25}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(true, "", "", logging.NewNoopLogger())
			cfg.SampleRatio = tt.ratio

			if got := cfg.sampler().Description(); !strings.HasPrefix(got, tt.want) {
				t.Errorf("expected sampler %s, got %s", tt.want, got)
			}
		})
	}
}

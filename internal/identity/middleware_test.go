// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"
)

//go:generate mockgen -build_flags=--mod=mod -package identity -destination ./mock_logger.go -source=../logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package identity -destination ./mock_monitor.go -source=../monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package identity -destination ./mock_tracing.go -source=../tracing/interfaces.go

func TestMiddleware_HTTPMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		preset     string
		expectedID string
		expectedOK bool
	}{
		{name: "header present", header: "subject-1", expectedID: "subject-1", expectedOK: true},
		{name: "header missing", expectedOK: false},
		{name: "existing subject wins", header: "subject-1", preset: "subject-2", expectedID: "subject-2", expectedOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "identity.Middleware.HTTPMiddleware").DoAndReturn(
				func(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
					return ctx, trace.SpanFromContext(ctx)
				},
			)

			var gotID string
			var gotOK bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotID, gotOK = SubjectIDFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/agency", nil)
			if tt.header != "" {
				req.Header.Set(HeaderName, tt.header)
			}
			if tt.preset != "" {
				req = req.WithContext(WithSubjectID(req.Context(), tt.preset))
			}

			NewMiddleware(mockTracer, mockMonitor, mockLogger).HTTPMiddleware(next).ServeHTTP(httptest.NewRecorder(), req)

			if gotOK != tt.expectedOK || gotID != tt.expectedID {
				t.Fatalf("expected (%q, %v), got (%q, %v)", tt.expectedID, tt.expectedOK, gotID, gotOK)
			}
		})
	}
}

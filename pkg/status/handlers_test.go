// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/agency-service/internal/version"
)

//go:generate mockgen -build_flags=--mod=mod -package status -destination ./mock_status.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package status -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package status -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package status -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func TestHandler_Status(t *testing.T) {
	tests := []struct {
		name           string
		pingErr        error
		expectedStatus int
		expectedState  string
	}{
		{name: "healthy", expectedStatus: http.StatusOK, expectedState: "ok"},
		{name: "database down", pingErr: errors.New("connection refused"), expectedStatus: http.StatusServiceUnavailable, expectedState: "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			db := NewMockPingerInterface(ctrl)
			tracer := NewMockTracingInterface(ctrl)
			monitor := NewMockMonitorInterface(ctrl)
			logger := NewMockLoggerInterface(ctrl)

			tracer.EXPECT().Start(gomock.Any(), "status.API.status").Return(context.Background(), trace.SpanFromContext(context.Background()))
			db.EXPECT().Ping(gomock.Any()).Return(tt.pingErr)

			availability := 1.0
			if tt.pingErr != nil {
				availability = 0
				logger.EXPECT().Warnf(gomock.Any(), "database", tt.pingErr)
			}
			monitor.EXPECT().SetDependencyAvailability(map[string]string{"component": "database"}, availability).Return(nil)

			mux := chi.NewMux()
			NewAPI(map[string]PingerInterface{"database": db}, tracer, monitor, logger).RegisterEndpoints(mux)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v0/status", nil))

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			var resp struct {
				Data Status `json:"data"`
			}
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Data.Status != tt.expectedState || resp.Data.Dependencies["database"] != (tt.pingErr == nil) {
				t.Errorf("unexpected status %+v", resp.Data)
			}
		})
	}
}

func TestHandler_Version(t *testing.T) {
	ctrl := gomock.NewController(t)

	tracer := NewMockTracingInterface(ctrl)
	tracer.EXPECT().Start(gomock.Any(), "status.API.version").Return(context.Background(), trace.SpanFromContext(context.Background()))

	mux := chi.NewMux()
	NewAPI(nil, tracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl)).RegisterEndpoints(mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v0/version", nil))

	var resp struct {
		Data BuildInfo `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Version != version.Version {
		t.Errorf("expected version %s, got %s", version.Version, resp.Data.Version)
	}
}

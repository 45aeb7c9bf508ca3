// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package hostrouter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"
)

//go:generate mockgen -build_flags=--mod=mod -package hostrouter -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package hostrouter -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package hostrouter -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func TestMiddlewareRoute(t *testing.T) {
	tests := []struct {
		name             string
		host             string
		target           string
		expectedStatus   int
		expectedLocation string
		expectedURI      string
		expectedFrom     string
		traced           bool
	}{
		{
			name:         "subdomain rewrite",
			host:         "acme.example.com",
			target:       "/offer?ref=1",
			expectedURI:  "/acme/offer?ref=1",
			expectedFrom: "/offer?ref=1",
			traced:       true,
		},
		{
			name:             "auth redirect",
			host:             "example.com",
			target:           "/sign-up",
			expectedStatus:   http.StatusTemporaryRedirect,
			expectedLocation: "/agency/sign-in",
			traced:           true,
		},
		{
			name:         "landing rewrite",
			host:         "example.com",
			target:       "/?utm=1",
			expectedURI:  "/site",
			expectedFrom: "/?utm=1",
			traced:       true,
		},
		{
			name:         "pass through",
			host:         "example.com",
			target:       "/agency?plan=price_basic",
			expectedURI:  "/agency?plan=price_basic",
			expectedFrom: "/agency?plan=price_basic",
			traced:       true,
		},
		{
			name:        "untouched",
			host:        "example.com",
			target:      "/pricing",
			expectedURI: "/pricing",
			traced:      true,
		},
		{
			name:        "exempt api path on subdomain",
			host:        "acme.example.com",
			target:      "/api/v0/me",
			expectedURI: "/api/v0/me",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockLogger := NewMockLoggerInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)

			if tt.traced {
				mockTracer.EXPECT().Start(gomock.Any(), "hostrouter.Middleware.Route").
					Return(context.Background(), trace.SpanFromContext(context.Background()))
			}
			mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

			var seenURI, seenFrom string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seenURI = r.URL.RequestURI()
				seenFrom = r.Header.Get(RewrittenFromHeader)
				w.WriteHeader(http.StatusOK)
			})

			m := NewMiddleware(
				NewRouter("example.com", "/site", "/agency/sign-in"),
				[]string{"/api", "/webhooks", "/metrics"},
				mockTracer,
				mockMonitor,
				mockLogger,
			)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			req.Host = tt.host
			w := httptest.NewRecorder()

			m.Route()(next).ServeHTTP(w, req)

			if tt.expectedStatus != 0 {
				if w.Code != tt.expectedStatus {
					t.Fatalf("expected status %d, got %d", tt.expectedStatus, w.Code)
				}
				if loc := w.Header().Get("Location"); loc != tt.expectedLocation {
					t.Errorf("expected location %q, got %q", tt.expectedLocation, loc)
				}
				return
			}

			if seenURI != tt.expectedURI {
				t.Errorf("expected handler to see %q, got %q", tt.expectedURI, seenURI)
			}
			if seenFrom != tt.expectedFrom {
				t.Errorf("expected rewritten-from %q, got %q", tt.expectedFrom, seenFrom)
			}
		})
	}
}

// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/agency-service/internal/identity"
	"github.com/canonical/agency-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package kratos -destination ./mock_logger.go -source=../logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package kratos -destination ./mock_monitor.go -source=../monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package kratos -destination ./mock_tracing.go -source=../tracing/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package kratos -destination ./mock_cache.go -source=../cache/interfaces.go

const identityJSON = `{
	"id": "subject-1",
	"schema_id": "default",
	"schema_url": "http://kratos/schemas/default",
	"state": "active",
	"traits": {"email": "A@B.com", "name": {"first": "Ada", "last": "Lovelace"}, "picture": "https://img/ada.png"},
	"verifiable_addresses": [{"value": "A@B.com", "verified": true, "via": "email", "status": "completed"}],
	"metadata_admin": {"role": "SUBACCOUNT_USER", "plan": "legacy"}
}`

type testSetup struct {
	tracer  *MockTracingInterface
	monitor *MockMonitorInterface
	logger  *MockLoggerInterface
	cache   *MockSubjectCacheInterface
}

func newTestSetup(ctrl *gomock.Controller) *testSetup {
	s := &testSetup{
		tracer:  NewMockTracingInterface(ctrl),
		monitor: NewMockMonitorInterface(ctrl),
		logger:  NewMockLoggerInterface(ctrl),
		cache:   NewMockSubjectCacheInterface(ctrl),
	}

	s.tracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		},
	).AnyTimes()
	s.monitor.EXPECT().SetDependencyAvailability(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return s
}

func TestClient_CurrentSubject(t *testing.T) {
	tests := []struct {
		name        string
		subjectID   string
		handler     http.HandlerFunc
		setupMocks  func(*testSetup, *gomock.Controller)
		expected    *types.Subject
		expectedErr error
	}{
		{
			name: "no subject in context",
		},
		{
			name:      "identity found",
			subjectID: "subject-1",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/admin/identities/subject-1" {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, identityJSON)
			},
			setupMocks: func(s *testSetup, _ *gomock.Controller) {
				s.cache.EXPECT().Get(gomock.Any(), "subject-1").Return(nil, false)
				s.cache.EXPECT().Set(gomock.Any(), gomock.Any())
			},
			expected: &types.Subject{
				ID:        "subject-1",
				Email:     "a@b.com",
				Name:      "Ada Lovelace",
				AvatarURL: "https://img/ada.png",
				Role:      types.RoleSubAccountUser,
			},
		},
		{
			name:      "cache hit",
			subjectID: "subject-1",
			handler: func(w http.ResponseWriter, r *http.Request) {
				t.Error("identity service must not be called on a cache hit")
			},
			setupMocks: func(s *testSetup, _ *gomock.Controller) {
				s.cache.EXPECT().Get(gomock.Any(), "subject-1").Return(&types.Subject{ID: "subject-1", Email: "a@b.com"}, true)
			},
			expected: &types.Subject{ID: "subject-1", Email: "a@b.com"},
		},
		{
			name:      "unknown identity is unauthenticated",
			subjectID: "subject-1",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusNotFound)
				_, _ = io.WriteString(w, `{"error":{"code":404,"message":"not found"}}`)
			},
			setupMocks: func(s *testSetup, ctrl *gomock.Controller) {
				security := NewMockSecurityLoggerInterface(ctrl)
				security.EXPECT().AuthnFailure(gomock.Any())
				s.logger.EXPECT().Security().Return(security)
				s.cache.EXPECT().Get(gomock.Any(), "subject-1").Return(nil, false)
			},
		},
		{
			name:      "identity service failing",
			subjectID: "subject-1",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			setupMocks: func(s *testSetup, _ *gomock.Controller) {
				s.cache.EXPECT().Get(gomock.Any(), "subject-1").Return(nil, false)
			},
			expectedErr: ErrIdentityServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s := newTestSetup(ctrl)
			if tt.setupMocks != nil {
				tt.setupMocks(s, ctrl)
			}

			handler := tt.handler
			if handler == nil {
				handler = func(w http.ResponseWriter, r *http.Request) { t.Error("unexpected call") }
			}
			srv := httptest.NewServer(handler)
			defer srv.Close()

			c := NewClient(srv.URL, s.cache, s.tracer, s.monitor, s.logger)

			ctx := context.Background()
			if tt.subjectID != "" {
				ctx = identity.WithSubjectID(ctx, tt.subjectID)
			}

			subject, err := c.CurrentSubject(ctx)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.expected == nil {
				if subject != nil {
					t.Fatalf("expected no subject, got %+v", subject)
				}
				return
			}

			if subject == nil || *subject != *tt.expected {
				t.Fatalf("expected %+v, got %+v", tt.expected, subject)
			}
		})
	}
}

func TestClient_GetSubjectTransportFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := newTestSetup(ctrl)
	s.cache.EXPECT().Get(gomock.Any(), "subject-1").Return(nil, false)

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := NewClient(srv.URL, s.cache, s.tracer, s.monitor, s.logger)

	if _, err := c.GetSubject(context.Background(), "subject-1"); !errors.Is(err, ErrIdentityServiceUnavailable) {
		t.Fatalf("expected ErrIdentityServiceUnavailable, got %v", err)
	}
}

func TestClient_UpdateSubjectMetadata(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := newTestSetup(ctrl)
	s.cache.EXPECT().Delete(gomock.Any(), "subject-1")

	var (
		patch   []map[string]interface{}
		methods []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		w.Header().Set("Content-Type", "application/json")

		if r.Method == http.MethodPatch {
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				t.Errorf("failed to decode patch: %v", err)
			}
		}

		_, _ = io.WriteString(w, identityJSON)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, s.cache, s.tracer, s.monitor, s.logger)

	if err := c.UpdateSubjectMetadata(context.Background(), "subject-1", types.RoleAgencyAdmin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// no read of the current metadata, a concurrent writer of another key is not overwritten
	if len(methods) != 1 || methods[0] != http.MethodPatch {
		t.Fatalf("expected a single PATCH, got %v", methods)
	}

	if len(patch) != 1 || patch[0]["op"] != "add" || patch[0]["path"] != "/metadata_admin/role" {
		t.Fatalf("unexpected patch %v", patch)
	}
	if patch[0]["value"] != string(types.RoleAgencyAdmin) {
		t.Errorf("expected role %s, got %v", types.RoleAgencyAdmin, patch[0]["value"])
	}
}

func TestClient_UpdateSubjectMetadataWithoutAdminMetadata(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := newTestSetup(ctrl)
	s.cache.EXPECT().Delete(gomock.Any(), "subject-1")
	s.logger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()

	var patches [][]map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var patch []map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			t.Errorf("failed to decode patch: %v", err)
		}
		patches = append(patches, patch)

		if len(patches) == 1 {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error": {"code": 400, "message": "missing path"}}`)
			return
		}

		_, _ = io.WriteString(w, identityJSON)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, s.cache, s.tracer, s.monitor, s.logger)

	if err := c.UpdateSubjectMetadata(context.Background(), "subject-1", types.RoleSubAccountGuest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(patches) != 2 {
		t.Fatalf("expected two patches, got %d", len(patches))
	}

	second := patches[1]
	if len(second) != 1 || second[0]["path"] != "/metadata_admin" {
		t.Fatalf("unexpected patch %v", second)
	}

	value, _ := second[0]["value"].(map[string]interface{})
	if value["role"] != string(types.RoleSubAccountGuest) {
		t.Errorf("expected role %s, got %v", types.RoleSubAccountGuest, value["role"])
	}
}

func TestClient_UpdateSubjectMetadataUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := newTestSetup(ctrl)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, s.cache, s.tracer, s.monitor, s.logger)

	if err := c.UpdateSubjectMetadata(context.Background(), "subject-1", types.RoleAgencyAdmin); !errors.Is(err, ErrIdentityServiceUnavailable) {
		t.Fatalf("expected ErrIdentityServiceUnavailable, got %v", err)
	}
}

// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/agency-service/internal/authorization"
	httpTypes "github.com/canonical/agency-service/internal/http/types"
	"github.com/canonical/agency-service/internal/types"
)

type apiMocks struct {
	service *MockServiceInterface
	gate    *MockGateInterface
	tracer  *MockTracingInterface
	monitor *MockMonitorInterface
	logger  *MockLoggerInterface
}

func setupAPI(t *testing.T) (*chi.Mux, *apiMocks) {
	ctrl := gomock.NewController(t)

	m := &apiMocks{
		service: NewMockServiceInterface(ctrl),
		gate:    NewMockGateInterface(ctrl),
		tracer:  NewMockTracingInterface(ctrl),
		monitor: NewMockMonitorInterface(ctrl),
		logger:  NewMockLoggerInterface(ctrl),
	}

	m.tracer.EXPECT().Start(gomock.Any(), gomock.Any()).
		Return(context.Background(), trace.SpanFromContext(context.Background())).AnyTimes()

	mux := chi.NewMux()
	NewAPI(m.service, m.gate, m.tracer, m.monitor, m.logger).RegisterEndpoints(mux)

	return mux, m
}

func TestHandler_Accept(t *testing.T) {
	agencyID := "agency-1"
	subject := &types.Subject{ID: "s", Email: "jane@example.com"}

	tests := []struct {
		name           string
		setupMocks     func(*apiMocks)
		expectedStatus int
		expectedState  string
	}{
		{
			name: "accepted",
			setupMocks: func(m *apiMocks) {
				m.gate.EXPECT().Subject(gomock.Any()).Return(subject, nil)
				m.service.EXPECT().AcceptWithResult(gomock.Any(), subject).Return(&Result{State: Accepted, AgencyID: &agencyID}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedState:  "ACCEPTED",
		},
		{
			name: "no session",
			setupMocks: func(m *apiMocks) {
				m.gate.EXPECT().Subject(gomock.Any()).Return(nil, authorization.ErrUnauthenticated)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "store unavailable",
			setupMocks: func(m *apiMocks) {
				m.gate.EXPECT().Subject(gomock.Any()).Return(subject, nil)
				m.service.EXPECT().AcceptWithResult(gomock.Any(), subject).Return(nil, fmt.Errorf("%w: timeout", ErrServiceUnavailable))
				m.logger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, m := setupAPI(t)
			tt.setupMocks(m)

			req := httptest.NewRequest(http.MethodPost, "/api/v0/invitations/accept", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.expectedState == "" {
				return
			}

			var body struct {
				Data AcceptResponse `json:"data"`
			}
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Data.State != tt.expectedState || body.Data.AgencyID == nil || *body.Data.AgencyID != agencyID {
				t.Errorf("unexpected body %+v", body.Data)
			}
		})
	}
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*apiMocks)
		expectedStatus int
	}{
		{
			name: "created",
			body: `{"email":"jane@example.com","role":"AGENCY_ADMIN"}`,
			setupMocks: func(m *apiMocks) {
				m.gate.EXPECT().AuthorizeAgency(gomock.Any(), "agency-1", authorization.ActionCreate).Return(&authorization.Caller{}, nil)
				m.service.EXPECT().Create(gomock.Any(), "agency-1", "jane@example.com", types.RoleAgencyAdmin).
					Return(&Invite{Invitation: &types.Invitation{ID: "inv-1"}, Link: "https://link"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "not authorized",
			body: `{"email":"jane@example.com","role":"AGENCY_ADMIN"}`,
			setupMocks: func(m *apiMocks) {
				m.gate.EXPECT().AuthorizeAgency(gomock.Any(), "agency-1", authorization.ActionCreate).Return(nil, authorization.ErrUnauthorized)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "invalid payload",
			body: `{"email":"jane"}`,
			setupMocks: func(m *apiMocks) {
				m.gate.EXPECT().AuthorizeAgency(gomock.Any(), gomock.Any(), gomock.Any()).Return(&authorization.Caller{}, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "owner role",
			body: `{"email":"jane@example.com","role":"AGENCY_OWNER"}`,
			setupMocks: func(m *apiMocks) {
				m.gate.EXPECT().AuthorizeAgency(gomock.Any(), gomock.Any(), gomock.Any()).Return(&authorization.Caller{}, nil)
				m.service.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, ErrOwnerInvitation)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invited elsewhere",
			body: `{"email":"jane@example.com","role":"SUBACCOUNT_USER"}`,
			setupMocks: func(m *apiMocks) {
				m.gate.EXPECT().AuthorizeAgency(gomock.Any(), gomock.Any(), gomock.Any()).Return(&authorization.Caller{}, nil)
				m.service.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, ErrInvitedElsewhere)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "unexpected failure",
			body: `{"email":"jane@example.com","role":"SUBACCOUNT_USER"}`,
			setupMocks: func(m *apiMocks) {
				m.gate.EXPECT().AuthorizeAgency(gomock.Any(), gomock.Any(), gomock.Any()).Return(&authorization.Caller{}, nil)
				m.service.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("boom"))
				m.logger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, m := setupAPI(t)
			tt.setupMocks(m)

			req := httptest.NewRequest(http.MethodPost, "/api/v0/agencies/agency-1/invitations", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}

			if w.Code >= http.StatusBadRequest {
				var body httpTypes.ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&body); err != nil || body.Status != w.Code {
					t.Errorf("unexpected error body %+v %v", body, err)
				}
			}
		})
	}
}

func TestHandler_ListAndRevoke(t *testing.T) {
	mux, m := setupAPI(t)

	m.gate.EXPECT().AuthorizeAgency(gomock.Any(), "agency-1", authorization.ActionView).Return(&authorization.Caller{}, nil)
	m.service.EXPECT().List(gomock.Any(), "agency-1").Return([]*types.Invitation{{ID: "inv-1"}}, nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v0/agencies/agency-1/invitations", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	m.gate.EXPECT().AuthorizeAgency(gomock.Any(), "agency-1", authorization.ActionDelete).Return(&authorization.Caller{}, nil).Times(2)
	m.service.EXPECT().Revoke(gomock.Any(), "agency-1", "jane@example.com").Return(nil)
	m.service.EXPECT().Revoke(gomock.Any(), "agency-1", "nobody@example.com").Return(ErrInvitationNotFound)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v0/agencies/agency-1/invitations/jane@example.com", nil))
	if w.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v0/agencies/agency-1/invitations/nobody@example.com", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

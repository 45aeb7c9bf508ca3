// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/agency-service/internal/authorization"
	httpTypes "github.com/canonical/agency-service/internal/http/types"
	"github.com/canonical/agency-service/internal/storage"
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

func staffCaller() *authorization.Caller {
	return &authorization.Caller{
		Subject: &types.Subject{ID: "subject-1", Email: "owner@example.com", Role: types.RoleAgencyOwner},
		User:    testOwner,
	}
}

func TestHandler_UpsertAgency(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*apiMocks)
		expectedStatus int
	}{
		{
			name: "created",
			body: `{"name":"Acme","company_email":"owner@example.com"}`,
			setupMocks: func(m *apiMocks) {
				m.gate.EXPECT().Subject(gomock.Any()).Return(testSubject, nil)
				m.service.EXPECT().UpsertAgency(gomock.Any(), testSubject, gomock.Any()).Return(testAgency, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "updated",
			body: `{"id":"agency-1","name":"Acme","company_email":"owner@example.com"}`,
			setupMocks: func(m *apiMocks) {
				m.gate.EXPECT().Subject(gomock.Any()).Return(testSubject, nil)
				m.gate.EXPECT().AuthorizeAgency(gomock.Any(), "agency-1", authorization.ActionEdit).Return(staffCaller(), nil)
				m.service.EXPECT().UpsertAgency(gomock.Any(), testSubject, gomock.Any()).Return(testAgency, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "update of a foreign agency",
			body: `{"id":"agency-2","name":"Acme","company_email":"owner@example.com"}`,
			setupMocks: func(m *apiMocks) {
				m.gate.EXPECT().Subject(gomock.Any()).Return(testSubject, nil)
				m.gate.EXPECT().AuthorizeAgency(gomock.Any(), "agency-2", authorization.ActionEdit).Return(nil, authorization.ErrUnauthorized)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "missing company email",
			body: `{"name":"Acme"}`,
			setupMocks: func(m *apiMocks) {
				m.gate.EXPECT().Subject(gomock.Any()).Return(testSubject, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "already member",
			body: `{"name":"Acme","company_email":"owner@example.com"}`,
			setupMocks: func(m *apiMocks) {
				m.gate.EXPECT().Subject(gomock.Any()).Return(testSubject, nil)
				m.service.EXPECT().UpsertAgency(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, ErrAlreadyMember)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "no session",
			body: `{}`,
			setupMocks: func(m *apiMocks) {
				m.gate.EXPECT().Subject(gomock.Any()).Return(nil, authorization.ErrUnauthenticated)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, m := setupAPI(t)
			tt.setupMocks(m)

			req := httptest.NewRequest(http.MethodPost, "/api/v0/agencies", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestHandler_UpdateAgency(t *testing.T) {
	mux, m := setupAPI(t)

	m.gate.EXPECT().AuthorizeAgency(gomock.Any(), "agency-1", authorization.ActionEdit).Return(staffCaller(), nil)
	m.service.EXPECT().UpdateAgency(gomock.Any(), testOwner, gomock.Any(), []string{"name", "white_label", "plan"}).DoAndReturn(
		func(_ context.Context, _ *types.User, a *types.Agency, _ []string) (*types.Agency, error) {
			if a.ID != "agency-1" || a.Name != "Acme Corp" || !a.WhiteLabel || *a.Plan != types.PlanUnlimited {
				t.Errorf("unexpected agency %+v", a)
			}
			return a, nil
		},
	)

	body := `{"name":"Acme Corp","white_label":true,"plan":"price_unlimited"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v0/agencies/agency-1", strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	m.gate.EXPECT().AuthorizeAgency(gomock.Any(), "agency-1", authorization.ActionEdit).Return(staffCaller(), nil)

	req = httptest.NewRequest(http.MethodPatch, "/api/v0/agencies/agency-1", strings.NewReader(`{"plan":"price_gold"}`))
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestHandler_DeleteAgency(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*apiMocks)
		expectedStatus int
	}{
		{
			name: "deleted",
			setupMocks: func(m *apiMocks) {
				m.gate.EXPECT().AuthorizeAgency(gomock.Any(), "agency-1", authorization.ActionDelete).Return(staffCaller(), nil)
				m.service.EXPECT().DeleteAgency(gomock.Any(), "agency-1").Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "not found",
			setupMocks: func(m *apiMocks) {
				m.gate.EXPECT().AuthorizeAgency(gomock.Any(), "agency-1", authorization.ActionDelete).Return(staffCaller(), nil)
				m.service.EXPECT().DeleteAgency(gomock.Any(), "agency-1").Return(ErrAgencyNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "store unavailable",
			setupMocks: func(m *apiMocks) {
				m.gate.EXPECT().AuthorizeAgency(gomock.Any(), "agency-1", authorization.ActionDelete).Return(staffCaller(), nil)
				m.service.EXPECT().DeleteAgency(gomock.Any(), "agency-1").Return(storage.ErrTransient)
				m.logger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name: "unexpected error",
			setupMocks: func(m *apiMocks) {
				m.gate.EXPECT().AuthorizeAgency(gomock.Any(), "agency-1", authorization.ActionDelete).Return(staffCaller(), nil)
				m.service.EXPECT().DeleteAgency(gomock.Any(), "agency-1").Return(errors.New("boom"))
				m.logger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, m := setupAPI(t)
			tt.setupMocks(m)

			req := httptest.NewRequest(http.MethodDelete, "/api/v0/agencies/agency-1", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestHandler_UpsertSubAccount(t *testing.T) {
	mux, m := setupAPI(t)

	m.gate.EXPECT().AuthorizeAgency(gomock.Any(), "agency-1", authorization.ActionCreate).Return(staffCaller(), nil)
	m.service.EXPECT().UpsertSubAccount(gomock.Any(), testOwner, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *types.User, sa *types.SubAccount) (*types.SubAccount, error) {
			if sa.AgencyID != "agency-1" {
				t.Errorf("agency id must come from the path, got %s", sa.AgencyID)
			}
			sa.ID = "sub-1"
			return sa, nil
		},
	)

	body := `{"name":"Shop","company_email":"shop@example.com","agency_id":"agency-2"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v0/agencies/agency-1/subaccounts", strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}

	var resp struct {
		Data types.SubAccount `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.ID != "sub-1" {
		t.Errorf("unexpected subaccount %+v", resp.Data)
	}
}

func TestHandler_DeleteSubAccount(t *testing.T) {
	sub := &types.SubAccount{ID: "sub-1", AgencyID: "agency-1", Name: "Shop"}

	tests := []struct {
		name           string
		setupMocks     func(*apiMocks)
		expectedStatus int
	}{
		{
			name: "deleted by staff",
			setupMocks: func(m *apiMocks) {
				m.gate.EXPECT().AuthorizeSubAccount(gomock.Any(), "sub-1", authorization.ActionDelete).Return(staffCaller(), sub, nil)
				m.service.EXPECT().DeleteSubAccount(gomock.Any(), testOwner, sub).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "guest with access cannot delete",
			setupMocks: func(m *apiMocks) {
				caller := &authorization.Caller{
					Subject: &types.Subject{ID: "guest-1", Email: "guest@example.com", Role: types.RoleSubAccountGuest},
					User:    &types.User{ID: "guest-1", Email: "guest@example.com", Role: types.RoleSubAccountGuest},
				}
				m.gate.EXPECT().AuthorizeSubAccount(gomock.Any(), "sub-1", authorization.ActionDelete).Return(caller, sub, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "subaccount user cannot delete",
			setupMocks: func(m *apiMocks) {
				caller := &authorization.Caller{User: &types.User{ID: "user-2", Role: types.RoleSubAccountUser}}
				m.gate.EXPECT().AuthorizeSubAccount(gomock.Any(), "sub-1", authorization.ActionDelete).Return(caller, sub, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "denied by the gate",
			setupMocks: func(m *apiMocks) {
				m.gate.EXPECT().AuthorizeSubAccount(gomock.Any(), "sub-1", authorization.ActionDelete).Return(nil, nil, authorization.ErrUnauthorized)
			},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, m := setupAPI(t)
			tt.setupMocks(m)

			req := httptest.NewRequest(http.MethodDelete, "/api/v0/subaccounts/sub-1", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestHandler_ChangePermission(t *testing.T) {
	sub := &types.SubAccount{ID: "sub-1", AgencyID: "agency-1"}

	tests := []struct {
		name           string
		body           string
		setupMocks     func(*apiMocks)
		expectedStatus int
	}{
		{
			name: "granted by staff",
			body: `{"email":"sam@example.com","access":true}`,
			setupMocks: func(m *apiMocks) {
				m.gate.EXPECT().AuthorizeSubAccount(gomock.Any(), "sub-1", authorization.ActionEdit).Return(staffCaller(), sub, nil)
				m.service.EXPECT().ChangePermission(gomock.Any(), testOwner, sub, "sam@example.com", true).Return(&types.Permission{ID: "p-1"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "member cannot change permissions",
			body: `{"email":"sam@example.com","access":true}`,
			setupMocks: func(m *apiMocks) {
				caller := &authorization.Caller{User: &types.User{ID: "user-2", Role: types.RoleSubAccountUser}}
				m.gate.EXPECT().AuthorizeSubAccount(gomock.Any(), "sub-1", authorization.ActionEdit).Return(caller, sub, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "access is required",
			body: `{"email":"sam@example.com"}`,
			setupMocks: func(m *apiMocks) {
				m.gate.EXPECT().AuthorizeSubAccount(gomock.Any(), "sub-1", authorization.ActionEdit).Return(staffCaller(), sub, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "user outside the agency",
			body: `{"email":"eve@example.com","access":false}`,
			setupMocks: func(m *apiMocks) {
				m.gate.EXPECT().AuthorizeSubAccount(gomock.Any(), "sub-1", authorization.ActionEdit).Return(staffCaller(), sub, nil)
				m.service.EXPECT().ChangePermission(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), false).Return(nil, ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, m := setupAPI(t)
			tt.setupMocks(m)

			req := httptest.NewRequest(http.MethodPut, "/api/v0/subaccounts/sub-1/permissions", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestHandler_TeamMembers(t *testing.T) {
	mux, m := setupAPI(t)

	m.gate.EXPECT().AuthorizeAgency(gomock.Any(), "agency-1", authorization.ActionEdit).Return(staffCaller(), nil)
	m.service.EXPECT().UpdateTeamMember(gomock.Any(), testOwner, "agency-1", &types.User{ID: "user-2", Role: types.RoleAgencyAdmin}, []string{"role"}).
		Return(&types.User{ID: "user-2", Role: types.RoleAgencyAdmin}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/v0/agencies/agency-1/users/user-2", strings.NewReader(`{"role":"AGENCY_ADMIN"}`))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	m.gate.EXPECT().AuthorizeAgency(gomock.Any(), "agency-1", authorization.ActionDelete).Return(staffCaller(), nil)
	m.service.EXPECT().RemoveTeamMember(gomock.Any(), testOwner, "agency-1", "subject-1").Return(ErrOwnerChange)

	req = httptest.NewRequest(http.MethodDelete, "/api/v0/agencies/agency-1/users/subject-1", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, w.Code)
	}
}

func TestHandler_Me(t *testing.T) {
	mux, m := setupAPI(t)

	m.gate.EXPECT().Subject(gomock.Any()).Return(testSubject, nil)
	m.service.EXPECT().GetUserDetails(gomock.Any(), testSubject.Email).Return(nil, ErrUserNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v0/me", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}

	var resp httpTypes.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != ErrUserNotFound.Error() {
		t.Errorf("unexpected message %q", resp.Message)
	}

	m.gate.EXPECT().Subject(gomock.Any()).Return(testSubject, nil)
	m.service.EXPECT().InitUser(gomock.Any(), testSubject, types.RoleAgencyOwner).Return(nil, ErrRoleChange)

	req = httptest.NewRequest(http.MethodPut, "/api/v0/me", strings.NewReader(`{"role":"AGENCY_OWNER"}`))
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}

func TestHandler_Workspaces(t *testing.T) {
	mux, m := setupAPI(t)

	caller := staffCaller()
	m.gate.EXPECT().AuthorizeAgency(gomock.Any(), "agency-1", authorization.ActionView).Return(caller, nil)
	m.service.EXPECT().AgencyWorkspace(gomock.Any(), caller, "agency-1").
		Return(NewAgencyWorkspace(testAgency, nil, nil, NewViewer(testOwner, nil)), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v0/agencies/agency-1/sidebar", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp struct {
		Data struct {
			Kind string `json:"kind"`
			Logo string `json:"logo"`
		} `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Kind != string(AgencyKind) || resp.Data.Logo != DefaultLogo {
		t.Errorf("unexpected workspace %+v", resp.Data)
	}

	m.gate.EXPECT().AuthorizeSubAccount(gomock.Any(), "sub-9", authorization.ActionView).Return(nil, nil, authorization.ErrUnauthorized)

	req = httptest.NewRequest(http.MethodGet, "/api/v0/subaccounts/sub-9/sidebar", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}

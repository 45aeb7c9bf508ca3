// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/agency-service/internal/types"
	"github.com/canonical/agency-service/pkg/tenant"
)

//go:generate mockgen -build_flags=--mod=mod -package onboarding -destination ./mock_onboarding.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package onboarding -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package onboarding -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package onboarding -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

type serviceMocks struct {
	invitations *MockInvitationServiceInterface
	tenants     *MockTenantServiceInterface
	tracer      *MockTracingInterface
	monitor     *MockMonitorInterface
	logger      *MockLoggerInterface
	security    *MockSecurityLoggerInterface
}

func setupService(t *testing.T) (*Service, *serviceMocks) {
	ctrl := gomock.NewController(t)

	m := &serviceMocks{
		invitations: NewMockInvitationServiceInterface(ctrl),
		tenants:     NewMockTenantServiceInterface(ctrl),
		tracer:      NewMockTracingInterface(ctrl),
		monitor:     NewMockMonitorInterface(ctrl),
		logger:      NewMockLoggerInterface(ctrl),
		security:    NewMockSecurityLoggerInterface(ctrl),
	}

	m.tracer.EXPECT().Start(gomock.Any(), gomock.Any()).
		Return(context.Background(), trace.SpanFromContext(context.Background())).AnyTimes()
	m.logger.EXPECT().Security().Return(m.security).AnyTimes()

	return NewService(m.invitations, m.tenants, m.tracer, m.monitor, m.logger), m
}

func strPtr(s string) *string {
	return &s
}

var subject = &types.Subject{ID: "subject-1", Email: "jane@example.com"}

func details(role types.Role, permissions ...*types.Permission) *types.UserDetails {
	return &types.UserDetails{
		User:        types.User{ID: "subject-1", Email: "jane@example.com", Role: role, AgencyID: strPtr("agency-1")},
		Permissions: permissions,
	}
}

func TestService_ResolveAgency(t *testing.T) {
	tests := []struct {
		name             string
		query            Query
		setupMocks       func(*serviceMocks)
		expectedRedirect string
		expectPrompt     bool
		expectedErr      error
	}{
		{
			name: "no agency prompts for one",
			setupMocks: func(m *serviceMocks) {
				m.invitations.EXPECT().Accept(gomock.Any(), subject).Return(nil, nil)
			},
			expectPrompt: true,
		},
		{
			name: "owner lands on the agency",
			setupMocks: func(m *serviceMocks) {
				m.invitations.EXPECT().Accept(gomock.Any(), subject).Return(strPtr("agency-1"), nil)
				m.tenants.EXPECT().GetUserDetails(gomock.Any(), "jane@example.com").Return(details(types.RoleAgencyOwner), nil)
			},
			expectedRedirect: "/agency/agency-1",
		},
		{
			name:  "plan goes to billing",
			query: Query{Plan: "price_basic"},
			setupMocks: func(m *serviceMocks) {
				m.invitations.EXPECT().Accept(gomock.Any(), subject).Return(strPtr("agency-1"), nil)
				m.tenants.EXPECT().GetUserDetails(gomock.Any(), gomock.Any()).Return(details(types.RoleAgencyAdmin), nil)
			},
			expectedRedirect: "/agency/agency-1/billing?plan=price_basic",
		},
		{
			name:  "state resumes the callback",
			query: Query{State: "launchpad___agency-9", Code: "ac_1"},
			setupMocks: func(m *serviceMocks) {
				m.invitations.EXPECT().Accept(gomock.Any(), subject).Return(strPtr("agency-1"), nil)
				m.tenants.EXPECT().GetUserDetails(gomock.Any(), gomock.Any()).Return(details(types.RoleAgencyOwner), nil)
			},
			expectedRedirect: "/agency/agency-9/launchpad?code=ac_1",
		},
		{
			name:  "malformed state",
			query: Query{State: "launchpad", Code: "ac_1"},
			setupMocks: func(m *serviceMocks) {
				m.invitations.EXPECT().Accept(gomock.Any(), subject).Return(strPtr("agency-1"), nil)
				m.tenants.EXPECT().GetUserDetails(gomock.Any(), gomock.Any()).Return(details(types.RoleAgencyOwner), nil)
			},
			expectedErr: ErrUnauthorized,
		},
		{
			name: "subaccount members go to /subaccount",
			setupMocks: func(m *serviceMocks) {
				m.invitations.EXPECT().Accept(gomock.Any(), subject).Return(strPtr("agency-1"), nil)
				m.tenants.EXPECT().GetUserDetails(gomock.Any(), gomock.Any()).Return(details(types.RoleSubAccountGuest), nil)
			},
			expectedRedirect: "/subaccount",
		},
		{
			name: "user without a role",
			setupMocks: func(m *serviceMocks) {
				m.invitations.EXPECT().Accept(gomock.Any(), subject).Return(strPtr("agency-1"), nil)
				m.tenants.EXPECT().GetUserDetails(gomock.Any(), gomock.Any()).Return(details(""), nil)
				m.security.EXPECT().AuthzFailure("subject-1", "agency:agency-1")
			},
			expectedErr: ErrUnauthorized,
		},
		{
			name: "user vanished",
			setupMocks: func(m *serviceMocks) {
				m.invitations.EXPECT().Accept(gomock.Any(), subject).Return(strPtr("agency-1"), nil)
				m.tenants.EXPECT().GetUserDetails(gomock.Any(), gomock.Any()).Return(nil, tenant.ErrUserNotFound)
			},
			expectedErr: ErrUnauthorized,
		},
		{
			name: "acceptance failure",
			setupMocks: func(m *serviceMocks) {
				m.invitations.EXPECT().Accept(gomock.Any(), subject).Return(nil, errors.New("boom"))
			},
			expectedErr: errors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := setupService(t)
			tt.setupMocks(m)

			entry, err := s.ResolveAgency(context.Background(), subject, tt.query)

			if tt.expectedErr != nil {
				if err == nil || (!errors.Is(err, tt.expectedErr) && err.Error() != tt.expectedErr.Error()) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.expectPrompt {
				if entry.Prompt == nil || entry.Prompt.CompanyEmail != "jane@example.com" || entry.Prompt.Action != "create_agency" {
					t.Errorf("expected a create agency prompt, got %+v", entry)
				}
				return
			}
			if entry.Redirect != tt.expectedRedirect {
				t.Errorf("expected redirect %s, got %s", tt.expectedRedirect, entry.Redirect)
			}
		})
	}
}

func TestService_ResolveSubAccount(t *testing.T) {
	tests := []struct {
		name             string
		query            Query
		setupMocks       func(*serviceMocks)
		expectedRedirect string
		expectedErr      error
	}{
		{
			name: "first subaccount with access",
			setupMocks: func(m *serviceMocks) {
				m.invitations.EXPECT().Accept(gomock.Any(), subject).Return(strPtr("agency-1"), nil)
				m.tenants.EXPECT().GetUserDetails(gomock.Any(), gomock.Any()).Return(
					details(
						types.RoleSubAccountUser,
						&types.Permission{SubAccountID: "sub-1", Access: false},
						&types.Permission{SubAccountID: "sub-2", Access: true},
						&types.Permission{SubAccountID: "sub-3", Access: true},
					),
					nil,
				)
			},
			expectedRedirect: "/subaccount/sub-2",
		},
		{
			name:  "state resumes the callback",
			query: Query{State: "settings___sub-7", Code: "x"},
			setupMocks: func(m *serviceMocks) {
				m.invitations.EXPECT().Accept(gomock.Any(), subject).Return(strPtr("agency-1"), nil)
				m.tenants.EXPECT().GetUserDetails(gomock.Any(), gomock.Any()).Return(details(types.RoleSubAccountUser), nil)
			},
			expectedRedirect: "/subaccount/sub-7/settings?code=x",
		},
		{
			name: "no agency",
			setupMocks: func(m *serviceMocks) {
				m.invitations.EXPECT().Accept(gomock.Any(), subject).Return(nil, nil)
			},
			expectedErr: ErrUnauthorized,
		},
		{
			name: "no access anywhere",
			setupMocks: func(m *serviceMocks) {
				m.invitations.EXPECT().Accept(gomock.Any(), subject).Return(strPtr("agency-1"), nil)
				m.tenants.EXPECT().GetUserDetails(gomock.Any(), gomock.Any()).Return(
					details(types.RoleSubAccountGuest, &types.Permission{SubAccountID: "sub-1", Access: false}),
					nil,
				)
				m.security.EXPECT().AuthzFailure("subject-1", gomock.Any())
			},
			expectedErr: ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := setupService(t)
			tt.setupMocks(m)

			entry, err := s.ResolveSubAccount(context.Background(), subject, tt.query)

			if !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
			}
			if err == nil && entry.Redirect != tt.expectedRedirect {
				t.Errorf("expected redirect %s, got %s", tt.expectedRedirect, entry.Redirect)
			}
		})
	}
}

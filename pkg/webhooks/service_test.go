// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"errors"
	"testing"

	"github.com/ory/hydra/v2/oauth2"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/agency-service/internal/storage"
	"github.com/canonical/agency-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_webhooks.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func strPtr(s string) *string {
	return &s
}

func TestService_HandleRegistration(t *testing.T) {
	identity := &KratosIdentity{
		ID:     "identity-123",
		Traits: KratosTraits{Email: "user@example.com", Name: "Jane"},
	}
	verified := &types.Subject{ID: "identity-123", Email: "user@example.com", Name: "Jane"}

	type mocks struct {
		identities  *MockSubjectProviderInterface
		invitations *MockInvitationServiceInterface
		logger      *MockLoggerInterface
		security    *MockSecurityLoggerInterface
	}

	testCases := []struct {
		name        string
		identity    *KratosIdentity
		setupMocks  func(*mocks)
		expectedErr bool
	}{
		{
			name:     "success - invited identity joins",
			identity: identity,
			setupMocks: func(m *mocks) {
				m.identities.EXPECT().GetSubject(gomock.Any(), "identity-123").Return(verified, nil)
				m.logger.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any())
				m.invitations.EXPECT().Accept(gomock.Any(), verified).Return(strPtr("agency-1"), nil)
				m.logger.EXPECT().Infof(gomock.Any(), gomock.Any(), gomock.Any())
			},
		},
		{
			name:     "success - no invitation",
			identity: identity,
			setupMocks: func(m *mocks) {
				m.identities.EXPECT().GetSubject(gomock.Any(), "identity-123").Return(verified, nil)
				m.logger.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any())
				m.invitations.EXPECT().Accept(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
		},
		{
			name: "body email differing from the identity is not accepted",
			identity: &KratosIdentity{
				ID:     "attacker-identity",
				Traits: KratosTraits{Email: "invited-victim@example.com"},
			},
			setupMocks: func(m *mocks) {
				m.identities.EXPECT().GetSubject(gomock.Any(), "attacker-identity").
					Return(&types.Subject{ID: "attacker-identity", Email: "attacker@example.com"}, nil)
				m.logger.EXPECT().Security().Return(m.security)
				m.security.EXPECT().AuthnFailure(gomock.Any())
			},
		},
		{
			name:     "unverified email is not accepted",
			identity: identity,
			setupMocks: func(m *mocks) {
				m.identities.EXPECT().GetSubject(gomock.Any(), "identity-123").Return(&types.Subject{ID: "identity-123"}, nil)
				m.logger.EXPECT().Debugf(gomock.Any(), gomock.Any())
			},
		},
		{
			name:     "error - unknown identity",
			identity: identity,
			setupMocks: func(m *mocks) {
				m.identities.EXPECT().GetSubject(gomock.Any(), "identity-123").Return(nil, errors.New("identity not found"))
			},
			expectedErr: true,
		},
		{
			name:        "error - empty identity id",
			identity:    &KratosIdentity{Traits: KratosTraits{Email: "user@example.com"}},
			setupMocks:  func(*mocks) {},
			expectedErr: true,
		},
		{
			name:     "error - acceptance fails",
			identity: identity,
			setupMocks: func(m *mocks) {
				m.identities.EXPECT().GetSubject(gomock.Any(), "identity-123").Return(verified, nil)
				m.logger.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any())
				m.invitations.EXPECT().Accept(gomock.Any(), gomock.Any()).Return(nil, errors.New("kratos down"))
			},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			m := &mocks{
				identities:  NewMockSubjectProviderInterface(ctrl),
				invitations: NewMockInvitationServiceInterface(ctrl),
				logger:      NewMockLoggerInterface(ctrl),
				security:    NewMockSecurityLoggerInterface(ctrl),
			}
			mockStorage := NewMockStorageInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)

			s := NewService(mockStorage, m.identities, m.invitations, mockTracer, mockMonitor, m.logger)

			mockTracer.EXPECT().Start(gomock.Any(), "webhooks.Service.HandleRegistration").
				Return(context.Background(), trace.SpanFromContext(context.Background()))
			tc.setupMocks(m)

			err := s.HandleRegistration(context.Background(), tc.identity)

			if tc.expectedErr {
				if err == nil {
					t.Error("expected error but got none")
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestService_HandleTokenHook(t *testing.T) {
	userID := "user-123"
	member := &types.User{ID: userID, Email: "user@example.com", Role: types.RoleSubAccountUser, AgencyID: strPtr("agency-1")}

	testCases := []struct {
		name         string
		request      *oauth2.TokenHookRequest
		setupMocks   func(*MockStorageInterface, *MockLoggerInterface)
		expectedErr  error
		validateResp func(*testing.T, *TokenHookResponse)
	}{
		{
			name: "success - member with subaccounts",
			request: &oauth2.TokenHookRequest{
				Session: oauth2.NewSession(userID),
			},
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any())
				mockStorage.EXPECT().GetUserByID(gomock.Any(), userID).Return(member, nil)
				mockStorage.EXPECT().ListPermissionsByEmail(gomock.Any(), "user@example.com").Return(
					[]*types.Permission{
						{SubAccountID: "sub-1", Access: true},
						{SubAccountID: "sub-2", Access: false},
					},
					nil,
				)
			},
			validateResp: func(t *testing.T, resp *TokenHookResponse) {
				if resp.Session.IDToken[ClaimAgencyID] != "agency-1" {
					t.Errorf("expected agency claim, got %v", resp.Session.IDToken[ClaimAgencyID])
				}
				if resp.Session.AccessToken[ClaimRole] != string(types.RoleSubAccountUser) {
					t.Errorf("expected role claim, got %v", resp.Session.AccessToken[ClaimRole])
				}
				subAccounts, ok := resp.Session.IDToken[ClaimSubAccounts].([]string)
				if !ok || len(subAccounts) != 1 || subAccounts[0] != "sub-1" {
					t.Errorf("expected subaccount sub-1, got %v", resp.Session.IDToken[ClaimSubAccounts])
				}
			},
		},
		{
			name: "success - user without agency or access",
			request: &oauth2.TokenHookRequest{
				Session: oauth2.NewSession(userID),
			},
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any())
				mockStorage.EXPECT().GetUserByID(gomock.Any(), userID).Return(&types.User{ID: userID, Email: "user@example.com", Role: types.RoleSubAccountUser}, nil)
				mockStorage.EXPECT().ListPermissionsByEmail(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			validateResp: func(t *testing.T, resp *TokenHookResponse) {
				if _, ok := resp.Session.IDToken[ClaimAgencyID]; ok {
					t.Error("expected no agency claim")
				}
				if _, ok := resp.Session.IDToken[ClaimSubAccounts]; ok {
					t.Error("expected no subaccounts claim")
				}
			},
		},
		{
			name: "success - unknown subject gets no claims",
			request: &oauth2.TokenHookRequest{
				Session: oauth2.NewSession(userID),
			},
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any())
				mockStorage.EXPECT().GetUserByID(gomock.Any(), userID).Return(nil, storage.ErrNotFound)
			},
			validateResp: func(t *testing.T, resp *TokenHookResponse) {
				if resp.Session.IDToken != nil || resp.Session.AccessToken != nil {
					t.Errorf("expected no claims, got %+v", resp.Session)
				}
			},
		},
		{
			name: "error - no user id in session",
			request: &oauth2.TokenHookRequest{
				Session: oauth2.NewSession(""),
			},
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any())
			},
			expectedErr: ErrMissingSubject,
		},
		{
			name:    "error - nil session",
			request: &oauth2.TokenHookRequest{},
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any())
			},
			expectedErr: ErrMissingSubject,
		},
		{
			name: "error - storage error",
			request: &oauth2.TokenHookRequest{
				Session: oauth2.NewSession(userID),
			},
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any())
				mockStorage.EXPECT().GetUserByID(gomock.Any(), userID).Return(nil, errors.New("storage error"))
			},
			expectedErr: errors.New("failed to get user: storage error"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockStorage := NewMockStorageInterface(ctrl)
			mockInvitations := NewMockInvitationServiceInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)

			s := NewService(mockStorage, NewMockSubjectProviderInterface(ctrl), mockInvitations, mockTracer, mockMonitor, mockLogger)

			mockTracer.EXPECT().Start(gomock.Any(), "webhooks.Service.HandleTokenHook").
				Return(context.Background(), trace.SpanFromContext(context.Background()))
			tc.setupMocks(mockStorage, mockLogger)

			resp, err := s.HandleTokenHook(context.Background(), tc.request)

			if tc.expectedErr != nil {
				if err == nil || (!errors.Is(err, tc.expectedErr) && err.Error() != tc.expectedErr.Error()) {
					t.Errorf("expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tc.validateResp(t, resp)
		})
	}
}

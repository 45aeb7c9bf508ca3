// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/agency-service/internal/authorization"
	"github.com/canonical/agency-service/internal/kratos"
	"github.com/canonical/agency-service/internal/mail"
	"github.com/canonical/agency-service/internal/storage"
	"github.com/canonical/agency-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package invitation -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package invitation -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package invitation -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package invitation -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

type serviceMocks struct {
	storage  *MockStorageInterface
	tx       *MockTxRunnerInterface
	idp      *MockIdentityProviderInterface
	authz    *MockAuthorizerInterface
	mailer   *MockMailerInterface
	tracer   *MockTracingInterface
	monitor  *MockMonitorInterface
	logger   *MockLoggerInterface
	security *MockSecurityLoggerInterface
}

func newServiceMocks(t *testing.T) *serviceMocks {
	ctrl := gomock.NewController(t)

	m := &serviceMocks{
		storage:  NewMockStorageInterface(ctrl),
		tx:       NewMockTxRunnerInterface(ctrl),
		idp:      NewMockIdentityProviderInterface(ctrl),
		authz:    NewMockAuthorizerInterface(ctrl),
		mailer:   NewMockMailerInterface(ctrl),
		tracer:   NewMockTracingInterface(ctrl),
		monitor:  NewMockMonitorInterface(ctrl),
		logger:   NewMockLoggerInterface(ctrl),
		security: NewMockSecurityLoggerInterface(ctrl),
	}

	m.tracer.EXPECT().Start(gomock.Any(), gomock.Any()).
		Return(context.Background(), trace.SpanFromContext(context.Background())).AnyTimes()
	m.logger.EXPECT().Security().Return(m.security).AnyTimes()
	m.logger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()
	m.logger.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	m.logger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()

	return m
}

func (m *serviceMocks) service() *Service {
	return NewService(m.storage, m.tx, m.idp, m.authz, m.mailer, "24h", m.tracer, m.monitor, m.logger)
}

// passthroughTx runs fn directly, the mocks see every statement of the transaction.
func passthroughTx(m *serviceMocks, times int) {
	m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	).Times(times)
}

func strPtr(s string) *string {
	return &s
}

func TestService_Accept(t *testing.T) {
	agencyID := "agency-1"
	subject := &types.Subject{ID: "subject-1", Email: "Jane@Example.com", Name: "Jane Doe", AvatarURL: "https://img/jane.png"}
	inv := &types.Invitation{ID: "inv-1", Email: "jane@example.com", AgencyID: agencyID, Role: types.RoleSubAccountUser, Status: types.InvitationPending}
	user := &types.User{ID: "subject-1", Name: "Jane Doe", Email: "jane@example.com", Role: types.RoleSubAccountUser, AgencyID: strPtr(agencyID)}

	tests := []struct {
		name             string
		subject          *types.Subject
		setupMocks       func(*serviceMocks)
		expectedAgencyID *string
		expectedState    State
		expectedErr      error
		wantErr          bool
	}{
		{
			name:        "no subject",
			subject:     nil,
			setupMocks:  func(m *serviceMocks) {},
			expectedErr: authorization.ErrUnauthenticated,
		},
		{
			name:    "no invitation and no user",
			subject: subject,
			setupMocks: func(m *serviceMocks) {
				passthroughTx(m, 1)
				m.storage.EXPECT().GetPendingInvitationByEmail(gomock.Any(), "jane@example.com").Return(nil, storage.ErrNotFound)
				m.storage.EXPECT().GetUserByEmail(gomock.Any(), "jane@example.com").Return(nil, storage.ErrNotFound)
			},
			expectedState: Resolved,
		},
		{
			name:    "no invitation and existing user",
			subject: subject,
			setupMocks: func(m *serviceMocks) {
				passthroughTx(m, 1)
				m.storage.EXPECT().GetPendingInvitationByEmail(gomock.Any(), "jane@example.com").Return(nil, storage.ErrNotFound)
				m.storage.EXPECT().GetUserByEmail(gomock.Any(), "jane@example.com").Return(user, nil)
			},
			expectedAgencyID: strPtr(agencyID),
			expectedState:    Resolved,
		},
		{
			name:    "invitation accepted",
			subject: subject,
			setupMocks: func(m *serviceMocks) {
				passthroughTx(m, 1)
				gomock.InOrder(
					m.storage.EXPECT().GetPendingInvitationByEmail(gomock.Any(), "jane@example.com").Return(inv, nil),
					m.storage.EXPECT().CreateOrClaimUser(gomock.Any(), gomock.Any()).DoAndReturn(
						func(_ context.Context, u *types.User) (*types.User, error) {
							if u.ID != subject.ID || u.Email != "jane@example.com" || u.Role != inv.Role || *u.AgencyID != agencyID || u.AvatarURL != subject.AvatarURL {
								t.Errorf("unexpected user %+v", u)
							}
							return user, nil
						},
					),
					m.storage.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).DoAndReturn(
						func(_ context.Context, n *types.Notification) (*types.Notification, error) {
							if n.Notification != "Jane Doe | Joined" || n.AgencyID != agencyID || n.UserID != user.ID {
								t.Errorf("unexpected notification %+v", n)
							}
							if n.IdempotencyKey == nil || *n.IdempotencyKey != "invitation:inv-1:joined" {
								t.Errorf("unexpected idempotency key %v", n.IdempotencyKey)
							}
							return n, nil
						},
					),
					m.idp.EXPECT().UpdateSubjectMetadata(gomock.Any(), subject.ID, types.RoleSubAccountUser).Return(nil),
					m.storage.EXPECT().DeleteInvitationByEmail(gomock.Any(), "jane@example.com").Return(nil),
				)
				m.security.EXPECT().InvitationAccepted("jane@example.com", agencyID)
				m.authz.EXPECT().AssignAgencyRole(gomock.Any(), agencyID, user.ID, types.RoleSubAccountUser).Return(nil)
			},
			expectedAgencyID: strPtr(agencyID),
			expectedState:    Accepted,
		},
		{
			name:    "mirror failure does not fail acceptance",
			subject: subject,
			setupMocks: func(m *serviceMocks) {
				passthroughTx(m, 1)
				m.storage.EXPECT().GetPendingInvitationByEmail(gomock.Any(), gomock.Any()).Return(inv, nil)
				m.storage.EXPECT().CreateOrClaimUser(gomock.Any(), gomock.Any()).Return(user, nil)
				m.storage.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).Return(nil, nil)
				m.idp.EXPECT().UpdateSubjectMetadata(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				m.storage.EXPECT().DeleteInvitationByEmail(gomock.Any(), gomock.Any()).Return(nil)
				m.security.EXPECT().InvitationAccepted(gomock.Any(), gomock.Any())
				m.authz.EXPECT().AssignAgencyRole(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("openfga down"))
				m.logger.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any())
			},
			expectedAgencyID: strPtr(agencyID),
			expectedState:    Accepted,
		},
		{
			name:    "owner invitation is left in place",
			subject: subject,
			setupMocks: func(m *serviceMocks) {
				passthroughTx(m, 1)
				owner := *inv
				owner.Role = types.RoleAgencyOwner
				m.storage.EXPECT().GetPendingInvitationByEmail(gomock.Any(), gomock.Any()).Return(&owner, nil)
			},
			expectedState: Skipped,
		},
		{
			name:    "lost race falls back to resolved",
			subject: subject,
			setupMocks: func(m *serviceMocks) {
				passthroughTx(m, 1)
				m.storage.EXPECT().GetPendingInvitationByEmail(gomock.Any(), gomock.Any()).Return(inv, nil)
				m.storage.EXPECT().CreateOrClaimUser(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("user jane@example.com already linked to an agency: %w", storage.ErrDuplicateKey))
				m.storage.EXPECT().GetUserByEmail(gomock.Any(), "jane@example.com").Return(user, nil)
			},
			expectedAgencyID: strPtr(agencyID),
			expectedState:    Resolved,
		},
		{
			name:    "user of another agency revokes the invitation",
			subject: subject,
			setupMocks: func(m *serviceMocks) {
				passthroughTx(m, 1)
				foreign := *user
				foreign.AgencyID = strPtr("agency-2")
				m.storage.EXPECT().GetPendingInvitationByEmail(gomock.Any(), gomock.Any()).Return(inv, nil)
				m.storage.EXPECT().CreateOrClaimUser(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("user jane@example.com already linked to an agency: %w", storage.ErrDuplicateKey))
				m.storage.EXPECT().GetUserByEmail(gomock.Any(), "jane@example.com").Return(&foreign, nil)
				m.storage.EXPECT().SetInvitationStatus(gomock.Any(), agencyID, "jane@example.com", types.InvitationRevoked).Return(nil)
				m.security.EXPECT().AuthzFailure(user.ID, "invitation:inv-1")
				m.logger.EXPECT().Warnf(gomock.Any(), gomock.Any(), gomock.Any())
			},
			expectedAgencyID: strPtr("agency-2"),
			expectedState:    Rejected,
		},
		{
			name:    "metadata failure is a hard failure",
			subject: subject,
			setupMocks: func(m *serviceMocks) {
				passthroughTx(m, 1)
				m.storage.EXPECT().GetPendingInvitationByEmail(gomock.Any(), gomock.Any()).Return(inv, nil)
				m.storage.EXPECT().CreateOrClaimUser(gomock.Any(), gomock.Any()).Return(user, nil)
				m.storage.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).Return(nil, nil)
				m.idp.EXPECT().UpdateSubjectMetadata(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("failed to get identity: %w", kratos.ErrIdentityServiceUnavailable))
			},
			expectedErr: kratos.ErrIdentityServiceUnavailable,
		},
		{
			name:    "transient failure is retried once",
			subject: subject,
			setupMocks: func(m *serviceMocks) {
				gomock.InOrder(
					m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).
						Return(fmt.Errorf("failed to commit transaction: %w", storage.ErrTransient)),
					m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
						func(ctx context.Context, fn func(context.Context) error) error {
							return fn(ctx)
						},
					),
				)
				m.logger.EXPECT().Warnf(gomock.Any(), gomock.Any(), gomock.Any())
				m.storage.EXPECT().GetPendingInvitationByEmail(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)
				m.storage.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			expectedAgencyID: strPtr(agencyID),
			expectedState:    Resolved,
		},
		{
			name:    "repeated transient failure",
			subject: subject,
			setupMocks: func(m *serviceMocks) {
				m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).Return(storage.ErrTransient).Times(2)
				m.logger.EXPECT().Warnf(gomock.Any(), gomock.Any(), gomock.Any())
			},
			expectedErr: ErrServiceUnavailable,
		},
		{
			name:    "other store failure is not retried",
			subject: subject,
			setupMocks: func(m *serviceMocks) {
				passthroughTx(m, 1)
				m.storage.EXPECT().GetPendingInvitationByEmail(gomock.Any(), gomock.Any()).Return(nil, errors.New("syntax error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newServiceMocks(t)
			tt.setupMocks(m)

			res, err := m.service().AcceptWithResult(context.Background(), tt.subject)

			if tt.expectedErr != nil || tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got none")
				}
				if tt.expectedErr != nil && !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if res.State != tt.expectedState {
				t.Errorf("expected state %s, got %s", tt.expectedState, res.State)
			}

			switch {
			case tt.expectedAgencyID == nil && res.AgencyID != nil:
				t.Errorf("expected no agency, got %s", *res.AgencyID)
			case tt.expectedAgencyID != nil && (res.AgencyID == nil || *res.AgencyID != *tt.expectedAgencyID):
				t.Errorf("expected agency %s, got %v", *tt.expectedAgencyID, res.AgencyID)
			}
		})
	}
}

func TestService_AcceptReturnsAgencyID(t *testing.T) {
	m := newServiceMocks(t)
	passthroughTx(m, 1)

	agencyID := "agency-1"
	m.storage.EXPECT().GetPendingInvitationByEmail(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)
	m.storage.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(&types.User{AgencyID: &agencyID}, nil)

	got, err := m.service().Accept(context.Background(), &types.Subject{ID: "s", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || *got != agencyID {
		t.Errorf("expected %s, got %v", agencyID, got)
	}
}

func TestService_Create(t *testing.T) {
	agency := &types.Agency{ID: "agency-1", Name: "Acme"}
	inv := &types.Invitation{ID: "inv-1", Email: "jane@example.com", AgencyID: agency.ID, Role: types.RoleAgencyAdmin, Status: types.InvitationPending}

	tests := []struct {
		name        string
		email       string
		role        types.Role
		setupMocks  func(*serviceMocks)
		expectedErr error
	}{
		{
			name:  "existing identity",
			email: " Jane@Example.com ",
			role:  types.RoleAgencyAdmin,
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetAgencyByID(gomock.Any(), agency.ID).Return(agency, nil)
				m.storage.EXPECT().GetUserByEmail(gomock.Any(), "jane@example.com").Return(nil, storage.ErrNotFound)
				m.storage.EXPECT().UpsertInvitation(gomock.Any(), &types.Invitation{Email: "jane@example.com", AgencyID: agency.ID, Role: types.RoleAgencyAdmin}).Return(inv, nil)
				m.idp.EXPECT().GetIdentityIDByEmail(gomock.Any(), "jane@example.com").Return("identity-1", nil)
				m.idp.EXPECT().CreateRecoveryLink(gomock.Any(), "identity-1", "24h").Return("https://link", "123456", nil)
				m.mailer.EXPECT().SendInvitation(gomock.Any(), &mail.InvitationMail{
					To: "jane@example.com", AgencyName: "Acme", Role: "AGENCY_ADMIN", Link: "https://link", Code: "123456",
				}).Return(nil)
			},
		},
		{
			name:  "new identity and mail failure",
			email: "jane@example.com",
			role:  types.RoleSubAccountGuest,
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetAgencyByID(gomock.Any(), agency.ID).Return(agency, nil)
				m.storage.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(&types.User{Email: "jane@example.com"}, nil)
				m.storage.EXPECT().UpsertInvitation(gomock.Any(), gomock.Any()).Return(inv, nil)
				m.idp.EXPECT().GetIdentityIDByEmail(gomock.Any(), gomock.Any()).Return("", nil)
				m.idp.EXPECT().CreateIdentity(gomock.Any(), "jane@example.com").Return("identity-2", nil)
				m.idp.EXPECT().CreateRecoveryLink(gomock.Any(), "identity-2", "24h").Return("https://link", "", nil)
				m.mailer.EXPECT().SendInvitation(gomock.Any(), gomock.Any()).Return(mail.ErrSendFailed)
				m.logger.EXPECT().Warnf(gomock.Any(), gomock.Any(), gomock.Any())
			},
		},
		{
			name:        "invalid email",
			email:       "jane",
			role:        types.RoleAgencyAdmin,
			setupMocks:  func(m *serviceMocks) {},
			expectedErr: ErrInvalidEmail,
		},
		{
			name:        "invalid role",
			email:       "jane@example.com",
			role:        types.Role("GOD"),
			setupMocks:  func(m *serviceMocks) {},
			expectedErr: ErrInvalidRole,
		},
		{
			name:        "owner role",
			email:       "jane@example.com",
			role:        types.RoleAgencyOwner,
			setupMocks:  func(m *serviceMocks) {},
			expectedErr: ErrOwnerInvitation,
		},
		{
			name:  "unknown agency",
			email: "jane@example.com",
			role:  types.RoleAgencyAdmin,
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetAgencyByID(gomock.Any(), agency.ID).Return(nil, storage.ErrNotFound)
			},
			expectedErr: ErrAgencyNotFound,
		},
		{
			name:  "already a member",
			email: "jane@example.com",
			role:  types.RoleAgencyAdmin,
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetAgencyByID(gomock.Any(), agency.ID).Return(agency, nil)
				m.storage.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(&types.User{AgencyID: strPtr("agency-2")}, nil)
			},
			expectedErr: ErrAlreadyMember,
		},
		{
			name:  "invited by another agency",
			email: "jane@example.com",
			role:  types.RoleAgencyAdmin,
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetAgencyByID(gomock.Any(), agency.ID).Return(agency, nil)
				m.storage.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)
				m.storage.EXPECT().UpsertInvitation(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("x: %w", storage.ErrDuplicateKey))
			},
			expectedErr: ErrInvitedElsewhere,
		},
		{
			name:  "identity service down",
			email: "jane@example.com",
			role:  types.RoleAgencyAdmin,
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetAgencyByID(gomock.Any(), agency.ID).Return(agency, nil)
				m.storage.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)
				m.storage.EXPECT().UpsertInvitation(gomock.Any(), gomock.Any()).Return(inv, nil)
				m.idp.EXPECT().GetIdentityIDByEmail(gomock.Any(), gomock.Any()).Return("", kratos.ErrIdentityServiceUnavailable)
			},
			expectedErr: kratos.ErrIdentityServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newServiceMocks(t)
			tt.setupMocks(m)

			invite, err := m.service().Create(context.Background(), agency.ID, tt.email, tt.role)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if invite.Invitation != inv || invite.Link != "https://link" {
				t.Errorf("unexpected invite %+v", invite)
			}
		})
	}
}

func TestService_Revoke(t *testing.T) {
	tests := []struct {
		name        string
		storeErr    error
		expectedErr error
	}{
		{name: "revoked"},
		{name: "unknown invitation", storeErr: storage.ErrNotFound, expectedErr: ErrInvitationNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newServiceMocks(t)
			m.storage.EXPECT().SetInvitationStatus(gomock.Any(), "agency-1", "jane@example.com", types.InvitationRevoked).Return(tt.storeErr)

			err := m.service().Revoke(context.Background(), "agency-1", "JANE@example.com")

			if !errors.Is(err, tt.expectedErr) {
				t.Errorf("expected error %v, got %v", tt.expectedErr, err)
			}
		})
	}
}

func TestService_List(t *testing.T) {
	m := newServiceMocks(t)
	invitations := []*types.Invitation{{ID: "inv-1"}}
	m.storage.EXPECT().ListInvitationsByAgencyID(gomock.Any(), "agency-1").Return(invitations, nil)

	got, err := m.service().List(context.Background(), "agency-1")
	if err != nil || len(got) != 1 {
		t.Errorf("unexpected result %v %v", got, err)
	}
}

// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitation

import (
	"context"

	"github.com/canonical/agency-service/internal/authorization"
	"github.com/canonical/agency-service/internal/mail"
	"github.com/canonical/agency-service/internal/types"
)

type ServiceInterface interface {
	Accept(context.Context, *types.Subject) (*string, error)
	AcceptWithResult(context.Context, *types.Subject) (*Result, error)
	Create(ctx context.Context, agencyID, email string, role types.Role) (*Invite, error)
	List(ctx context.Context, agencyID string) ([]*types.Invitation, error)
	Revoke(ctx context.Context, agencyID, email string) error
}

type StorageInterface interface {
	GetPendingInvitationByEmail(ctx context.Context, email string) (*types.Invitation, error)
	UpsertInvitation(ctx context.Context, inv *types.Invitation) (*types.Invitation, error)
	ListInvitationsByAgencyID(ctx context.Context, agencyID string) ([]*types.Invitation, error)
	SetInvitationStatus(ctx context.Context, agencyID, email string, status types.InvitationStatus) error
	DeleteInvitationByEmail(ctx context.Context, email string) error

	CreateOrClaimUser(ctx context.Context, u *types.User) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	GetAgencyByID(ctx context.Context, id string) (*types.Agency, error)

	CreateNotification(ctx context.Context, n *types.Notification) (*types.Notification, error)
}

type TxRunnerInterface interface {
	WithTx(context.Context, func(context.Context) error) error
}

type IdentityProviderInterface interface {
	UpdateSubjectMetadata(ctx context.Context, subjectID string, role types.Role) error
	GetIdentityIDByEmail(ctx context.Context, email string) (string, error)
	CreateIdentity(ctx context.Context, email string) (string, error)
	CreateRecoveryLink(ctx context.Context, identityID string, expiresIn string) (string, string, error)
}

type AuthorizerInterface interface {
	AssignAgencyRole(ctx context.Context, agencyID, userID string, role types.Role) error
}

type MailerInterface interface {
	SendInvitation(context.Context, *mail.InvitationMail) error
}

type GateInterface interface {
	Subject(ctx context.Context) (*types.Subject, error)
	AuthorizeAgency(ctx context.Context, agencyID string, action authorization.Action) (*authorization.Caller, error)
}

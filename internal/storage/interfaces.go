// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/canonical/agency-service/internal/types"
)

type StorageInterface interface {
	UpsertAgency(ctx context.Context, a *types.Agency) (*types.Agency, error)
	GetAgencyByID(ctx context.Context, id string) (*types.Agency, error)
	UpdateAgency(ctx context.Context, a *types.Agency, paths []string) (*types.Agency, error)
	DeleteAgency(ctx context.Context, id string) error

	UpsertSubAccount(ctx context.Context, sa *types.SubAccount) (*types.SubAccount, error)
	GetSubAccountByID(ctx context.Context, id string) (*types.SubAccount, error)
	ListSubAccountsByAgencyID(ctx context.Context, agencyID string) ([]*types.SubAccount, error)
	DeleteSubAccount(ctx context.Context, id string) error

	// CreateOrClaimUser inserts u, or takes over the row with the same email when
	// that row is not yet linked to an agency. Any other conflict yields ErrDuplicateKey.
	CreateOrClaimUser(ctx context.Context, u *types.User) (*types.User, error)
	UpsertUserByEmail(ctx context.Context, u *types.User) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	UpdateUser(ctx context.Context, u *types.User, paths []string) (*types.User, error)
	DeleteUser(ctx context.Context, id string) error
	ListUsersByAgencyID(ctx context.Context, agencyID string) ([]*types.User, error)
	FindAgencyOwner(ctx context.Context, agencyID string) (*types.User, error)
	SetUserAgency(ctx context.Context, userID, agencyID string, role types.Role) error

	UpsertPermission(ctx context.Context, p *types.Permission) (*types.Permission, error)
	ListPermissionsByEmail(ctx context.Context, email string) ([]*types.Permission, error)

	GetPendingInvitationByEmail(ctx context.Context, email string) (*types.Invitation, error)
	UpsertInvitation(ctx context.Context, inv *types.Invitation) (*types.Invitation, error)
	ListInvitationsByAgencyID(ctx context.Context, agencyID string) ([]*types.Invitation, error)
	SetInvitationStatus(ctx context.Context, agencyID, email string, status types.InvitationStatus) error
	DeleteInvitationByEmail(ctx context.Context, email string) error
	DeleteOwnerInvitations(ctx context.Context, email string) (int64, error)

	// CreateNotification returns nil without error when a notification with the
	// same idempotency key already exists.
	CreateNotification(ctx context.Context, n *types.Notification) (*types.Notification, error)
	ListNotificationsByAgencyID(ctx context.Context, agencyID string) ([]*types.NotificationWithUser, error)

	CreateSidebarOptions(ctx context.Context, opts []*types.SidebarOption) error
	ListSidebarOptions(ctx context.Context, agencyID, subAccountID string) ([]*types.SidebarOption, error)

	CreatePipeline(ctx context.Context, p *types.Pipeline) (*types.Pipeline, error)
}

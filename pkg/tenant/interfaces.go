// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"

	"github.com/canonical/agency-service/internal/authorization"
	"github.com/canonical/agency-service/internal/types"
)

type ServiceInterface interface {
	GetUserDetails(ctx context.Context, email string) (*types.UserDetails, error)
	InitUser(ctx context.Context, subject *types.Subject, role types.Role) (*types.User, error)

	UpsertAgency(ctx context.Context, subject *types.Subject, agency *types.Agency) (*types.Agency, error)
	GetAgency(ctx context.Context, agencyID string) (*types.Agency, error)
	UpdateAgency(ctx context.Context, actor *types.User, agency *types.Agency, paths []string) (*types.Agency, error)
	DeleteAgency(ctx context.Context, agencyID string) error
	ListNotifications(ctx context.Context, agencyID string) ([]*types.NotificationWithUser, error)

	ListTeam(ctx context.Context, agencyID string) ([]*types.User, error)
	UpdateTeamMember(ctx context.Context, actor *types.User, agencyID string, user *types.User, paths []string) (*types.User, error)
	RemoveTeamMember(ctx context.Context, actor *types.User, agencyID, userID string) error

	UpsertSubAccount(ctx context.Context, actor *types.User, subAccount *types.SubAccount) (*types.SubAccount, error)
	DeleteSubAccount(ctx context.Context, actor *types.User, subAccount *types.SubAccount) error
	ChangePermission(ctx context.Context, actor *types.User, subAccount *types.SubAccount, email string, access bool) (*types.Permission, error)

	RecordActivity(ctx context.Context, actor *types.User, activity Activity) error

	AgencyWorkspace(ctx context.Context, caller *authorization.Caller, agencyID string) (Workspace, error)
	SubAccountWorkspace(ctx context.Context, caller *authorization.Caller, subAccount *types.SubAccount) (Workspace, error)
}

type StorageInterface interface {
	UpsertAgency(ctx context.Context, a *types.Agency) (*types.Agency, error)
	GetAgencyByID(ctx context.Context, id string) (*types.Agency, error)
	UpdateAgency(ctx context.Context, a *types.Agency, paths []string) (*types.Agency, error)
	DeleteAgency(ctx context.Context, id string) error

	UpsertSubAccount(ctx context.Context, sa *types.SubAccount) (*types.SubAccount, error)
	GetSubAccountByID(ctx context.Context, id string) (*types.SubAccount, error)
	ListSubAccountsByAgencyID(ctx context.Context, agencyID string) ([]*types.SubAccount, error)
	DeleteSubAccount(ctx context.Context, id string) error

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

	DeleteOwnerInvitations(ctx context.Context, email string) (int64, error)

	CreateNotification(ctx context.Context, n *types.Notification) (*types.Notification, error)
	ListNotificationsByAgencyID(ctx context.Context, agencyID string) ([]*types.NotificationWithUser, error)

	CreateSidebarOptions(ctx context.Context, opts []*types.SidebarOption) error
	ListSidebarOptions(ctx context.Context, agencyID, subAccountID string) ([]*types.SidebarOption, error)

	CreatePipeline(ctx context.Context, p *types.Pipeline) (*types.Pipeline, error)
}

type TxRunnerInterface interface {
	WithTx(context.Context, func(context.Context) error) error
}

type IdentityProviderInterface interface {
	UpdateSubjectMetadata(ctx context.Context, subjectID string, role types.Role) error
}

type AuthorizerInterface interface {
	AssignAgencyRole(ctx context.Context, agencyID, userID string, role types.Role) error
	RemoveAgencyRole(ctx context.Context, agencyID, userID string, role types.Role) error
	LinkSubAccount(ctx context.Context, agencyID, subAccountID string) error
	SetSubAccountAccess(ctx context.Context, subAccountID, userID string, access bool) error
	DeleteAgency(ctx context.Context, agencyID string) error
	DeleteSubAccount(ctx context.Context, subAccountID string) error
}

type GateInterface interface {
	Subject(ctx context.Context) (*types.Subject, error)
	Caller(ctx context.Context) (*authorization.Caller, error)
	AuthorizeAgency(ctx context.Context, agencyID string, action authorization.Action) (*authorization.Caller, error)
	AuthorizeSubAccount(ctx context.Context, subAccountID string, action authorization.Action) (*authorization.Caller, *types.SubAccount, error)
}

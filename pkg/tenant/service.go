// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/canonical/agency-service/internal/authorization"
	"github.com/canonical/agency-service/internal/logging"
	"github.com/canonical/agency-service/internal/monitoring"
	"github.com/canonical/agency-service/internal/storage"
	"github.com/canonical/agency-service/internal/tracing"
	"github.com/canonical/agency-service/internal/types"
)

var (
	ErrInvalidAgency       = errors.New("invalid agency")
	ErrInvalidSubAccount   = errors.New("invalid subaccount")
	ErrInvalidRole         = errors.New("invalid role")
	ErrAgencyNotFound      = errors.New("agency not found")
	ErrSubAccountNotFound  = errors.New("subaccount not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrAgencyOwnerNotFound = errors.New("agency has no owner")
	ErrAlreadyMember       = errors.New("user already belongs to an agency")
	ErrRoleChange          = errors.New("role of an agency member can only be changed by the agency")
	ErrOwnerChange         = errors.New("agency owner cannot be changed or removed")
	ErrMissingScope        = errors.New("activity needs an agency or a subaccount")
)

const defaultPipeline = "Lead Cycle"

// Activity is a line of the agency activity log. The agency is resolved from the
// subaccount when only the latter is known.
type Activity struct {
	AgencyID     string
	SubAccountID string
	Description  string
}

type Service struct {
	storage StorageInterface
	tx      TxRunnerInterface
	idp     IdentityProviderInterface
	authz   AuthorizerInterface

	validate *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) GetUserDetails(ctx context.Context, email string) (*types.UserDetails, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.GetUserDetails")
	defer span.End()

	user, err := s.storage.GetUserByEmail(ctx, strings.ToLower(email))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	permissions, err := s.storage.ListPermissionsByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}

	details := &types.UserDetails{User: *user, Permissions: permissions}
	if user.AgencyID == nil {
		return details, nil
	}

	agency, err := s.storage.GetAgencyByID(ctx, *user.AgencyID)
	if err != nil {
		return nil, err
	}
	details.Agency = agency

	subAccounts, err := s.storage.ListSubAccountsByAgencyID(ctx, agency.ID)
	if err != nil {
		return nil, err
	}
	details.SubAccounts = subAccounts

	return details, nil
}

// InitUser creates the user of the subject or updates its profile, and writes the
// role into the identity metadata. Members of an agency cannot pick another role.
func (s *Service) InitUser(ctx context.Context, subject *types.Subject, role types.Role) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.InitUser")
	defer span.End()

	if subject == nil || subject.Email == "" {
		return nil, authorization.ErrUnauthenticated
	}

	if role == "" {
		role = types.RoleSubAccountUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	email := strings.ToLower(subject.Email)

	var user *types.User
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		existing, err := s.storage.GetUserByEmail(ctx, email)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		if existing != nil && existing.AgencyID != nil && existing.Role != role {
			return ErrRoleChange
		}

		user, err = s.storage.UpsertUserByEmail(
			ctx,
			&types.User{
				ID:        subject.ID,
				Name:      displayName(subject),
				Email:     email,
				AvatarURL: subject.AvatarURL,
				Role:      role,
			},
		)
		if err != nil {
			return err
		}

		return s.idp.UpdateSubjectMetadata(ctx, subject.ID, role)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpsertAgency creates the agency of the subject when agency has no id, the subject
// becomes its AGENCY_OWNER. With an id the agency details are overwritten.
func (s *Service) UpsertAgency(ctx context.Context, subject *types.Subject, agency *types.Agency) (*types.Agency, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.UpsertAgency")
	defer span.End()

	if subject == nil || subject.Email == "" {
		return nil, authorization.ErrUnauthenticated
	}

	if err := s.validate.Struct(agency); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAgency, err)
	}

	email := strings.ToLower(subject.Email)
	created := agency.ID == ""

	var saved *types.Agency
	var owner *types.User

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if created {
			existing, err := s.storage.GetUserByEmail(ctx, email)
			if err != nil && !errors.Is(err, storage.ErrNotFound) {
				return err
			}
			if existing != nil && existing.AgencyID != nil {
				return ErrAlreadyMember
			}
		}

		var err error
		if saved, err = s.storage.UpsertAgency(ctx, agency); err != nil {
			return err
		}

		if !created {
			return nil
		}

		if err := s.storage.CreateSidebarOptions(ctx, agencySidebarOptions(saved.ID)); err != nil {
			return err
		}

		owner, err = s.storage.UpsertUserByEmail(
			ctx,
			&types.User{
				ID:        subject.ID,
				Name:      displayName(subject),
				Email:     email,
				AvatarURL: subject.AvatarURL,
				Role:      types.RoleAgencyOwner,
			},
		)
		if err != nil {
			return err
		}

		if err := s.storage.SetUserAgency(ctx, owner.ID, saved.ID, types.RoleAgencyOwner); err != nil {
			return err
		}

		n, err := s.storage.DeleteOwnerInvitations(ctx, email)
		if err != nil {
			return err
		}
		if n > 0 {
			s.logger.Debugf("removed %d owner invitations of %s", n, email)
		}

		return s.idp.UpdateSubjectMetadata(ctx, subject.ID, types.RoleAgencyOwner)
	})
	if err != nil {
		return nil, err
	}

	if created {
		s.mirror("agency owner", s.authz.AssignAgencyRole(ctx, saved.ID, owner.ID, types.RoleAgencyOwner))
	}

	return saved, nil
}

func (s *Service) GetAgency(ctx context.Context, agencyID string) (*types.Agency, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.GetAgency")
	defer span.End()

	agency, err := s.storage.GetAgencyByID(ctx, agencyID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrAgencyNotFound
	}

	return agency, err
}

func (s *Service) UpdateAgency(ctx context.Context, actor *types.User, agency *types.Agency, paths []string) (*types.Agency, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.UpdateAgency")
	defer span.End()

	updated, err := s.storage.UpdateAgency(ctx, agency, paths)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrAgencyNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.RecordActivity(ctx, actor, Activity{AgencyID: updated.ID, Description: "Updated agency information"}); err != nil {
		s.logger.Warnf("failed to record activity of agency %s: %v", updated.ID, err)
	}

	return updated, nil
}

func (s *Service) DeleteAgency(ctx context.Context, agencyID string) error {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.DeleteAgency")
	defer span.End()

	if err := s.storage.DeleteAgency(ctx, agencyID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrAgencyNotFound
		}
		return err
	}

	s.mirror("agency deletion", s.authz.DeleteAgency(ctx, agencyID))

	return nil
}

func (s *Service) ListNotifications(ctx context.Context, agencyID string) ([]*types.NotificationWithUser, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.ListNotifications")
	defer span.End()

	return s.storage.ListNotificationsByAgencyID(ctx, agencyID)
}

func (s *Service) ListTeam(ctx context.Context, agencyID string) ([]*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.ListTeam")
	defer span.End()

	return s.storage.ListUsersByAgencyID(ctx, agencyID)
}

// UpdateTeamMember changes the profile or the role of a member of the agency,
// a role change is also written into the identity metadata.
func (s *Service) UpdateTeamMember(ctx context.Context, actor *types.User, agencyID string, user *types.User, paths []string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.UpdateTeamMember")
	defer span.End()

	existing, err := s.member(ctx, agencyID, user.ID)
	if err != nil {
		return nil, err
	}

	roleChange := slices.Contains(paths, "role") && user.Role != existing.Role
	if roleChange {
		if !user.Role.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRole, user.Role)
		}
		if user.Role == types.RoleAgencyOwner || existing.Role == types.RoleAgencyOwner {
			return nil, ErrOwnerChange
		}
	}

	var updated *types.User
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		if updated, err = s.storage.UpdateUser(ctx, user, paths); err != nil {
			return err
		}

		if !roleChange {
			return nil
		}

		return s.idp.UpdateSubjectMetadata(ctx, existing.ID, user.Role)
	})
	if err != nil {
		return nil, err
	}

	if roleChange {
		s.mirror("role removal", s.authz.RemoveAgencyRole(ctx, agencyID, existing.ID, existing.Role))
		s.mirror("role assignment", s.authz.AssignAgencyRole(ctx, agencyID, existing.ID, user.Role))

		if err := s.RecordActivity(ctx, actor, Activity{AgencyID: agencyID, Description: fmt.Sprintf("Updated role of %s to %s", existing.Name, user.Role)}); err != nil {
			s.logger.Warnf("failed to record activity of agency %s: %v", agencyID, err)
		}
	}

	return updated, nil
}

func (s *Service) RemoveTeamMember(ctx context.Context, actor *types.User, agencyID, userID string) error {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.RemoveTeamMember")
	defer span.End()

	existing, err := s.member(ctx, agencyID, userID)
	if err != nil {
		return err
	}
	if existing.Role == types.RoleAgencyOwner {
		return ErrOwnerChange
	}

	if err := s.storage.DeleteUser(ctx, existing.ID); err != nil {
		return err
	}

	s.mirror("role removal", s.authz.RemoveAgencyRole(ctx, agencyID, existing.ID, existing.Role))

	if err := s.RecordActivity(ctx, actor, Activity{AgencyID: agencyID, Description: "Removed " + existing.Email}); err != nil {
		s.logger.Warnf("failed to record activity of agency %s: %v", agencyID, err)
	}

	return nil
}

func (s *Service) member(ctx context.Context, agencyID, userID string) (*types.User, error) {
	user, err := s.storage.GetUserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if user.AgencyID == nil || *user.AgencyID != agencyID {
		return nil, ErrUserNotFound
	}

	return user, nil
}

// UpsertSubAccount creates the subaccount when it has no id: the agency owner gets
// access to it and the default pipeline and sidebar options are provisioned.
func (s *Service) UpsertSubAccount(ctx context.Context, actor *types.User, subAccount *types.SubAccount) (*types.SubAccount, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.UpsertSubAccount")
	defer span.End()

	if err := s.validate.Struct(subAccount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSubAccount, err)
	}

	created := subAccount.ID == ""

	var saved *types.SubAccount
	var owner *types.User

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error

		owner, err = s.storage.FindAgencyOwner(ctx, subAccount.AgencyID)
		if errors.Is(err, storage.ErrNotFound) {
			return ErrAgencyOwnerNotFound
		}
		if err != nil {
			return err
		}

		if !created {
			existing, err := s.storage.GetSubAccountByID(ctx, subAccount.ID)
			if errors.Is(err, storage.ErrNotFound) {
				return ErrSubAccountNotFound
			}
			if err != nil {
				return err
			}
			if existing.AgencyID != subAccount.AgencyID {
				return ErrSubAccountNotFound
			}
		}

		saved, err = s.storage.UpsertSubAccount(ctx, subAccount)
		if errors.Is(err, storage.ErrDuplicateKey) {
			return ErrSubAccountNotFound
		}
		if err != nil {
			return err
		}

		if created {
			if err := s.provisionSubAccount(ctx, saved, owner); err != nil {
				return err
			}
		}

		return s.RecordActivity(ctx, actor, Activity{AgencyID: saved.AgencyID, SubAccountID: saved.ID, Description: "Updated sub account | " + saved.Name})
	})
	if err != nil {
		return nil, err
	}

	if created {
		s.mirror("subaccount link", s.authz.LinkSubAccount(ctx, saved.AgencyID, saved.ID))
		s.mirror("subaccount access", s.authz.SetSubAccountAccess(ctx, saved.ID, owner.ID, true))
	}

	return saved, nil
}

func (s *Service) provisionSubAccount(ctx context.Context, subAccount *types.SubAccount, owner *types.User) error {
	_, err := s.storage.UpsertPermission(ctx, &types.Permission{Email: owner.Email, SubAccountID: subAccount.ID, Access: true})
	if err != nil {
		return err
	}

	if _, err := s.storage.CreatePipeline(ctx, &types.Pipeline{Name: defaultPipeline, SubAccountID: subAccount.ID}); err != nil {
		return err
	}

	return s.storage.CreateSidebarOptions(ctx, subAccountSidebarOptions(subAccount.ID))
}

func (s *Service) DeleteSubAccount(ctx context.Context, actor *types.User, subAccount *types.SubAccount) error {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.DeleteSubAccount")
	defer span.End()

	if err := s.storage.DeleteSubAccount(ctx, subAccount.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrSubAccountNotFound
		}
		return err
	}

	s.mirror("subaccount deletion", s.authz.DeleteSubAccount(ctx, subAccount.ID))

	if err := s.RecordActivity(ctx, actor, Activity{AgencyID: subAccount.AgencyID, Description: "Deleted a subaccount | " + subAccount.Name}); err != nil {
		s.logger.Warnf("failed to record activity of agency %s: %v", subAccount.AgencyID, err)
	}

	return nil
}

// ChangePermission grants or withdraws the access of a member of the agency to the
// subaccount, a single upsert on (email, subaccount).
func (s *Service) ChangePermission(ctx context.Context, actor *types.User, subAccount *types.SubAccount, email string, access bool) (*types.Permission, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.ChangePermission")
	defer span.End()

	email = strings.ToLower(email)

	target, err := s.storage.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if target.AgencyID == nil || *target.AgencyID != subAccount.AgencyID {
		return nil, ErrUserNotFound
	}

	permission, err := s.storage.UpsertPermission(ctx, &types.Permission{Email: email, SubAccountID: subAccount.ID, Access: access})
	if err != nil {
		return nil, err
	}

	actorID := ""
	if actor != nil {
		actorID = actor.ID
	}
	s.logger.Security().PermissionChanged(actorID, email, subAccount.ID, access)

	s.mirror("subaccount access", s.authz.SetSubAccountAccess(ctx, subAccount.ID, target.ID, access))

	description := fmt.Sprintf("Gave %s access to | %s", target.Name, subAccount.Name)
	if !access {
		description = fmt.Sprintf("Removed access of %s to | %s", target.Name, subAccount.Name)
	}
	if err := s.RecordActivity(ctx, actor, Activity{AgencyID: subAccount.AgencyID, SubAccountID: subAccount.ID, Description: description}); err != nil {
		s.logger.Warnf("failed to record activity of subaccount %s: %v", subAccount.ID, err)
	}

	return permission, nil
}

// RecordActivity writes "<user name> | <description>" to the agency activity log.
// Without an actor the agency owner is credited, with no owner nothing is written.
func (s *Service) RecordActivity(ctx context.Context, actor *types.User, activity Activity) error {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.RecordActivity")
	defer span.End()

	agencyID := activity.AgencyID
	if agencyID == "" {
		if activity.SubAccountID == "" {
			return ErrMissingScope
		}

		subAccount, err := s.storage.GetSubAccountByID(ctx, activity.SubAccountID)
		if errors.Is(err, storage.ErrNotFound) {
			return ErrSubAccountNotFound
		}
		if err != nil {
			return err
		}
		agencyID = subAccount.AgencyID
	}

	user := actor
	if user == nil {
		owner, err := s.storage.FindAgencyOwner(ctx, agencyID)
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warnf("no user to credit activity %q of agency %s with", activity.Description, agencyID)
			return nil
		}
		if err != nil {
			return err
		}
		user = owner
	}

	n := &types.Notification{
		Notification: fmt.Sprintf("%s | %s", user.Name, activity.Description),
		AgencyID:     agencyID,
		UserID:       user.ID,
	}
	if activity.SubAccountID != "" {
		id := activity.SubAccountID
		n.SubAccountID = &id
	}

	_, err := s.storage.CreateNotification(ctx, n)
	return err
}

// AgencyWorkspace is only shown to subjects whose identity carries an agency role.
func (s *Service) AgencyWorkspace(ctx context.Context, caller *authorization.Caller, agencyID string) (Workspace, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.AgencyWorkspace")
	defer span.End()

	if caller.Subject == nil || !caller.Subject.Role.IsAgencyLevel() {
		if caller.Subject != nil {
			s.logger.Security().AuthzFailure(caller.Subject.ID, authorization.AgencyTuple(agencyID))
		}
		return nil, fmt.Errorf("%w: agency workspace requires an agency role", authorization.ErrUnauthorized)
	}

	agency, err := s.GetAgency(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	options, err := s.storage.ListSidebarOptions(ctx, agency.ID, "")
	if err != nil {
		return nil, err
	}

	subAccounts, err := s.storage.ListSubAccountsByAgencyID(ctx, agency.ID)
	if err != nil {
		return nil, err
	}

	return NewAgencyWorkspace(agency, options, subAccounts, NewViewer(caller.User, caller.Permissions)), nil
}

func (s *Service) SubAccountWorkspace(ctx context.Context, caller *authorization.Caller, subAccount *types.SubAccount) (Workspace, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.SubAccountWorkspace")
	defer span.End()

	agency, err := s.GetAgency(ctx, subAccount.AgencyID)
	if err != nil {
		return nil, err
	}

	options, err := s.storage.ListSidebarOptions(ctx, "", subAccount.ID)
	if err != nil {
		return nil, err
	}

	subAccounts, err := s.storage.ListSubAccountsByAgencyID(ctx, agency.ID)
	if err != nil {
		return nil, err
	}

	return NewSubAccountWorkspace(agency, subAccount, options, subAccounts, NewViewer(caller.User, caller.Permissions)), nil
}

// mirror logs grant mirror failures, the tenant store stays authoritative.
func (s *Service) mirror(what string, err error) {
	if err != nil {
		s.logger.Errorf("failed to mirror %s: %v", what, err)
	}
}

func agencySidebarOptions(agencyID string) []*types.SidebarOption {
	root := "/agency/" + agencyID

	opts := []*types.SidebarOption{
		{Name: "Dashboard", Icon: "category", Link: root},
		{Name: "Launchpad", Icon: "clipboardIcon", Link: root + "/launchpad"},
		{Name: "Billing", Icon: "payment", Link: root + "/billing"},
		{Name: "Settings", Icon: "settings", Link: root + "/settings"},
		{Name: "Sub Accounts", Icon: "person", Link: root + "/all-subaccounts"},
		{Name: "Team", Icon: "shield", Link: root + "/team"},
	}
	for _, o := range opts {
		o.AgencyID = &agencyID
	}

	return opts
}

func subAccountSidebarOptions(subAccountID string) []*types.SidebarOption {
	root := "/subaccount/" + subAccountID

	opts := []*types.SidebarOption{
		{Name: "Launchpad", Icon: "clipboardIcon", Link: root + "/launchpad"},
		{Name: "Settings", Icon: "settings", Link: root + "/settings"},
		{Name: "Funnels", Icon: "pipelines", Link: root + "/funnels"},
		{Name: "Media", Icon: "database", Link: root + "/media"},
		{Name: "Automations", Icon: "chip", Link: root + "/automations"},
		{Name: "Pipelines", Icon: "flag", Link: root + "/pipelines"},
		{Name: "Contacts", Icon: "person", Link: root + "/contacts"},
		{Name: "Dashboard", Icon: "category", Link: root},
	}
	for _, o := range opts {
		o.SubAccountID = &subAccountID
	}

	return opts
}

func displayName(s *types.Subject) string {
	if s.Name != "" {
		return s.Name
	}
	return s.Email
}

func NewService(
	store StorageInterface,
	tx TxRunnerInterface,
	idp IdentityProviderInterface,
	authz AuthorizerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.storage = store
	s.tx = tx
	s.idp = idp
	s.authz = authz
	s.validate = validator.New()

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}

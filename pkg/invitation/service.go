// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/canonical/agency-service/internal/authorization"
	"github.com/canonical/agency-service/internal/logging"
	"github.com/canonical/agency-service/internal/mail"
	"github.com/canonical/agency-service/internal/monitoring"
	"github.com/canonical/agency-service/internal/storage"
	"github.com/canonical/agency-service/internal/tracing"
	"github.com/canonical/agency-service/internal/types"
)

var (
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrOwnerInvitation    = errors.New("agency owners are not invited, they create their agency")
	ErrAgencyNotFound     = errors.New("agency not found")
	ErrAlreadyMember      = errors.New("user already belongs to an agency")
	ErrInvitedElsewhere   = errors.New("email already invited by another agency")
	ErrInvitationNotFound = errors.New("invitation not found")
)

type State int

const (
	NoInvitation State = iota
	Provisioning
	Accepted
	Resolved
	// Skipped is an AGENCY_OWNER invitation, left in place for agency creation.
	Skipped
	// Rejected is an invitation whose invitee already belongs to another agency, it is revoked.
	Rejected
)

func (s State) String() string {
	switch s {
	case NoInvitation:
		return "NO_INVITATION"
	case Provisioning:
		return "PROVISIONING"
	case Accepted:
		return "ACCEPTED"
	case Resolved:
		return "RESOLVED"
	case Skipped:
		return "SKIPPED"
	case Rejected:
		return "REJECTED"
	}
	return "UNKNOWN"
}

type Result struct {
	State    State
	AgencyID *string

	Invitation *types.Invitation
	User       *types.User
}

// Invite is a created invitation with the recovery link that lets the invitee in.
type Invite struct {
	Invitation *types.Invitation `json:"invitation"`
	Link       string            `json:"link"`
	Code       string            `json:"code"`
}

type Service struct {
	storage StorageInterface
	tx      TxRunnerInterface
	idp     IdentityProviderInterface
	authz   AuthorizerInterface
	mailer  MailerInterface

	invitationLifetime string
	validate           *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Accept returns the agency the subject belongs to once any pending invitation
// has been consumed, nil when it belongs to none.
func (s *Service) Accept(ctx context.Context, subject *types.Subject) (*string, error) {
	res, err := s.AcceptWithResult(ctx, subject)
	if err != nil {
		return nil, err
	}

	return res.AgencyID, nil
}

func (s *Service) AcceptWithResult(ctx context.Context, subject *types.Subject) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "invitation.Service.Accept")
	defer span.End()

	if subject == nil || subject.Email == "" {
		return nil, authorization.ErrUnauthenticated
	}

	email := strings.ToLower(subject.Email)

	res, err := s.accept(ctx, subject, email)
	if err != nil && storage.IsTransientError(err) {
		s.logger.Warnf("transient failure accepting invitation for %s, retrying: %v", email, err)
		res, err = s.accept(ctx, subject, email)
		if err != nil && storage.IsTransientError(err) {
			return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
		}
	}
	if err != nil {
		return nil, err
	}

	if res.State == Accepted {
		s.logger.Security().InvitationAccepted(email, *res.AgencyID)

		// mirror failures never fail an acceptance that is already committed
		if err := s.authz.AssignAgencyRole(ctx, *res.AgencyID, res.User.ID, res.User.Role); err != nil {
			s.logger.Errorf("failed to mirror agency role of %s: %v", res.User.ID, err)
		}
	}

	return res, nil
}

func (s *Service) accept(ctx context.Context, subject *types.Subject, email string) (*Result, error) {
	var (
		res     *Result
		pending *types.Invitation
	)

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		inv, err := s.storage.GetPendingInvitationByEmail(ctx, email)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if inv.Role == types.RoleAgencyOwner {
			s.logger.Debugf("invitation %s is for an agency owner, skipping", inv.ID)
			res = &Result{State: Skipped, Invitation: inv}
			return nil
		}

		pending = inv
		s.logger.Debugf("invitation %s: %s -> %s", inv.ID, NoInvitation, Provisioning)

		user, err := s.storage.CreateOrClaimUser(
			ctx,
			&types.User{
				ID:        subject.ID,
				Name:      displayName(subject),
				Email:     email,
				AvatarURL: subject.AvatarURL,
				Role:      inv.Role,
				AgencyID:  &inv.AgencyID,
			},
		)
		if err != nil {
			return err
		}

		key := fmt.Sprintf("invitation:%s:joined", inv.ID)
		_, err = s.storage.CreateNotification(
			ctx,
			&types.Notification{
				Notification:   fmt.Sprintf("%s | Joined", user.Name),
				AgencyID:       inv.AgencyID,
				UserID:         user.ID,
				IdempotencyKey: &key,
			},
		)
		if err != nil {
			return err
		}

		// inside the transaction so that a failed write leaves the invitation pending
		if err := s.idp.UpdateSubjectMetadata(ctx, subject.ID, user.Role); err != nil {
			return err
		}

		if err := s.storage.DeleteInvitationByEmail(ctx, email); err != nil {
			return err
		}

		s.logger.Debugf("invitation %s: %s -> %s", inv.ID, Provisioning, Accepted)

		agencyID := inv.AgencyID
		res = &Result{State: Accepted, AgencyID: &agencyID, Invitation: inv, User: user}
		return nil
	})

	if err != nil {
		if !storage.IsConstraintViolation(err) {
			return nil, err
		}

		resolved, err := s.resolve(ctx, email)
		if err != nil {
			return nil, err
		}

		if pending != nil && resolved.AgencyID != nil && *resolved.AgencyID != pending.AgencyID {
			return s.reject(ctx, pending, email, resolved)
		}

		// a concurrent acceptance for the same email won
		s.logger.Infof("invitation for %s accepted concurrently, resolving", email)
		return resolved, nil
	}

	if res == nil {
		return s.resolve(ctx, email)
	}

	return res, nil
}

// reject revokes an invitation the invitee can never accept, the user already
// belongs to another agency and would otherwise retry it on every sign in.
func (s *Service) reject(ctx context.Context, inv *types.Invitation, email string, resolved *Result) (*Result, error) {
	err := s.storage.SetInvitationStatus(ctx, inv.AgencyID, email, types.InvitationRevoked)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	s.logger.Security().AuthzFailure(resolved.User.ID, fmt.Sprintf("invitation:%s", inv.ID))
	s.logger.Warnf("invitation %s for %s revoked, user belongs to another agency", inv.ID, email)

	return &Result{State: Rejected, AgencyID: resolved.AgencyID, Invitation: inv, User: resolved.User}, nil
}

// resolve is side effect free, it reports the agency of an existing user.
func (s *Service) resolve(ctx context.Context, email string) (*Result, error) {
	user, err := s.storage.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return &Result{State: Resolved}, nil
	}
	if err != nil {
		return nil, err
	}

	return &Result{State: Resolved, AgencyID: user.AgencyID, User: user}, nil
}

func (s *Service) Create(ctx context.Context, agencyID, email string, role types.Role) (*Invite, error) {
	ctx, span := s.tracer.Start(ctx, "invitation.Service.Create")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEmail, email)
	}

	if !role.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}
	if role == types.RoleAgencyOwner {
		return nil, ErrOwnerInvitation
	}

	agency, err := s.storage.GetAgencyByID(ctx, agencyID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrAgencyNotFound
	}
	if err != nil {
		return nil, err
	}

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	if user != nil && user.AgencyID != nil {
		return nil, ErrAlreadyMember
	}

	inv, err := s.storage.UpsertInvitation(ctx, &types.Invitation{Email: email, AgencyID: agency.ID, Role: role})
	if errors.Is(err, storage.ErrDuplicateKey) {
		return nil, ErrInvitedElsewhere
	}
	if err != nil {
		return nil, err
	}

	identityID, err := s.idp.GetIdentityIDByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if identityID == "" {
		identityID, err = s.idp.CreateIdentity(ctx, email)
		if err != nil {
			return nil, err
		}
	}

	link, code, err := s.idp.CreateRecoveryLink(ctx, identityID, s.invitationLifetime)
	if err != nil {
		return nil, err
	}

	msg := &mail.InvitationMail{
		To:         email,
		AgencyName: agency.Name,
		Role:       string(role),
		Link:       link,
		Code:       code,
	}
	if err := s.mailer.SendInvitation(ctx, msg); err != nil {
		// the link is still handed back to the inviter
		s.logger.Warnf("failed to mail invitation to %s: %v", email, err)
	}

	return &Invite{Invitation: inv, Link: link, Code: code}, nil
}

func (s *Service) List(ctx context.Context, agencyID string) ([]*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "invitation.Service.List")
	defer span.End()

	return s.storage.ListInvitationsByAgencyID(ctx, agencyID)
}

// Revoke marks the invitation REVOKED, acceptance only ever consumes PENDING rows.
func (s *Service) Revoke(ctx context.Context, agencyID, email string) error {
	ctx, span := s.tracer.Start(ctx, "invitation.Service.Revoke")
	defer span.End()

	err := s.storage.SetInvitationStatus(ctx, agencyID, strings.ToLower(email), types.InvitationRevoked)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrInvitationNotFound
	}

	return err
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
	mailer MailerInterface,
	invitationLifetime string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.storage = store
	s.tx = tx
	s.idp = idp
	s.authz = authz
	s.mailer = mailer
	s.invitationLifetime = invitationLifetime
	s.validate = validator.New()

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}

// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/canonical/agency-service/internal/authorization"
	"github.com/canonical/agency-service/internal/logging"
	"github.com/canonical/agency-service/internal/monitoring"
	"github.com/canonical/agency-service/internal/tracing"
	"github.com/canonical/agency-service/internal/types"
	"github.com/canonical/agency-service/pkg/hostrouter"
	"github.com/canonical/agency-service/pkg/tenant"
)

var ErrUnauthorized = errors.New("not authorized")

// Query carries the entry page parameters, state and code come back from an
// external provider round trip.
type Query struct {
	Plan  string
	State string
	Code  string
}

// CreateAgencyPrompt asks a subject without an agency to create one.
type CreateAgencyPrompt struct {
	Action       string `json:"action"`
	CompanyEmail string `json:"company_email"`
}

// Entry is either a redirect target or a prompt, never both.
type Entry struct {
	Redirect string
	Prompt   *CreateAgencyPrompt
}

type Service struct {
	invitations InvitationServiceInterface
	tenants     TenantServiceInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// ResolveAgency accepts any pending invitation and sends the subject to its
// workspace: subaccount members to /subaccount, staff to their agency.
func (s *Service) ResolveAgency(ctx context.Context, subject *types.Subject, q Query) (*Entry, error) {
	ctx, span := s.tracer.Start(ctx, "onboarding.Service.ResolveAgency")
	defer span.End()

	agencyID, err := s.invitations.Accept(ctx, subject)
	if err != nil {
		return nil, err
	}

	if agencyID == nil {
		return &Entry{Prompt: &CreateAgencyPrompt{Action: "create_agency", CompanyEmail: subject.Email}}, nil
	}

	user, err := s.user(ctx, subject)
	if err != nil {
		return nil, err
	}

	switch user.Role {
	case types.RoleSubAccountUser, types.RoleSubAccountGuest:
		return &Entry{Redirect: "/" + hostrouter.SubAccountRoot}, nil
	case types.RoleAgencyOwner, types.RoleAgencyAdmin:
	default:
		s.logger.Security().AuthzFailure(subject.ID, authorization.AgencyTuple(*agencyID))
		return nil, fmt.Errorf("%w: role %q", ErrUnauthorized, user.Role)
	}

	if q.Plan != "" {
		return &Entry{Redirect: fmt.Sprintf("/%s/%s/billing?plan=%s", hostrouter.AgencyRoot, *agencyID, url.QueryEscape(q.Plan))}, nil
	}

	if q.State != "" {
		state, err := hostrouter.ParseCallbackState(q.State)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
		return &Entry{Redirect: state.Target(hostrouter.AgencyRoot, q.Code)}, nil
	}

	return &Entry{Redirect: fmt.Sprintf("/%s/%s", hostrouter.AgencyRoot, *agencyID)}, nil
}

// ResolveSubAccount sends the subject to the first subaccount it has access to.
func (s *Service) ResolveSubAccount(ctx context.Context, subject *types.Subject, q Query) (*Entry, error) {
	ctx, span := s.tracer.Start(ctx, "onboarding.Service.ResolveSubAccount")
	defer span.End()

	agencyID, err := s.invitations.Accept(ctx, subject)
	if err != nil {
		return nil, err
	}
	if agencyID == nil {
		return nil, fmt.Errorf("%w: no agency", ErrUnauthorized)
	}

	user, err := s.user(ctx, subject)
	if err != nil {
		return nil, err
	}

	if q.State != "" {
		state, err := hostrouter.ParseCallbackState(q.State)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
		return &Entry{Redirect: state.Target(hostrouter.SubAccountRoot, q.Code)}, nil
	}

	for _, p := range user.Permissions {
		if p.Access {
			return &Entry{Redirect: fmt.Sprintf("/%s/%s", hostrouter.SubAccountRoot, p.SubAccountID)}, nil
		}
	}

	s.logger.Security().AuthzFailure(subject.ID, "subaccount:*")
	return nil, fmt.Errorf("%w: no subaccount access", ErrUnauthorized)
}

func (s *Service) user(ctx context.Context, subject *types.Subject) (*types.UserDetails, error) {
	user, err := s.tenants.GetUserDetails(ctx, subject.Email)
	if errors.Is(err, tenant.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	return user, err
}

func NewService(
	invitations InvitationServiceInterface,
	tenants TenantServiceInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.invitations = invitations
	s.tenants = tenants

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}

// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ory/hydra/v2/oauth2"

	"github.com/canonical/agency-service/internal/logging"
	"github.com/canonical/agency-service/internal/monitoring"
	"github.com/canonical/agency-service/internal/storage"
	"github.com/canonical/agency-service/internal/tracing"
)

var ErrMissingSubject = errors.New("token hook session has no subject")

type Service struct {
	storage     StorageInterface
	identities  SubjectProviderInterface
	invitations InvitationServiceInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// HandleRegistration joins a freshly registered identity to the agency that invited
// it, identities without an invitation are left alone. The hook body only names the
// identity, the email matched against invitations is the verified one the identity
// provider holds.
func (s *Service) HandleRegistration(ctx context.Context, identity *KratosIdentity) error {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleRegistration")
	defer span.End()

	if identity == nil || identity.ID == "" {
		return fmt.Errorf("identity ID is empty")
	}

	subject, err := s.identities.GetSubject(ctx, identity.ID)
	if err != nil {
		return fmt.Errorf("failed to get identity %s: %w", identity.ID, err)
	}

	if subject.Email == "" {
		s.logger.Debugf("Identity %s has no verified email, invitation left pending", identity.ID)
		return nil
	}

	if identity.Traits.Email != "" && !strings.EqualFold(identity.Traits.Email, subject.Email) {
		s.logger.Security().AuthnFailure(fmt.Sprintf("registration hook email mismatch for identity %s", identity.ID))
		return nil
	}

	s.logger.Debugf("Handling registration for identity %s with email %s", subject.ID, subject.Email)

	agencyID, err := s.invitations.Accept(ctx, subject)
	if err != nil {
		return fmt.Errorf("failed to accept invitation: %w", err)
	}

	if agencyID != nil {
		s.logger.Infof("Identity %s joined agency %s", subject.ID, *agencyID)
	}

	return nil
}

// HandleTokenHook adds the agency, role and accessible subaccounts of the user to
// both tokens. Subjects that are not users yet get no extra claims.
func (s *Service) HandleTokenHook(ctx context.Context, req *oauth2.TokenHookRequest) (*TokenHookResponse, error) {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleTokenHook")
	defer span.End()

	if req == nil || req.Session == nil || req.Session.DefaultSession == nil || req.Session.GetSubject() == "" {
		s.logger.Debugf("Token hook rejected: %v", ErrMissingSubject)
		return nil, ErrMissingSubject
	}

	subjectID := req.Session.GetSubject()
	s.logger.Debugf("Handling token hook for subject %s", subjectID)

	resp := new(TokenHookResponse)

	user, err := s.storage.GetUserByID(ctx, subjectID)
	if errors.Is(err, storage.ErrNotFound) {
		return resp, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	claims := map[string]any{ClaimRole: string(user.Role)}
	if user.AgencyID != nil {
		claims[ClaimAgencyID] = *user.AgencyID
	}

	permissions, err := s.storage.ListPermissionsByEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}

	subAccounts := make([]string, 0, len(permissions))
	for _, p := range permissions {
		if p.Access {
			subAccounts = append(subAccounts, p.SubAccountID)
		}
	}
	if len(subAccounts) > 0 {
		claims[ClaimSubAccounts] = subAccounts
	}

	resp.Session.IDToken = claims
	resp.Session.AccessToken = claims

	return resp, nil
}

func NewService(
	store StorageInterface,
	identities SubjectProviderInterface,
	invitations InvitationServiceInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.storage = store
	s.identities = identities
	s.invitations = invitations

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}

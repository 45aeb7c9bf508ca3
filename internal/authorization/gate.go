// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/agency-service/internal/logging"
	"github.com/canonical/agency-service/internal/monitoring"
	"github.com/canonical/agency-service/internal/storage"
	"github.com/canonical/agency-service/internal/tracing"
	"github.com/canonical/agency-service/internal/types"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("not authorized")
)

// Caller is the authenticated subject with the tenant data Decide needs.
// User is nil until the subject has been onboarded.
type Caller struct {
	Subject     *types.Subject
	User        *types.User
	Permissions []*types.Permission
}

func (c *Caller) Principal() Principal {
	return PrincipalFromUser(c.User, c.Permissions)
}

// Gate loads the data of the current caller and runs Decide on it.
type Gate struct {
	subjects SubjectProviderInterface
	storage  GateStorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (g *Gate) Subject(ctx context.Context) (*types.Subject, error) {
	subject, err := g.subjects.CurrentSubject(ctx)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, ErrUnauthenticated
	}
	return subject, nil
}

func (g *Gate) Caller(ctx context.Context) (*Caller, error) {
	ctx, span := g.tracer.Start(ctx, "authorization.Gate.Caller")
	defer span.End()

	subject, err := g.Subject(ctx)
	if err != nil {
		return nil, err
	}

	c := &Caller{Subject: subject}

	user, err := g.storage.GetUserByEmail(ctx, subject.Email)
	if errors.Is(err, storage.ErrNotFound) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	c.User = user

	permissions, err := g.storage.ListPermissionsByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	c.Permissions = permissions

	return c, nil
}

func (g *Gate) AuthorizeAgency(ctx context.Context, agencyID string, action Action) (*Caller, error) {
	ctx, span := g.tracer.Start(ctx, "authorization.Gate.AuthorizeAgency")
	defer span.End()

	c, err := g.Caller(ctx)
	if err != nil {
		return nil, err
	}

	return c, g.enforce(c, action, Resource{AgencyID: agencyID})
}

// AuthorizeSubAccount resolves the owning agency of the subaccount before deciding.
func (g *Gate) AuthorizeSubAccount(ctx context.Context, subAccountID string, action Action) (*Caller, *types.SubAccount, error) {
	ctx, span := g.tracer.Start(ctx, "authorization.Gate.AuthorizeSubAccount")
	defer span.End()

	c, err := g.Caller(ctx)
	if err != nil {
		return nil, nil, err
	}

	subAccount, err := g.storage.GetSubAccountByID(ctx, subAccountID)
	if errors.Is(err, storage.ErrNotFound) {
		// unknown subaccounts look the same as forbidden ones
		g.deny(c, SubAccountTuple(subAccountID), ReasonMissingResource)
		return nil, nil, fmt.Errorf("%w: %s", ErrUnauthorized, ReasonMissingResource)
	}
	if err != nil {
		return nil, nil, err
	}

	if err := g.enforce(c, action, Resource{AgencyID: subAccount.AgencyID, SubAccountID: subAccount.ID}); err != nil {
		return nil, nil, err
	}

	return c, subAccount, nil
}

func (g *Gate) enforce(c *Caller, action Action, r Resource) error {
	d := Decide(c.Principal(), action, r)
	if d.Allowed {
		return nil
	}

	resource := AgencyTuple(r.AgencyID)
	if r.isSubAccount() {
		resource = SubAccountTuple(r.SubAccountID)
	}
	g.deny(c, resource, d.Reason)

	return fmt.Errorf("%w: %s", ErrUnauthorized, d.Reason)
}

func (g *Gate) deny(c *Caller, resource, reason string) {
	g.logger.Debugf("denied %s on %s: %s", c.Subject.ID, resource, reason)
	g.logger.Security().AuthzFailure(c.Subject.ID, resource)
}

func NewGate(subjects SubjectProviderInterface, store GateStorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Gate {
	g := new(Gate)

	g.subjects = subjects
	g.storage = store
	g.tracer = tracer
	g.monitor = monitor
	g.logger = logger

	return g
}

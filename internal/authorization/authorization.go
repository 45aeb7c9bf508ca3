// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"fmt"

	"github.com/canonical/agency-service/internal/logging"
	"github.com/canonical/agency-service/internal/monitoring"
	"github.com/canonical/agency-service/internal/openfga"
	"github.com/canonical/agency-service/internal/tracing"
	"github.com/canonical/agency-service/internal/types"
)

var ErrInvalidAuthModel = fmt.Errorf("invalid authorization model schema")

type Authorizer struct {
	client AuthzClientInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *Authorizer) ValidateModel(ctx context.Context) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.ValidateModel")
	defer span.End()

	model, err := NewAuthorizationModelProvider("v0").GetModel()
	if err != nil {
		return err
	}

	eq, err := a.client.CompareModel(ctx, *model)
	if err != nil {
		return err
	}
	if !eq {
		return ErrInvalidAuthModel
	}
	return nil
}

func (a *Authorizer) AssignAgencyRole(ctx context.Context, agencyID, userID string, role types.Role) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.AssignAgencyRole")
	defer span.End()

	return a.client.WriteTuple(ctx, UserTuple(userID), agencyRelation(role), AgencyTuple(agencyID))
}

func (a *Authorizer) RemoveAgencyRole(ctx context.Context, agencyID, userID string, role types.Role) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.RemoveAgencyRole")
	defer span.End()

	return a.client.DeleteTuple(ctx, UserTuple(userID), agencyRelation(role), AgencyTuple(agencyID))
}

func (a *Authorizer) LinkSubAccount(ctx context.Context, agencyID, subAccountID string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.LinkSubAccount")
	defer span.End()

	return a.client.WriteTuple(ctx, AgencyTuple(agencyID), PARENT_RELATION, SubAccountTuple(subAccountID))
}

func (a *Authorizer) SetSubAccountAccess(ctx context.Context, subAccountID, userID string, access bool) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.SetSubAccountAccess")
	defer span.End()

	if access {
		return a.client.WriteTuple(ctx, UserTuple(userID), MEMBER_RELATION, SubAccountTuple(subAccountID))
	}

	return a.client.DeleteTuple(ctx, UserTuple(userID), MEMBER_RELATION, SubAccountTuple(subAccountID))
}

func (a *Authorizer) DeleteAgency(ctx context.Context, agencyID string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.DeleteAgency")
	defer span.End()

	return a.deleteObject(ctx, AgencyTuple(agencyID))
}

func (a *Authorizer) DeleteSubAccount(ctx context.Context, subAccountID string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.DeleteSubAccount")
	defer span.End()

	return a.deleteObject(ctx, SubAccountTuple(subAccountID))
}

func (a *Authorizer) deleteObject(ctx context.Context, object string) error {
	cToken := ""
	for {
		r, err := a.client.ReadTuples(ctx, "", "", object, cToken)
		if err != nil {
			a.logger.Errorf("error when retrieving tuples: %s", err)
			return err
		}
		if len(r.Tuples) == 0 {
			break
		}
		ts := make([]openfga.Tuple, len(r.Tuples))
		for i, t := range r.Tuples {
			ts[i] = *openfga.NewTuple(t.Key.User, t.Key.Relation, t.Key.Object)
		}
		if err := a.client.DeleteTuples(ctx, ts...); err != nil {
			a.logger.Errorf("error when deleting tuples %v: %s", ts, err)
			return err
		}
		if r.ContinuationToken == "" {
			break
		}
		cToken = r.ContinuationToken
	}
	return nil
}

func NewAuthorizer(client AuthzClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Authorizer {
	authorizer := new(Authorizer)
	authorizer.client = client
	authorizer.tracer = tracer
	authorizer.monitor = monitor
	authorizer.logger = logger

	return authorizer
}

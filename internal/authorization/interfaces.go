// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	fga "github.com/openfga/go-sdk"
	"github.com/openfga/go-sdk/client"

	"github.com/canonical/agency-service/internal/openfga"
	"github.com/canonical/agency-service/internal/types"
)

// AuthorizerInterface mirrors the grants held in the tenant store into OpenFGA.
type AuthorizerInterface interface {
	ValidateModel(context.Context) error

	AssignAgencyRole(ctx context.Context, agencyID, userID string, role types.Role) error
	RemoveAgencyRole(ctx context.Context, agencyID, userID string, role types.Role) error
	LinkSubAccount(ctx context.Context, agencyID, subAccountID string) error
	SetSubAccountAccess(ctx context.Context, subAccountID, userID string, access bool) error

	DeleteAgency(context.Context, string) error
	DeleteSubAccount(context.Context, string) error
}

type AuthzClientInterface interface {
	ReadModel(context.Context) (*fga.AuthorizationModel, error)
	CompareModel(context.Context, fga.AuthorizationModel) (bool, error)
	ReadTuples(context.Context, string, string, string, string) (*client.ClientReadResponse, error)
	WriteTuple(ctx context.Context, user, relation, object string) error
	DeleteTuple(ctx context.Context, user, relation, object string) error
	DeleteTuples(context.Context, ...openfga.Tuple) error
}

type SubjectProviderInterface interface {
	CurrentSubject(ctx context.Context) (*types.Subject, error)
}

type GateStorageInterface interface {
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	ListPermissionsByEmail(ctx context.Context, email string) ([]*types.Permission, error)
	GetSubAccountByID(ctx context.Context, id string) (*types.SubAccount, error)
}

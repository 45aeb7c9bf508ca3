// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"

	"github.com/ory/hydra/v2/oauth2"

	"github.com/canonical/agency-service/internal/types"
)

// StorageInterface is the subset of internal/storage the token hook reads.
type StorageInterface interface {
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	ListPermissionsByEmail(ctx context.Context, email string) ([]*types.Permission, error)
}

// SubjectProviderInterface reads identities from the identity provider.
type SubjectProviderInterface interface {
	GetSubject(ctx context.Context, subjectID string) (*types.Subject, error)
}

// InvitationServiceInterface accepts the pending invitation of a new identity.
type InvitationServiceInterface interface {
	Accept(context.Context, *types.Subject) (*string, error)
}

type ServiceInterface interface {
	HandleRegistration(ctx context.Context, identity *KratosIdentity) error
	HandleTokenHook(ctx context.Context, req *oauth2.TokenHookRequest) (*TokenHookResponse, error)
}

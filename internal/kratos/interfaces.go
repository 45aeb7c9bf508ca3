// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"

	"github.com/canonical/agency-service/internal/types"
)

// IdentityProviderInterface is the boundary the tenant core uses to reach the identity service.
type IdentityProviderInterface interface {
	// CurrentSubject returns nil without error when the request is not authenticated.
	CurrentSubject(ctx context.Context) (*types.Subject, error)
	GetSubject(ctx context.Context, subjectID string) (*types.Subject, error)
	UpdateSubjectMetadata(ctx context.Context, subjectID string, role types.Role) error
}

type ClientInterface interface {
	IdentityProviderInterface

	GetIdentityIDByEmail(ctx context.Context, email string) (string, error)
	CreateIdentity(ctx context.Context, email string) (string, error)
	CreateRecoveryLink(ctx context.Context, identityID string, expiresIn string) (string, string, error)
}

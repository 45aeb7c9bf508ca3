// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

import (
	"context"

	"github.com/canonical/agency-service/internal/types"
)

type ServiceInterface interface {
	ResolveAgency(ctx context.Context, subject *types.Subject, q Query) (*Entry, error)
	ResolveSubAccount(ctx context.Context, subject *types.Subject, q Query) (*Entry, error)
}

type InvitationServiceInterface interface {
	Accept(context.Context, *types.Subject) (*string, error)
}

type TenantServiceInterface interface {
	GetUserDetails(ctx context.Context, email string) (*types.UserDetails, error)
}

type GateInterface interface {
	Subject(ctx context.Context) (*types.Subject, error)
}

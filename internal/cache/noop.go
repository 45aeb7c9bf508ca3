// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cache

import (
	"context"

	"github.com/canonical/agency-service/internal/types"
)

type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (*types.Subject, bool) { return nil, false }
func (NoopCache) Set(context.Context, *types.Subject)                {}
func (NoopCache) Delete(context.Context, string)                     {}

func NewNoopCache() *NoopCache {
	return new(NoopCache)
}

// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cache

import (
	"context"

	"github.com/canonical/agency-service/internal/types"
)

type SubjectCacheInterface interface {
	Get(ctx context.Context, subjectID string) (*types.Subject, bool)
	Set(ctx context.Context, subject *types.Subject)
	Delete(ctx context.Context, subjectID string)
}

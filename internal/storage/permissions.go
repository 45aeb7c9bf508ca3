// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/agency-service/internal/types"
)

var permissionColumns = []string{"id", "email", "subaccount_id", "access"}

func scanPermission(row sq.RowScanner) (*types.Permission, error) {
	p := new(types.Permission)
	if err := row.Scan(&p.ID, &p.Email, &p.SubAccountID, &p.Access); err != nil {
		return nil, err
	}
	return p, nil
}

// UpsertPermission writes the single grant row for (email, subaccount), toggling access
// when it already exists.
func (s *Storage) UpsertPermission(ctx context.Context, p *types.Permission) (*types.Permission, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpsertPermission")
	defer span.End()

	id := p.ID
	if id == "" {
		var err error
		if id, err = newID(); err != nil {
			return nil, err
		}
	}

	row := s.db.Statement(ctx).
		Insert("permissions").
		Columns("id", "email", "subaccount_id", "access").
		Values(id, p.Email, p.SubAccountID, p.Access).
		Suffix("ON CONFLICT (email, subaccount_id) DO UPDATE SET access = EXCLUDED.access " +
			returning(permissionColumns)).
		QueryRowContext(ctx)

	permission, err := scanPermission(row)
	if err != nil {
		return nil, classify(err, "failed to upsert permission")
	}

	return permission, nil
}

func (s *Storage) ListPermissionsByEmail(ctx context.Context, email string) ([]*types.Permission, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListPermissionsByEmail")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(permissionColumns...).
		From("permissions").
		Where(sq.Eq{"email": email}).
		OrderBy("subaccount_id").
		QueryContext(ctx)
	if err != nil {
		return nil, classify(err, "failed to list permissions")
	}
	defer rows.Close()

	permissions := make([]*types.Permission, 0)
	for rows.Next() {
		p, err := scanPermission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan permission: %w", err)
		}
		permissions = append(permissions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(err, "error iterating permission rows")
	}

	return permissions, nil
}

// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/agency-service/internal/types"
)

func (s *Storage) CreateSidebarOptions(ctx context.Context, opts []*types.SidebarOption) error {
	ctx, span := s.tracer.Start(ctx, "storage.CreateSidebarOptions")
	defer span.End()

	if len(opts) == 0 {
		return nil
	}

	query := s.db.Statement(ctx).
		Insert("sidebar_options").
		Columns("id", "name", "icon", "link", "agency_id", "subaccount_id")

	for _, o := range opts {
		id, err := newID()
		if err != nil {
			return err
		}
		o.ID = id
		query = query.Values(id, o.Name, o.Icon, o.Link, o.AgencyID, o.SubAccountID)
	}

	if _, err := query.ExecContext(ctx); err != nil {
		return classify(err, "failed to create sidebar options")
	}

	return nil
}

// ListSidebarOptions lists the options of a subaccount when subAccountID is set,
// otherwise those of the agency.
func (s *Storage) ListSidebarOptions(ctx context.Context, agencyID, subAccountID string) ([]*types.SidebarOption, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListSidebarOptions")
	defer span.End()

	where := sq.Eq{"agency_id": agencyID}
	if subAccountID != "" {
		where = sq.Eq{"subaccount_id": subAccountID}
	}

	rows, err := s.db.Statement(ctx).
		Select("id", "name", "icon", "link", "agency_id", "subaccount_id").
		From("sidebar_options").
		Where(where).
		OrderBy("position").
		QueryContext(ctx)
	if err != nil {
		return nil, classify(err, "failed to list sidebar options")
	}
	defer rows.Close()

	options := make([]*types.SidebarOption, 0)
	for rows.Next() {
		o := new(types.SidebarOption)
		if err := rows.Scan(&o.ID, &o.Name, &o.Icon, &o.Link, &o.AgencyID, &o.SubAccountID); err != nil {
			return nil, fmt.Errorf("failed to scan sidebar option: %w", err)
		}
		options = append(options, o)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(err, "error iterating sidebar option rows")
	}

	return options, nil
}

func (s *Storage) CreatePipeline(ctx context.Context, p *types.Pipeline) (*types.Pipeline, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreatePipeline")
	defer span.End()

	id, err := newID()
	if err != nil {
		return nil, err
	}

	created := new(types.Pipeline)
	err = s.db.Statement(ctx).
		Insert("pipelines").
		Columns("id", "name", "subaccount_id").
		Values(id, p.Name, p.SubAccountID).
		Suffix("RETURNING id, name, subaccount_id, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.Name, &created.SubAccountID, &created.CreatedAt)
	if err != nil {
		return nil, classify(err, "failed to create pipeline")
	}

	return created, nil
}

// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/agency-service/internal/types"
)

var agencyColumns = []string{
	"id", "name", "company_email", "company_phone", "white_label", "agency_logo",
	"address", "city", "zip_code", "state", "country", "goal", "plan",
	"created_at", "updated_at",
}

func scanAgency(row sq.RowScanner) (*types.Agency, error) {
	a := new(types.Agency)
	err := row.Scan(
		&a.ID, &a.Name, &a.CompanyEmail, &a.CompanyPhone, &a.WhiteLabel, &a.AgencyLogo,
		&a.Address, &a.City, &a.ZipCode, &a.State, &a.Country, &a.GoalCount, &a.Plan,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Storage) UpsertAgency(ctx context.Context, a *types.Agency) (*types.Agency, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpsertAgency")
	defer span.End()

	id := a.ID
	if id == "" {
		var err error
		if id, err = newID(); err != nil {
			return nil, err
		}
	}

	row := s.db.Statement(ctx).
		Insert("agencies").
		Columns("id", "name", "company_email", "company_phone", "white_label", "agency_logo",
			"address", "city", "zip_code", "state", "country", "goal", "plan").
		Values(id, a.Name, a.CompanyEmail, a.CompanyPhone, a.WhiteLabel, a.AgencyLogo,
			a.Address, a.City, a.ZipCode, a.State, a.Country, a.GoalCount, a.Plan).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			excluded("name", "company_email", "company_phone", "white_label", "agency_logo",
				"address", "city", "zip_code", "state", "country", "goal") +
			", updated_at = now() " + returning(agencyColumns)).
		QueryRowContext(ctx)

	agency, err := scanAgency(row)
	if err != nil {
		return nil, classify(err, "failed to upsert agency")
	}

	return agency, nil
}

func (s *Storage) GetAgencyByID(ctx context.Context, id string) (*types.Agency, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetAgencyByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(agencyColumns...).
		From("agencies").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	agency, err := scanAgency(row)
	if err != nil {
		return nil, classify(err, "failed to get agency")
	}

	return agency, nil
}

// UpdateAgency follows PATCH semantics: only the fields named in paths are written.
func (s *Storage) UpdateAgency(ctx context.Context, a *types.Agency, paths []string) (*types.Agency, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateAgency")
	defer span.End()

	updateMap := make(map[string]interface{})
	for _, p := range paths {
		switch p {
		case "name":
			updateMap["name"] = a.Name
		case "company_email":
			updateMap["company_email"] = a.CompanyEmail
		case "company_phone":
			updateMap["company_phone"] = a.CompanyPhone
		case "white_label":
			updateMap["white_label"] = a.WhiteLabel
		case "agency_logo":
			updateMap["agency_logo"] = a.AgencyLogo
		case "address":
			updateMap["address"] = a.Address
		case "city":
			updateMap["city"] = a.City
		case "zip_code":
			updateMap["zip_code"] = a.ZipCode
		case "state":
			updateMap["state"] = a.State
		case "country":
			updateMap["country"] = a.Country
		case "goal":
			updateMap["goal"] = a.GoalCount
		case "plan":
			updateMap["plan"] = a.Plan
		}
	}

	if len(updateMap) == 0 {
		return s.GetAgencyByID(ctx, a.ID)
	}

	updateMap["updated_at"] = sq.Expr("now()")

	row := s.db.Statement(ctx).
		Update("agencies").
		SetMap(updateMap).
		Where(sq.Eq{"id": a.ID}).
		Suffix(returning(agencyColumns)).
		QueryRowContext(ctx)

	agency, err := scanAgency(row)
	if err != nil {
		return nil, classify(err, "failed to update agency")
	}

	return agency, nil
}

// DeleteAgency removes the agency; subaccounts, permissions, sidebar options and
// invitations go with it and members are detached by the schema's foreign keys.
func (s *Storage) DeleteAgency(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteAgency")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("agencies").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)
	if err != nil {
		return classify(err, "failed to delete agency")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

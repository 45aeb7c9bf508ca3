// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/agency-service/internal/types"
)

var subAccountColumns = []string{
	"id", "agency_id", "name", "company_email", "company_phone", "subaccount_logo",
	"address", "city", "zip_code", "state", "country", "created_at", "updated_at",
}

func scanSubAccount(row sq.RowScanner) (*types.SubAccount, error) {
	sa := new(types.SubAccount)
	err := row.Scan(
		&sa.ID, &sa.AgencyID, &sa.Name, &sa.CompanyEmail, &sa.CompanyPhone, &sa.SubAccountLogo,
		&sa.Address, &sa.City, &sa.ZipCode, &sa.State, &sa.Country, &sa.CreatedAt, &sa.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return sa, nil
}

func (s *Storage) UpsertSubAccount(ctx context.Context, sa *types.SubAccount) (*types.SubAccount, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpsertSubAccount")
	defer span.End()

	id := sa.ID
	if id == "" {
		var err error
		if id, err = newID(); err != nil {
			return nil, err
		}
	}

	// agency_id is not part of the update set, a subaccount never changes agency
	row := s.db.Statement(ctx).
		Insert("subaccounts").
		Columns("id", "agency_id", "name", "company_email", "company_phone", "subaccount_logo",
			"address", "city", "zip_code", "state", "country").
		Values(id, sa.AgencyID, sa.Name, sa.CompanyEmail, sa.CompanyPhone, sa.SubAccountLogo,
			sa.Address, sa.City, sa.ZipCode, sa.State, sa.Country).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			excluded("name", "company_email", "company_phone", "subaccount_logo",
				"address", "city", "zip_code", "state", "country") +
			", updated_at = now() WHERE subaccounts.agency_id = EXCLUDED.agency_id " +
			returning(subAccountColumns)).
		QueryRowContext(ctx)

	subAccount, err := scanSubAccount(row)
	if err != nil {
		if isNoRows(err) {
			// the id exists under another agency
			return nil, fmt.Errorf("subaccount %s belongs to another agency: %w", id, ErrDuplicateKey)
		}
		return nil, classify(err, "failed to upsert subaccount")
	}

	return subAccount, nil
}

func (s *Storage) GetSubAccountByID(ctx context.Context, id string) (*types.SubAccount, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetSubAccountByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(subAccountColumns...).
		From("subaccounts").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	subAccount, err := scanSubAccount(row)
	if err != nil {
		return nil, classify(err, "failed to get subaccount")
	}

	return subAccount, nil
}

func (s *Storage) ListSubAccountsByAgencyID(ctx context.Context, agencyID string) ([]*types.SubAccount, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListSubAccountsByAgencyID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(subAccountColumns...).
		From("subaccounts").
		Where(sq.Eq{"agency_id": agencyID}).
		OrderBy("created_at").
		QueryContext(ctx)
	if err != nil {
		return nil, classify(err, "failed to list subaccounts")
	}
	defer rows.Close()

	var subAccounts []*types.SubAccount
	for rows.Next() {
		sa, err := scanSubAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subaccount: %w", err)
		}
		subAccounts = append(subAccounts, sa)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(err, "error iterating subaccount rows")
	}

	return subAccounts, nil
}

func (s *Storage) DeleteSubAccount(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteSubAccount")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("subaccounts").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)
	if err != nil {
		return classify(err, "failed to delete subaccount")
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

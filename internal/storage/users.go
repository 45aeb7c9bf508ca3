// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/agency-service/internal/types"
)

var userColumns = []string{
	"id", "name", "email", "avatar_url", "role", "agency_id", "created_at", "updated_at",
}

func scanUser(row sq.RowScanner) (*types.User, error) {
	u := new(types.User)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.AvatarURL, &u.Role, &u.AgencyID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Storage) CreateOrClaimUser(ctx context.Context, u *types.User) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateOrClaimUser")
	defer span.End()

	// A concurrent insert for the same email blocks on the row lock and then
	// sees agency_id already set, so exactly one caller gets a row back.
	row := s.db.Statement(ctx).
		Insert("users").
		Columns("id", "name", "email", "avatar_url", "role", "agency_id").
		Values(u.ID, u.Name, u.Email, u.AvatarURL, u.Role, u.AgencyID).
		Suffix("ON CONFLICT (email) DO UPDATE SET " +
			excluded("role", "agency_id") +
			", updated_at = now() WHERE users.agency_id IS NULL " +
			returning(userColumns)).
		QueryRowContext(ctx)

	user, err := scanUser(row)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("user %s already linked to an agency: %w", u.Email, ErrDuplicateKey)
		}
		return nil, classify(err, "failed to create user")
	}

	return user, nil
}

func (s *Storage) UpsertUserByEmail(ctx context.Context, u *types.User) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpsertUserByEmail")
	defer span.End()

	row := s.db.Statement(ctx).
		Insert("users").
		Columns("id", "name", "email", "avatar_url", "role", "agency_id").
		Values(u.ID, u.Name, u.Email, u.AvatarURL, u.Role, u.AgencyID).
		Suffix("ON CONFLICT (email) DO UPDATE SET " +
			excluded("name", "avatar_url", "role") +
			", updated_at = now() " +
			returning(userColumns)).
		QueryRowContext(ctx)

	user, err := scanUser(row)
	if err != nil {
		return nil, classify(err, "failed to upsert user")
	}

	return user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByEmail")
	defer span.End()

	return s.getUser(ctx, sq.Eq{"email": email})
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByID")
	defer span.End()

	return s.getUser(ctx, sq.Eq{"id": id})
}

func (s *Storage) getUser(ctx context.Context, where sq.Eq) (*types.User, error) {
	row := s.db.Statement(ctx).
		Select(userColumns...).
		From("users").
		Where(where).
		QueryRowContext(ctx)

	user, err := scanUser(row)
	if err != nil {
		return nil, classify(err, "failed to get user")
	}

	return user, nil
}

// UpdateUser writes the fields named in paths: name, avatar_url and role.
func (s *Storage) UpdateUser(ctx context.Context, u *types.User, paths []string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateUser")
	defer span.End()

	updateMap := make(map[string]interface{})
	for _, p := range paths {
		switch p {
		case "name":
			updateMap["name"] = u.Name
		case "avatar_url":
			updateMap["avatar_url"] = u.AvatarURL
		case "role":
			updateMap["role"] = u.Role
		}
	}

	if len(updateMap) == 0 {
		return s.GetUserByID(ctx, u.ID)
	}

	updateMap["updated_at"] = sq.Expr("now()")

	row := s.db.Statement(ctx).
		Update("users").
		SetMap(updateMap).
		Where(sq.Eq{"id": u.ID}).
		Suffix(returning(userColumns)).
		QueryRowContext(ctx)

	user, err := scanUser(row)
	if err != nil {
		return nil, classify(err, "failed to update user")
	}

	return user, nil
}

func (s *Storage) DeleteUser(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteUser")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("users").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)
	if err != nil {
		return classify(err, "failed to delete user")
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

func (s *Storage) ListUsersByAgencyID(ctx context.Context, agencyID string) ([]*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListUsersByAgencyID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"agency_id": agencyID}).
		OrderBy("created_at").
		QueryContext(ctx)
	if err != nil {
		return nil, classify(err, "failed to list users")
	}
	defer rows.Close()

	var users []*types.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(err, "error iterating user rows")
	}

	return users, nil
}

// FindAgencyOwner returns the earliest AGENCY_OWNER member of the agency.
func (s *Storage) FindAgencyOwner(ctx context.Context, agencyID string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.FindAgencyOwner")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"agency_id": agencyID, "role": types.RoleAgencyOwner}).
		OrderBy("created_at").
		Limit(1).
		QueryRowContext(ctx)

	user, err := scanUser(row)
	if err != nil {
		return nil, classify(err, "failed to find agency owner")
	}

	return user, nil
}

func (s *Storage) SetUserAgency(ctx context.Context, userID, agencyID string, role types.Role) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetUserAgency")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("users").
		Set("agency_id", agencyID).
		Set("role", role).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": userID}).
		ExecContext(ctx)
	if err != nil {
		return classify(err, "failed to link user to agency")
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

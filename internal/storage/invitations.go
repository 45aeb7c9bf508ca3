// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/agency-service/internal/types"
)

var invitationColumns = []string{"id", "email", "agency_id", "role", "status", "created_at"}

func scanInvitation(row sq.RowScanner) (*types.Invitation, error) {
	inv := new(types.Invitation)
	if err := row.Scan(&inv.ID, &inv.Email, &inv.AgencyID, &inv.Role, &inv.Status, &inv.CreatedAt); err != nil {
		return nil, err
	}
	return inv, nil
}

// GetPendingInvitationByEmail locks the row, so that inside a transaction a second
// acceptance for the same email waits for the first one to finish.
func (s *Storage) GetPendingInvitationByEmail(ctx context.Context, email string) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetPendingInvitationByEmail")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(invitationColumns...).
		From("invitations").
		Where(sq.Eq{"email": email, "status": types.InvitationPending}).
		Suffix("FOR UPDATE").
		QueryRowContext(ctx)

	inv, err := scanInvitation(row)
	if err != nil {
		return nil, classify(err, "failed to get invitation")
	}

	return inv, nil
}

// UpsertInvitation creates a PENDING invitation, re-opens the existing one for the
// same agency or takes over a revoked one. An email with a live invitation from
// another agency yields ErrDuplicateKey.
func (s *Storage) UpsertInvitation(ctx context.Context, inv *types.Invitation) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpsertInvitation")
	defer span.End()

	id, err := newID()
	if err != nil {
		return nil, err
	}

	row := s.db.Statement(ctx).
		Insert("invitations").
		Columns("id", "email", "agency_id", "role", "status").
		Values(id, inv.Email, inv.AgencyID, inv.Role, types.InvitationPending).
		Suffix("ON CONFLICT (email) DO UPDATE SET " +
			excluded("agency_id", "role", "status") +
			", created_at = now()" +
			" WHERE invitations.agency_id = EXCLUDED.agency_id OR invitations.status = '" + string(types.InvitationRevoked) + "' " +
			returning(invitationColumns)).
		QueryRowContext(ctx)

	created, err := scanInvitation(row)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%s is invited by another agency: %w", inv.Email, ErrDuplicateKey)
		}
		return nil, classify(err, "failed to upsert invitation")
	}

	return created, nil
}

func (s *Storage) ListInvitationsByAgencyID(ctx context.Context, agencyID string) ([]*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListInvitationsByAgencyID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(invitationColumns...).
		From("invitations").
		Where(sq.Eq{"agency_id": agencyID}).
		OrderBy("created_at DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, classify(err, "failed to list invitations")
	}
	defer rows.Close()

	invitations := make([]*types.Invitation, 0)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(err, "error iterating invitation rows")
	}

	return invitations, nil
}

func (s *Storage) SetInvitationStatus(ctx context.Context, agencyID, email string, status types.InvitationStatus) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetInvitationStatus")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("invitations").
		Set("status", status).
		Where(sq.Eq{"agency_id": agencyID, "email": email}).
		ExecContext(ctx)
	if err != nil {
		return classify(err, "failed to update invitation")
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

// DeleteInvitationByEmail is a no-op when the row is already gone.
func (s *Storage) DeleteInvitationByEmail(ctx context.Context, email string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteInvitationByEmail")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Delete("invitations").
		Where(sq.Eq{"email": email}).
		ExecContext(ctx)
	if err != nil {
		return classify(err, "failed to delete invitation")
	}

	return nil
}

func (s *Storage) DeleteOwnerInvitations(ctx context.Context, email string) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteOwnerInvitations")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("invitations").
		Where(sq.Eq{"email": email, "role": types.RoleAgencyOwner}).
		ExecContext(ctx)
	if err != nil {
		return 0, classify(err, "failed to delete owner invitations")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return rows, nil
}

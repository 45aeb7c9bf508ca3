// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/canonical/agency-service/internal/db"
	"github.com/canonical/agency-service/internal/logging"
	"github.com/canonical/agency-service/internal/monitoring"
	"github.com/canonical/agency-service/internal/tracing"
	"github.com/canonical/agency-service/internal/types"
)

type scriptedRow struct {
	err error
}

func (r scriptedRow) Scan(...any) error { return r.err }

// recordingRunner keeps every statement it is handed and answers single row
// queries with rowErr.
type recordingRunner struct {
	queries []string
	args    [][]any
	rowErr  error
}

func (r *recordingRunner) record(query string, args []any) {
	r.queries = append(r.queries, query)
	r.args = append(r.args, args)
}

func (r *recordingRunner) Exec(query string, args ...any) (sql.Result, error) {
	r.record(query, args)
	return nil, errors.New("exec is not scripted")
}

func (r *recordingRunner) Query(query string, args ...any) (*sql.Rows, error) {
	r.record(query, args)
	return nil, errors.New("query is not scripted")
}

func (r *recordingRunner) QueryRowContext(_ context.Context, query string, args ...any) sq.RowScanner {
	r.record(query, args)
	return scriptedRow{err: r.rowErr}
}

type recordingDB struct {
	runner *recordingRunner
}

func (d recordingDB) Statement(context.Context) sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).RunWith(d.runner)
}

func (d recordingDB) TxStatement(context.Context) (db.TxInterface, sq.StatementBuilderType, error) {
	return nil, d.Statement(context.Background()), nil
}

func (d recordingDB) BeginTx(ctx context.Context) (context.Context, db.TxInterface, error) {
	return ctx, nil, nil
}

func (d recordingDB) WithTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (d recordingDB) Ping(context.Context) error { return nil }
func (d recordingDB) Close()                     {}

func newRecordingStorage(rowErr error) (*Storage, *recordingRunner) {
	runner := &recordingRunner{rowErr: rowErr}
	logger := logging.NewNoopLogger()

	return NewStorage(recordingDB{runner: runner}, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("agency-service", logger), logger), runner
}

func assertContains(t *testing.T, query string, fragments ...string) {
	t.Helper()

	for _, f := range fragments {
		if !strings.Contains(query, f) {
			t.Errorf("expected %q in %q", f, query)
		}
	}
}

func TestStorage_CreateOrClaimUser(t *testing.T) {
	agencyID := "agency-1"
	user := &types.User{
		ID:       "subject-1",
		Name:     "Jane",
		Email:    "jane@example.com",
		Role:     types.RoleSubAccountUser,
		AgencyID: &agencyID,
	}

	tests := []struct {
		name        string
		rowErr      error
		expectedErr error
	}{
		{name: "created or claimed", rowErr: nil},
		{name: "row linked to an agency is not claimed", rowErr: sql.ErrNoRows, expectedErr: ErrDuplicateKey},
		{name: "unique violation", rowErr: &pgconn.PgError{Code: "23505"}, expectedErr: ErrDuplicateKey},
		{name: "serialization failure", rowErr: &pgconn.PgError{Code: "40001"}, expectedErr: ErrTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, runner := newRecordingStorage(tt.rowErr)

			_, err := s.CreateOrClaimUser(context.Background(), user)

			if tt.expectedErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.expectedErr != nil && !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected %v, got %v", tt.expectedErr, err)
			}

			if len(runner.queries) != 1 {
				t.Fatalf("expected one statement, got %d", len(runner.queries))
			}

			assertContains(t, runner.queries[0],
				"INSERT INTO users (id,name,email,avatar_url,role,agency_id) VALUES ($1,$2,$3,$4,$5,$6)",
				"ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role, agency_id = EXCLUDED.agency_id",
				"WHERE users.agency_id IS NULL",
				"RETURNING id, name, email, avatar_url, role, agency_id, created_at, updated_at",
			)

			args := runner.args[0]
			if len(args) != 6 || args[0] != "subject-1" || args[2] != "jane@example.com" {
				t.Errorf("unexpected arguments %v", args)
			}
		})
	}
}

func TestStorage_UpsertUserByEmailKeepsAgency(t *testing.T) {
	s, runner := newRecordingStorage(nil)

	if _, err := s.UpsertUserByEmail(context.Background(), &types.User{ID: "subject-1", Email: "jane@example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertContains(t, runner.queries[0], "ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name")
	if strings.Contains(runner.queries[0], "agency_id = EXCLUDED.agency_id") {
		t.Errorf("upsert must not move a user between agencies: %s", runner.queries[0])
	}
}

func TestStorage_GetPendingInvitationByEmailLocksRow(t *testing.T) {
	tests := []struct {
		name        string
		rowErr      error
		expectedErr error
	}{
		{name: "found", rowErr: nil},
		{name: "missing", rowErr: sql.ErrNoRows, expectedErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, runner := newRecordingStorage(tt.rowErr)

			_, err := s.GetPendingInvitationByEmail(context.Background(), "jane@example.com")

			if tt.expectedErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.expectedErr != nil && !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected %v, got %v", tt.expectedErr, err)
			}

			query := runner.queries[0]
			assertContains(t, query, "FROM invitations", "WHERE email = $1 AND status = $2")
			if !strings.HasSuffix(query, "FOR UPDATE") {
				t.Errorf("expected the row to be locked: %s", query)
			}

			args := runner.args[0]
			if len(args) != 2 || args[0] != "jane@example.com" || args[1] != types.InvitationPending {
				t.Errorf("unexpected arguments %v", args)
			}
		})
	}
}

func TestStorage_UpsertInvitationFromAnotherAgency(t *testing.T) {
	s, runner := newRecordingStorage(sql.ErrNoRows)

	_, err := s.UpsertInvitation(context.Background(), &types.Invitation{Email: "jane@example.com", AgencyID: "agency-2", Role: types.RoleAgencyAdmin})

	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	assertContains(t, runner.queries[0],
		"ON CONFLICT (email) DO UPDATE SET agency_id = EXCLUDED.agency_id",
		"WHERE invitations.agency_id = EXCLUDED.agency_id OR invitations.status = 'REVOKED'",
	)
}

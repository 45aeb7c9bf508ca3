// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{name: "nil", err: nil, expected: nil},
		{name: "no rows", err: sql.ErrNoRows, expected: ErrNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, expected: ErrDuplicateKey},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, expected: ErrForeignKeyViolation},
		{name: "serialization failure", err: &pgconn.PgError{Code: "40001"}, expected: ErrTransient},
		{name: "deadlock", err: &pgconn.PgError{Code: "40P01"}, expected: ErrTransient},
		{name: "connection failure", err: &pgconn.PgError{Code: "08006"}, expected: ErrTransient},
		{name: "admin shutdown", err: fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "57P01"}), expected: ErrTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err, "op")

			if tt.expected == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}

			if !errors.Is(got, tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestClassifyKeepsUnknownErrors(t *testing.T) {
	base := &pgconn.PgError{Code: "42P01"}

	got := classify(base, "op")

	var pgErr *pgconn.PgError
	if !errors.As(got, &pgErr) {
		t.Fatalf("expected wrapped pg error, got %v", got)
	}

	if IsTransientError(got) || IsConstraintViolation(got) {
		t.Fatalf("undefined table must not be transient or a constraint violation")
	}
}

func TestIsConstraintViolation(t *testing.T) {
	if !IsConstraintViolation(fmt.Errorf("insert user: %w", ErrDuplicateKey)) {
		t.Error("mapped duplicate key should be a constraint violation")
	}
	if !IsConstraintViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("raw foreign key violation should be a constraint violation")
	}
	if IsConstraintViolation(errors.New("boom")) {
		t.Error("generic error should not be a constraint violation")
	}
}

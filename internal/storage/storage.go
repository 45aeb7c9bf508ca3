// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/canonical/agency-service/internal/db"
	"github.com/canonical/agency-service/internal/logging"
	"github.com/canonical/agency-service/internal/monitoring"
	"github.com/canonical/agency-service/internal/tracing"
)

var _ StorageInterface = (*Storage)(nil)

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate ID: %w", err)
	}
	return id.String(), nil
}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

// excluded builds the SET clause of an ON CONFLICT DO UPDATE from the given columns.
func excluded(columns ...string) string {
	set := make([]string, 0, len(columns))
	for _, c := range columns {
		set = append(set, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}
	return strings.Join(set, ", ")
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

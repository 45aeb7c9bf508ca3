// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/agency-service/internal/types"
)

var notificationColumns = []string{
	"id", "notification", "agency_id", "subaccount_id", "user_id", "idempotency_key", "created_at",
}

func (s *Storage) CreateNotification(ctx context.Context, n *types.Notification) (*types.Notification, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateNotification")
	defer span.End()

	id, err := newID()
	if err != nil {
		return nil, err
	}

	created := new(types.Notification)
	err = s.db.Statement(ctx).
		Insert("notifications").
		Columns("id", "notification", "agency_id", "subaccount_id", "user_id", "idempotency_key").
		Values(id, n.Notification, n.AgencyID, n.SubAccountID, n.UserID, n.IdempotencyKey).
		Suffix("ON CONFLICT (idempotency_key) DO NOTHING "+returning(notificationColumns)).
		QueryRowContext(ctx).
		Scan(
			&created.ID, &created.Notification, &created.AgencyID, &created.SubAccountID,
			&created.UserID, &created.IdempotencyKey, &created.CreatedAt,
		)
	if err != nil {
		if isNoRows(err) {
			s.logger.Debugf("notification %v already recorded", n.IdempotencyKey)
			return nil, nil
		}
		return nil, classify(err, "failed to create notification")
	}

	return created, nil
}

// ListNotificationsByAgencyID returns the agency's notifications, newest first, with their users.
func (s *Storage) ListNotificationsByAgencyID(ctx context.Context, agencyID string) ([]*types.NotificationWithUser, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListNotificationsByAgencyID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(
			"n.id", "n.notification", "n.agency_id", "n.subaccount_id", "n.user_id", "n.created_at",
			"u.id", "u.name", "u.email", "u.avatar_url", "u.role", "u.agency_id", "u.created_at", "u.updated_at",
		).
		From("notifications n").
		Join("users u ON u.id = n.user_id").
		Where(sq.Eq{"n.agency_id": agencyID}).
		OrderBy("n.created_at DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, classify(err, "failed to list notifications")
	}
	defer rows.Close()

	notifications := make([]*types.NotificationWithUser, 0)
	for rows.Next() {
		n := new(types.NotificationWithUser)
		err := rows.Scan(
			&n.ID, &n.Notification.Notification, &n.AgencyID, &n.SubAccountID, &n.UserID, &n.CreatedAt,
			&n.User.ID, &n.User.Name, &n.User.Email, &n.User.AvatarURL, &n.User.Role, &n.User.AgencyID,
			&n.User.CreatedAt, &n.User.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(err, "error iterating notification rows")
	}

	return notifications, nil
}

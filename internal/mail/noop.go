// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mail

import (
	"context"

	"github.com/canonical/agency-service/internal/logging"
)

// NoopMailer only logs the invitation, the link is still returned to the API caller.
type NoopMailer struct {
	logger logging.LoggerInterface
}

func (m *NoopMailer) SendInvitation(ctx context.Context, msg *InvitationMail) error {
	m.logger.Debugf("mail disabled, not sending invitation to %s", msg.To)
	return nil
}

func NewNoopMailer(logger logging.LoggerInterface) *NoopMailer {
	m := new(NoopMailer)
	m.logger = logger

	return m
}

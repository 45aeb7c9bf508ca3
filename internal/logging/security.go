// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
)

const (
	eventStartup            = "sys_startup"
	eventShutdown           = "sys_shutdown"
	eventAuthnFailure       = "authn_login_fail"
	eventAuthzFailure       = "authz_fail"
	eventInvitationAccepted = "user_created"
	eventPermissionChanged  = "authz_change"
)

var _ SecurityLoggerInterface = (*SecurityLogger)(nil)

// SecurityLogger writes OWASP-style security events.
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) SystemStartup() {
	s.l.Info("agency-service is starting", zap.String("event", eventStartup))
}

func (s *SecurityLogger) SystemShutdown() {
	s.l.Info("agency-service is shutting down", zap.String("event", eventShutdown))
}

func (s *SecurityLogger) AuthnFailure(reason string) {
	s.l.Warn("authentication failed",
		zap.String("event", eventAuthnFailure),
		zap.String("reason", reason),
	)
}

func (s *SecurityLogger) AuthzFailure(userID, resource string) {
	s.l.Warn("authorization failed",
		zap.String("event", eventAuthzFailure+":"+userID+","+resource),
		zap.String("user_id", userID),
		zap.String("resource", resource),
	)
}

func (s *SecurityLogger) InvitationAccepted(email, agencyID string) {
	s.l.Info("invitation accepted",
		zap.String("event", eventInvitationAccepted+":"+email),
		zap.String("agency_id", agencyID),
	)
}

func (s *SecurityLogger) PermissionChanged(actor, email, subAccountID string, access bool) {
	s.l.Info("subaccount access changed",
		zap.String("event", eventPermissionChanged+":"+email),
		zap.String("actor", actor),
		zap.String("subaccount_id", subAccountID),
		zap.Bool("access", access),
	)
}

func NewSecurityLogger(l *zap.Logger) *SecurityLogger {
	return &SecurityLogger{l: l}
}

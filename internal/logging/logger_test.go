// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"testing"
)

func TestDebugLogger(t *testing.T) {
	func() {
		_ = recover()
		NewLogger("DEBUG")
	}()
}

func TestInvalidLevel(t *testing.T) {
	func() {
		_ = recover()
		NewLogger("invalid")
	}()
}

func TestNoopLoggerSecurityEvents(t *testing.T) {
	l := NewNoopLogger()

	l.Security().SystemStartup()
	l.Security().AuthzFailure("user-1", "agency:ag-1")
	l.Security().InvitationAccepted("a@b.com", "ag-1")
	l.Security().PermissionChanged("owner-1", "a@b.com", "sa-1", true)
	l.Security().SystemShutdown()

	if err := l.Sync(); err != nil {
		t.Logf("sync on noop logger returned %v", err)
	}
}

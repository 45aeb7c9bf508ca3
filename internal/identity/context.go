// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import "context"

type contextKey struct{}

var subjectContextKey = contextKey{}

// WithSubjectID returns a new context carrying the authenticated subject ID.
func WithSubjectID(ctx context.Context, subjectID string) context.Context {
	return context.WithValue(ctx, subjectContextKey, subjectID)
}

// SubjectIDFromContext returns the authenticated subject ID, false when there is none.
func SubjectIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(subjectContextKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

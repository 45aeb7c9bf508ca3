// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package hostrouter

import "strings"

var (
	publicPaths = []string{
		"/site",
		"/api/uploadthing",
		"/api/v0/status",
		"/api/v0/version",
		"/metrics",
	}
	publicPrefixes = []string{
		"/webhooks/",
	}
)

// IsPublic reports whether path is reachable without an authenticated subject.
func IsPublic(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	for _, p := range publicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

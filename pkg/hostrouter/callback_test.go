// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package hostrouter

import (
	"errors"
	"testing"
)

func TestParseCallbackState(t *testing.T) {
	tests := []struct {
		name     string
		state    string
		expected *CallbackState
		err      error
	}{
		{
			name:     "launchpad",
			state:    "launchpad___agency-1",
			expected: &CallbackState{ReturnPath: "launchpad", TenantID: "agency-1"},
		},
		{
			name:     "leading slash is dropped",
			state:    "/settings/billing___sub-9",
			expected: &CallbackState{ReturnPath: "settings/billing", TenantID: "sub-9"},
		},
		{
			name:     "empty return path",
			state:    "___agency-1",
			expected: &CallbackState{ReturnPath: "", TenantID: "agency-1"},
		},
		{name: "missing state", state: "", err: ErrUnauthorized},
		{name: "no separator", state: "launchpad", err: ErrUnauthorized},
		{name: "empty tenant", state: "launchpad___", err: ErrUnauthorized},
		{name: "double underscore only", state: "launchpad__agency-1", err: ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseCallbackState(tt.state)

			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("expected error %v, got %v", tt.err, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *s != *tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, s)
			}
		})
	}
}

func TestCallbackStateTarget(t *testing.T) {
	s, err := ParseCallbackState("launchpad___agency-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := s.Target(AgencyRoot, "ac_123"); got != "/agency/agency-1/launchpad?code=ac_123" {
		t.Errorf("unexpected target %q", got)
	}
	if got := s.Target(SubAccountRoot, "a b&c"); got != "/subaccount/agency-1/launchpad?code=a+b%26c" {
		t.Errorf("unexpected target %q", got)
	}
}

func TestIsPublic(t *testing.T) {
	tests := map[string]bool{
		"/site":                 true,
		"/api/uploadthing":      true,
		"/webhooks/token":       true,
		"/metrics":              true,
		"/api/v0/status":        true,
		"/sitemap":              false,
		"/agency":               false,
		"/api/v0/me":            false,
		"/webhooks":             false,
		"/api/uploadthing/more": false,
	}

	for path, expected := range tests {
		if got := IsPublic(path); got != expected {
			t.Errorf("IsPublic(%q) = %v, want %v", path, got, expected)
		}
	}
}

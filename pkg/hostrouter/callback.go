// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package hostrouter

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const stateSeparator = "___"

var ErrUnauthorized = errors.New("not authorized")

// CallbackState is the state parameter echoed back by an external provider after
// an OAuth style round trip.
type CallbackState struct {
	ReturnPath string
	TenantID   string
}

// ParseCallbackState splits "<returnPath>___<tenantId>".
func ParseCallbackState(state string) (*CallbackState, error) {
	if state == "" {
		return nil, fmt.Errorf("%w: missing state", ErrUnauthorized)
	}

	parts := strings.Split(state, stateSeparator)
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		return nil, fmt.Errorf("%w: state has no tenant id", ErrUnauthorized)
	}

	return &CallbackState{
		ReturnPath: strings.TrimPrefix(parts[0], "/"),
		TenantID:   parts[1],
	}, nil
}

// Target is where the callback resumes under root, either AgencyRoot or SubAccountRoot.
func (s *CallbackState) Target(root, code string) string {
	return fmt.Sprintf(
		"/%s/%s/%s?code=%s",
		root,
		url.PathEscape(s.TenantID),
		s.ReturnPath,
		url.QueryEscape(code),
	)
}

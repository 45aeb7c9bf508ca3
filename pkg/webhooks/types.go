// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

// KratosIdentity is the body the after registration webhook posts.
type KratosIdentity struct {
	ID     string       `json:"id"`
	Traits KratosTraits `json:"traits"`
}

type KratosTraits struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// TokenHookResponse carries the claims Hydra merges into the issued tokens.
type TokenHookResponse struct {
	Session TokenSession `json:"session"`
}

type TokenSession struct {
	IDToken     map[string]any `json:"id_token,omitempty"`
	AccessToken map[string]any `json:"access_token,omitempty"`
}

const (
	ClaimAgencyID    = "agency_id"
	ClaimRole        = "role"
	ClaimSubAccounts = "subaccounts"
)

// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	_ "embed"
	"encoding/json"
	"fmt"

	fga "github.com/openfga/go-sdk"
	"github.com/openfga/language/pkg/go/transformer"
)

//go:embed model.fga
var v0Model string

type AuthorizationModelProvider struct {
	apiVersion string
}

// GetModel compiles the DSL of the provider's API version into an OpenFGA model.
func (p *AuthorizationModelProvider) GetModel() (*fga.AuthorizationModel, error) {
	var dsl string

	switch p.apiVersion {
	case "v0":
		dsl = v0Model
	default:
		return nil, fmt.Errorf("unknown authorization model version %q", p.apiVersion)
	}

	raw, err := transformer.TransformDSLToJSON(dsl)
	if err != nil {
		return nil, fmt.Errorf("failed to transform authorization model: %w", err)
	}

	model := new(fga.AuthorizationModel)
	if err := json.Unmarshal([]byte(raw), model); err != nil {
		return nil, fmt.Errorf("failed to decode authorization model: %w", err)
	}

	return model, nil
}

func NewAuthorizationModelProvider(apiVersion string) *AuthorizationModelProvider {
	p := new(AuthorizationModelProvider)
	p.apiVersion = apiVersion

	return p
}

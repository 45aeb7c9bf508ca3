// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"testing"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.uber.org/mock/gomock"

	"github.com/canonical/agency-service/internal/logging"
	"github.com/canonical/agency-service/internal/monitoring"
	"github.com/canonical/agency-service/internal/tracing"
)

func TestPolicy_AllowsScopes(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		subject string
		scope   string
		scopes  []string
		want    bool
	}{
		{name: "empty policy", policy: Policy{}, subject: "anyone", want: true},
		{name: "allowed subject", policy: Policy{AllowedSubjects: []string{"svc"}}, subject: "svc", want: true},
		{name: "unknown subject without scope rule", policy: Policy{AllowedSubjects: []string{"svc"}}, subject: "other", want: false},
		{name: "scope claim", policy: Policy{RequiredScope: "agency:admin"}, subject: "other", scope: "openid agency:admin", want: true},
		{name: "scp claim", policy: Policy{RequiredScope: "agency:admin"}, subject: "other", scopes: []string{"agency:admin"}, want: true},
		{name: "missing scope", policy: Policy{RequiredScope: "agency:admin"}, subject: "other", scope: "openid", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.allows(tt.subject, tt.scope, tt.scopes); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestJWTVerifier_RejectsMalformedToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := NewMockProviderInterface(ctrl)
	provider.EXPECT().Verifier(gomock.Any()).DoAndReturn(func(cfg *oidc.Config) *oidc.IDTokenVerifier {
		if !cfg.SkipClientIDCheck {
			t.Error("expected the client ID check to be skipped")
		}
		return oidc.NewVerifier("https://issuer.example.com", &oidc.StaticKeySet{}, cfg)
	})

	logger := logging.NewNoopLogger()
	v := NewJWTVerifier(provider, Policy{}, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("", logger), logger)

	_, err := v.VerifyToken(context.Background(), "not-a-jwt")

	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

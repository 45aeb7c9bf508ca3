// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/canonical/agency-service/internal/logging"
	"github.com/canonical/agency-service/internal/monitoring"
	"github.com/canonical/agency-service/internal/tracing"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNotAllowed   = errors.New("token subject or scope not allowed")
)

// Policy restricts which verified tokens reach the API. An empty policy lets every
// token of the issuer through, a subject in AllowedSubjects or a token carrying
// RequiredScope passes otherwise.
type Policy struct {
	AllowedSubjects []string
	RequiredScope   string
}

func (p Policy) empty() bool {
	return len(p.AllowedSubjects) == 0 && p.RequiredScope == ""
}

func (p Policy) allows(subject, scope string, scopes []string) bool {
	if p.empty() || slices.Contains(p.AllowedSubjects, subject) {
		return true
	}

	if p.RequiredScope == "" {
		return false
	}

	return slices.Contains(strings.Fields(scope), p.RequiredScope) || slices.Contains(scopes, p.RequiredScope)
}

type JWTVerifier struct {
	verifier *oidc.IDTokenVerifier
	policy   Policy

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (v *JWTVerifier) VerifyToken(ctx context.Context, rawToken string) (string, error) {
	ctx, span := v.tracer.Start(ctx, "authentication.JWTVerifier.VerifyToken")
	defer span.End()

	token, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var claims struct {
		Subject string   `json:"sub"`
		Scope   string   `json:"scope"`
		Scopes  []string `json:"scp"`
	}

	if err := token.Claims(&claims); err != nil {
		v.logger.Debugf("Failed to extract claims: %v", err)
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: no subject", ErrInvalidToken)
	}

	if !v.policy.allows(claims.Subject, claims.Scope, claims.Scopes) {
		v.logger.Security().AuthzFailure(claims.Subject, "jwt_api_access")
		return "", ErrNotAllowed
	}

	return claims.Subject, nil
}

func NewJWTVerifier(
	provider ProviderInterface,
	policy Policy,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *JWTVerifier {
	config := &oidc.Config{
		SkipClientIDCheck: true,
		SkipIssuerCheck:   false,
	}

	return NewJWTVerifierDirect(provider.Verifier(config), policy, tracer, monitor, logger)
}

func NewJWTVerifierDirect(
	verifier *oidc.IDTokenVerifier,
	policy Policy,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *JWTVerifier {
	v := new(JWTVerifier)

	v.verifier = verifier
	v.policy = policy

	v.tracer = tracer
	v.monitor = monitor
	v.logger = logger

	return v
}

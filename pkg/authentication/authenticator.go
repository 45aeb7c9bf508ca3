// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"

	"github.com/canonical/agency-service/internal/logging"
	"github.com/canonical/agency-service/internal/monitoring"
	"github.com/canonical/agency-service/internal/tracing"
)

// NewJWTAuthenticator builds the token verifier of the JSON API, keys come from
// jwksURL when set and from the issuer discovery document otherwise.
func NewJWTAuthenticator(
	ctx context.Context,
	issuer string,
	jwksURL string,
	policy Policy,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (TokenVerifierInterface, error) {
	if issuer == "" {
		return nil, fmt.Errorf("issuer is required for JWT authentication")
	}

	if policy.empty() {
		logger.Info("No token policy configured, every token of the issuer is accepted")
	}

	if jwksURL != "" {
		logger.Infof("Using manual JWKS URL: %s", jwksURL)
		return NewJWTVerifierDirect(NewProviderWithJWKS(ctx, issuer, jwksURL), policy, tracer, monitor, logger), nil
	}

	logger.Infof("Using OIDC discovery for issuer: %s", issuer)
	provider, err := NewProvider(ctx, issuer)
	if err != nil {
		return nil, err
	}

	return NewJWTVerifier(provider, policy, tracer, monitor, logger), nil
}

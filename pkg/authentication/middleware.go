// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"errors"
	"net/http"
	"strings"

	httpTypes "github.com/canonical/agency-service/internal/http/types"
	"github.com/canonical/agency-service/internal/identity"
	"github.com/canonical/agency-service/internal/logging"
	"github.com/canonical/agency-service/internal/monitoring"
	"github.com/canonical/agency-service/internal/tracing"
	"github.com/canonical/agency-service/pkg/hostrouter"
)

var ErrMissingToken = errors.New("missing bearer token")

type Middleware struct {
	verifier TokenVerifierInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Authenticate requires a valid bearer token on every non public path and stores
// the identity ID of the token in the request context.
func (m *Middleware) Authenticate() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hostrouter.IsPublic(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			ctx, span := m.tracer.Start(r.Context(), "authentication.Middleware.Authenticate")
			defer span.End()

			token, found := bearerToken(r.Header)
			if !found {
				m.logger.Security().AuthnFailure(ErrMissingToken.Error())
				httpTypes.WriteError(w, http.StatusUnauthorized, ErrMissingToken.Error())
				return
			}

			subjectID, err := m.verifier.VerifyToken(ctx, token)
			if err != nil {
				m.logger.Debugf("JWT verification failed: %v", err)
				m.logger.Security().AuthnFailure("invalid token")
				httpTypes.WriteError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(identity.WithSubjectID(ctx, subjectID)))
		})
	}
}

// bearerToken only supports the "Bearer <token>" format of RFC 6750.
func bearerToken(headers http.Header) (string, bool) {
	token, found := strings.CutPrefix(headers.Get("Authorization"), "Bearer ")
	if !found || token == "" {
		return "", false
	}

	return token, true
}

func NewMiddleware(verifier TokenVerifierInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	m := new(Middleware)

	m.verifier = verifier

	m.tracer = tracer
	m.monitor = monitor
	m.logger = logger

	return m
}

// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/agency-service/internal/db"
	"github.com/canonical/agency-service/internal/identity"
	"github.com/canonical/agency-service/internal/logging"
	"github.com/canonical/agency-service/internal/monitoring"
	"github.com/canonical/agency-service/internal/tracing"
	"github.com/canonical/agency-service/pkg/authentication"
	"github.com/canonical/agency-service/pkg/hostrouter"
	"github.com/canonical/agency-service/pkg/invitation"
	"github.com/canonical/agency-service/pkg/metrics"
	"github.com/canonical/agency-service/pkg/onboarding"
	"github.com/canonical/agency-service/pkg/status"
	"github.com/canonical/agency-service/pkg/tenant"
	"github.com/canonical/agency-service/pkg/webhooks"
)

// hostRoutingExempt are prefixes served on every host without rewriting.
var hostRoutingExempt = []string{"/api/", "/webhooks/", "/metrics"}

type Config struct {
	PrimaryDomain  string
	LandingPath    string
	SignInPath     string
	AllowedOrigins []string
	WebhookAPIKey  string
}

// Services groups the domain services exposed over HTTP.
type Services struct {
	Tenant     tenant.ServiceInterface
	Invitation invitation.ServiceInterface
	Onboarding onboarding.ServiceInterface
	Webhooks   webhooks.ServiceInterface
}

// Gate is satisfied by authorization.Gate.
type Gate interface {
	tenant.GateInterface
	invitation.GateInterface
}

func NewRouter(
	cfg Config,
	services Services,
	gate Gate,
	verifier authentication.TokenVerifierInterface,
	dbClient db.DBClientInterface,
	dependencies map[string]status.PingerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(origins),
		identity.NewMiddleware(tracer, monitor, logger).HTTPMiddleware,
		hostrouter.NewMiddleware(
			hostrouter.NewRouter(cfg.PrimaryDomain, cfg.LandingPath, cfg.SignInPath),
			hostRoutingExempt,
			tracer,
			monitor,
			logger,
		).Route(),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(dependencies, tracer, monitor, logger).RegisterEndpoints(router)
	webhooks.NewAPI(services.Webhooks, cfg.WebhookAPIKey, logger).RegisterEndpoints(router)
	onboarding.NewAPI(services.Onboarding, gate, cfg.SignInPath, tracer, monitor, logger).RegisterEndpoints(router)

	router.Group(func(r chi.Router) {
		if verifier != nil {
			r.Use(authentication.NewMiddleware(verifier, tracer, monitor, logger).Authenticate())
		}

		// invitation acceptance commits its own transaction
		invitation.NewAPI(services.Invitation, gate, tracer, monitor, logger).RegisterEndpoints(r)

		r.Group(func(r chi.Router) {
			r.Use(db.TransactionMiddleware(dbClient, logger))
			tenant.NewAPI(services.Tenant, gate, tracer, monitor, logger).RegisterEndpoints(r)
		})
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}

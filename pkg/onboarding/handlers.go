// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/agency-service/internal/authorization"
	httpTypes "github.com/canonical/agency-service/internal/http/types"
	"github.com/canonical/agency-service/internal/kratos"
	"github.com/canonical/agency-service/internal/logging"
	"github.com/canonical/agency-service/internal/monitoring"
	"github.com/canonical/agency-service/internal/tracing"
	"github.com/canonical/agency-service/internal/types"
	"github.com/canonical/agency-service/pkg/invitation"
)

type API struct {
	service    ServiceInterface
	gate       GateInterface
	signInPath string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/agency", a.agency)
	mux.Get("/subaccount", a.subAccount)
}

func (a *API) agency(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "onboarding.API.agency")
	defer span.End()

	subject, ok := a.subject(w, r)
	if !ok {
		return
	}

	entry, err := a.service.ResolveAgency(ctx, subject, query(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	a.writeEntry(w, r, entry)
}

func (a *API) subAccount(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "onboarding.API.subAccount")
	defer span.End()

	subject, ok := a.subject(w, r)
	if !ok {
		return
	}

	entry, err := a.service.ResolveSubAccount(ctx, subject, query(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	a.writeEntry(w, r, entry)
}

func (a *API) subject(w http.ResponseWriter, r *http.Request) (*types.Subject, bool) {
	subject, err := a.gate.Subject(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return nil, false
	}

	return subject, true
}

func (a *API) writeEntry(w http.ResponseWriter, r *http.Request, entry *Entry) {
	if entry.Prompt != nil {
		httpTypes.WriteJSON(w, http.StatusOK, entry.Prompt)
		return
	}

	http.Redirect(w, r, entry.Redirect, http.StatusTemporaryRedirect)
}

func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, authorization.ErrUnauthenticated):
		http.Redirect(w, r, a.signInPath, http.StatusTemporaryRedirect)
	case errors.Is(err, ErrUnauthorized):
		httpTypes.WriteError(w, http.StatusForbidden, "not authorized")
	case errors.Is(err, invitation.ErrServiceUnavailable), errors.Is(err, kratos.ErrIdentityServiceUnavailable):
		a.logger.Errorf("dependency unavailable: %v", err)
		httpTypes.WriteError(w, http.StatusServiceUnavailable, "service unavailable")
	default:
		a.logger.Errorf("unexpected error: %v", err)
		httpTypes.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

func query(r *http.Request) Query {
	q := r.URL.Query()

	return Query{
		Plan:  q.Get("plan"),
		State: q.Get("state"),
		Code:  q.Get("code"),
	}
}

func NewAPI(service ServiceInterface, gate GateInterface, signInPath string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.service = service
	a.gate = gate
	a.signInPath = signInPath

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}

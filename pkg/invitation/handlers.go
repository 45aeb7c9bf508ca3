// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitation

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/canonical/agency-service/internal/authorization"
	httpTypes "github.com/canonical/agency-service/internal/http/types"
	"github.com/canonical/agency-service/internal/kratos"
	"github.com/canonical/agency-service/internal/logging"
	"github.com/canonical/agency-service/internal/monitoring"
	"github.com/canonical/agency-service/internal/tracing"
	"github.com/canonical/agency-service/internal/types"
)

type CreateInvitationRequest struct {
	Email string     `json:"email" validate:"required,email"`
	Role  types.Role `json:"role" validate:"required"`
}

type AcceptResponse struct {
	State    string  `json:"state"`
	AgencyID *string `json:"agency_id"`
}

type API struct {
	service  ServiceInterface
	gate     GateInterface
	validate *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/api/v0/invitations/accept", a.accept)
	mux.Get("/api/v0/agencies/{agencyID}/invitations", a.list)
	mux.Post("/api/v0/agencies/{agencyID}/invitations", a.create)
	mux.Delete("/api/v0/agencies/{agencyID}/invitations/{email}", a.revoke)
}

func (a *API) accept(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "invitation.API.accept")
	defer span.End()

	subject, err := a.gate.Subject(ctx)
	if err != nil {
		a.writeError(w, err)
		return
	}

	res, err := a.service.AcceptWithResult(ctx, subject)
	if err != nil {
		a.writeError(w, err)
		return
	}

	httpTypes.WriteJSON(w, http.StatusOK, AcceptResponse{State: res.State.String(), AgencyID: res.AgencyID})
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "invitation.API.list")
	defer span.End()

	agencyID := chi.URLParam(r, "agencyID")

	if _, err := a.gate.AuthorizeAgency(ctx, agencyID, authorization.ActionView); err != nil {
		a.writeError(w, err)
		return
	}

	invitations, err := a.service.List(ctx, agencyID)
	if err != nil {
		a.writeError(w, err)
		return
	}

	httpTypes.WriteJSON(w, http.StatusOK, invitations)
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "invitation.API.create")
	defer span.End()

	agencyID := chi.URLParam(r, "agencyID")

	if _, err := a.gate.AuthorizeAgency(ctx, agencyID, authorization.ActionCreate); err != nil {
		a.writeError(w, err)
		return
	}

	req := new(CreateInvitationRequest)
	if err := httpTypes.DecodeJSON(r, req, a.validate); err != nil {
		httpTypes.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	invite, err := a.service.Create(ctx, agencyID, req.Email, req.Role)
	if err != nil {
		a.writeError(w, err)
		return
	}

	httpTypes.WriteJSON(w, http.StatusCreated, invite)
}

func (a *API) revoke(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "invitation.API.revoke")
	defer span.End()

	agencyID := chi.URLParam(r, "agencyID")

	if _, err := a.gate.AuthorizeAgency(ctx, agencyID, authorization.ActionDelete); err != nil {
		a.writeError(w, err)
		return
	}

	if err := a.service.Revoke(ctx, agencyID, chi.URLParam(r, "email")); err != nil {
		a.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authorization.ErrUnauthenticated):
		httpTypes.WriteError(w, http.StatusUnauthorized, "unauthenticated")
	case errors.Is(err, authorization.ErrUnauthorized):
		httpTypes.WriteError(w, http.StatusForbidden, "not authorized")
	case errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrOwnerInvitation):
		httpTypes.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrAgencyNotFound), errors.Is(err, ErrInvitationNotFound):
		httpTypes.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrAlreadyMember), errors.Is(err, ErrInvitedElsewhere):
		httpTypes.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrServiceUnavailable), errors.Is(err, kratos.ErrIdentityServiceUnavailable):
		a.logger.Errorf("dependency unavailable: %v", err)
		httpTypes.WriteError(w, http.StatusServiceUnavailable, "service unavailable")
	default:
		a.logger.Errorf("unexpected error: %v", err)
		httpTypes.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

func NewAPI(service ServiceInterface, gate GateInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.service = service
	a.gate = gate
	a.validate = validator.New()

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}

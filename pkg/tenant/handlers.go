// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

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
	"github.com/canonical/agency-service/internal/storage"
	"github.com/canonical/agency-service/internal/tracing"
	"github.com/canonical/agency-service/internal/types"
)

type InitUserRequest struct {
	Role types.Role `json:"role"`
}

type UpdateAgencyRequest struct {
	Name         *string     `json:"name" validate:"omitempty,min=1"`
	CompanyEmail *string     `json:"company_email" validate:"omitempty,email"`
	CompanyPhone *string     `json:"company_phone"`
	WhiteLabel   *bool       `json:"white_label"`
	AgencyLogo   *string     `json:"agency_logo"`
	Address      *string     `json:"address"`
	City         *string     `json:"city"`
	ZipCode      *string     `json:"zip_code"`
	State        *string     `json:"state"`
	Country      *string     `json:"country"`
	GoalCount    *int        `json:"goal" validate:"omitempty,min=0"`
	Plan         *types.Plan `json:"plan" validate:"omitempty,oneof=price_basic price_unlimited"`
}

// apply copies the set fields onto a and returns their column names.
func (r *UpdateAgencyRequest) apply(a *types.Agency) []string {
	paths := make([]string, 0)

	if r.Name != nil {
		a.Name = *r.Name
		paths = append(paths, "name")
	}
	if r.CompanyEmail != nil {
		a.CompanyEmail = *r.CompanyEmail
		paths = append(paths, "company_email")
	}
	if r.CompanyPhone != nil {
		a.CompanyPhone = *r.CompanyPhone
		paths = append(paths, "company_phone")
	}
	if r.WhiteLabel != nil {
		a.WhiteLabel = *r.WhiteLabel
		paths = append(paths, "white_label")
	}
	if r.AgencyLogo != nil {
		a.AgencyLogo = *r.AgencyLogo
		paths = append(paths, "agency_logo")
	}
	if r.Address != nil {
		a.Address = *r.Address
		paths = append(paths, "address")
	}
	if r.City != nil {
		a.City = *r.City
		paths = append(paths, "city")
	}
	if r.ZipCode != nil {
		a.ZipCode = *r.ZipCode
		paths = append(paths, "zip_code")
	}
	if r.State != nil {
		a.State = *r.State
		paths = append(paths, "state")
	}
	if r.Country != nil {
		a.Country = *r.Country
		paths = append(paths, "country")
	}
	if r.GoalCount != nil {
		a.GoalCount = *r.GoalCount
		paths = append(paths, "goal")
	}
	if r.Plan != nil {
		a.Plan = r.Plan
		paths = append(paths, "plan")
	}

	return paths
}

type UpdateTeamMemberRequest struct {
	Name      *string     `json:"name" validate:"omitempty,min=1"`
	AvatarURL *string     `json:"avatar_url"`
	Role      *types.Role `json:"role"`
}

func (r *UpdateTeamMemberRequest) apply(u *types.User) []string {
	paths := make([]string, 0)

	if r.Name != nil {
		u.Name = *r.Name
		paths = append(paths, "name")
	}
	if r.AvatarURL != nil {
		u.AvatarURL = *r.AvatarURL
		paths = append(paths, "avatar_url")
	}
	if r.Role != nil {
		u.Role = *r.Role
		paths = append(paths, "role")
	}

	return paths
}

type ChangePermissionRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Access *bool  `json:"access" validate:"required"`
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
	mux.Get("/api/v0/me", a.me)
	mux.Put("/api/v0/me", a.initUser)

	mux.Post("/api/v0/agencies", a.upsertAgency)
	mux.Get("/api/v0/agencies/{agencyID}", a.getAgency)
	mux.Patch("/api/v0/agencies/{agencyID}", a.updateAgency)
	mux.Delete("/api/v0/agencies/{agencyID}", a.deleteAgency)
	mux.Get("/api/v0/agencies/{agencyID}/notifications", a.listNotifications)
	mux.Get("/api/v0/agencies/{agencyID}/users", a.listTeam)
	mux.Patch("/api/v0/agencies/{agencyID}/users/{userID}", a.updateTeamMember)
	mux.Delete("/api/v0/agencies/{agencyID}/users/{userID}", a.removeTeamMember)
	mux.Get("/api/v0/agencies/{agencyID}/sidebar", a.agencyWorkspace)
	mux.Post("/api/v0/agencies/{agencyID}/subaccounts", a.upsertSubAccount)

	mux.Get("/api/v0/subaccounts/{subaccountID}", a.getSubAccount)
	mux.Delete("/api/v0/subaccounts/{subaccountID}", a.deleteSubAccount)
	mux.Get("/api/v0/subaccounts/{subaccountID}/sidebar", a.subAccountWorkspace)
	mux.Put("/api/v0/subaccounts/{subaccountID}/permissions", a.changePermission)
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.me")
	defer span.End()

	subject, err := a.gate.Subject(ctx)
	if err != nil {
		a.writeError(w, err)
		return
	}

	details, err := a.service.GetUserDetails(ctx, subject.Email)
	if err != nil {
		a.writeError(w, err)
		return
	}

	httpTypes.WriteJSON(w, http.StatusOK, details)
}

func (a *API) initUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.initUser")
	defer span.End()

	subject, err := a.gate.Subject(ctx)
	if err != nil {
		a.writeError(w, err)
		return
	}

	req := new(InitUserRequest)
	if err := httpTypes.DecodeJSON(r, req, a.validate); err != nil {
		httpTypes.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := a.service.InitUser(ctx, subject, req.Role)
	if err != nil {
		a.writeError(w, err)
		return
	}

	httpTypes.WriteJSON(w, http.StatusOK, user)
}

func (a *API) upsertAgency(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.upsertAgency")
	defer span.End()

	subject, err := a.gate.Subject(ctx)
	if err != nil {
		a.writeError(w, err)
		return
	}

	agency := new(types.Agency)
	if err := httpTypes.DecodeJSON(r, agency, a.validate); err != nil {
		httpTypes.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	status := http.StatusCreated
	if agency.ID != "" {
		if _, err := a.gate.AuthorizeAgency(ctx, agency.ID, authorization.ActionEdit); err != nil {
			a.writeError(w, err)
			return
		}
		status = http.StatusOK
	}

	saved, err := a.service.UpsertAgency(ctx, subject, agency)
	if err != nil {
		a.writeError(w, err)
		return
	}

	httpTypes.WriteJSON(w, status, saved)
}

func (a *API) getAgency(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.getAgency")
	defer span.End()

	agencyID := chi.URLParam(r, "agencyID")

	if _, err := a.gate.AuthorizeAgency(ctx, agencyID, authorization.ActionView); err != nil {
		a.writeError(w, err)
		return
	}

	agency, err := a.service.GetAgency(ctx, agencyID)
	if err != nil {
		a.writeError(w, err)
		return
	}

	httpTypes.WriteJSON(w, http.StatusOK, agency)
}

func (a *API) updateAgency(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.updateAgency")
	defer span.End()

	agencyID := chi.URLParam(r, "agencyID")

	caller, err := a.gate.AuthorizeAgency(ctx, agencyID, authorization.ActionEdit)
	if err != nil {
		a.writeError(w, err)
		return
	}

	req := new(UpdateAgencyRequest)
	if err := httpTypes.DecodeJSON(r, req, a.validate); err != nil {
		httpTypes.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	agency := &types.Agency{ID: agencyID}
	paths := req.apply(agency)

	updated, err := a.service.UpdateAgency(ctx, caller.User, agency, paths)
	if err != nil {
		a.writeError(w, err)
		return
	}

	httpTypes.WriteJSON(w, http.StatusOK, updated)
}

func (a *API) deleteAgency(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.deleteAgency")
	defer span.End()

	agencyID := chi.URLParam(r, "agencyID")

	if _, err := a.gate.AuthorizeAgency(ctx, agencyID, authorization.ActionDelete); err != nil {
		a.writeError(w, err)
		return
	}

	if err := a.service.DeleteAgency(ctx, agencyID); err != nil {
		a.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.listNotifications")
	defer span.End()

	agencyID := chi.URLParam(r, "agencyID")

	if _, err := a.gate.AuthorizeAgency(ctx, agencyID, authorization.ActionView); err != nil {
		a.writeError(w, err)
		return
	}

	notifications, err := a.service.ListNotifications(ctx, agencyID)
	if err != nil {
		a.writeError(w, err)
		return
	}

	httpTypes.WriteJSON(w, http.StatusOK, notifications)
}

func (a *API) listTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.listTeam")
	defer span.End()

	agencyID := chi.URLParam(r, "agencyID")

	if _, err := a.gate.AuthorizeAgency(ctx, agencyID, authorization.ActionView); err != nil {
		a.writeError(w, err)
		return
	}

	users, err := a.service.ListTeam(ctx, agencyID)
	if err != nil {
		a.writeError(w, err)
		return
	}

	httpTypes.WriteJSON(w, http.StatusOK, users)
}

func (a *API) updateTeamMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.updateTeamMember")
	defer span.End()

	agencyID := chi.URLParam(r, "agencyID")

	caller, err := a.gate.AuthorizeAgency(ctx, agencyID, authorization.ActionEdit)
	if err != nil {
		a.writeError(w, err)
		return
	}

	req := new(UpdateTeamMemberRequest)
	if err := httpTypes.DecodeJSON(r, req, a.validate); err != nil {
		httpTypes.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user := &types.User{ID: chi.URLParam(r, "userID")}
	paths := req.apply(user)

	updated, err := a.service.UpdateTeamMember(ctx, caller.User, agencyID, user, paths)
	if err != nil {
		a.writeError(w, err)
		return
	}

	httpTypes.WriteJSON(w, http.StatusOK, updated)
}

func (a *API) removeTeamMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.removeTeamMember")
	defer span.End()

	agencyID := chi.URLParam(r, "agencyID")

	caller, err := a.gate.AuthorizeAgency(ctx, agencyID, authorization.ActionDelete)
	if err != nil {
		a.writeError(w, err)
		return
	}

	if err := a.service.RemoveTeamMember(ctx, caller.User, agencyID, chi.URLParam(r, "userID")); err != nil {
		a.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) agencyWorkspace(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.agencyWorkspace")
	defer span.End()

	agencyID := chi.URLParam(r, "agencyID")

	caller, err := a.gate.AuthorizeAgency(ctx, agencyID, authorization.ActionView)
	if err != nil {
		a.writeError(w, err)
		return
	}

	workspace, err := a.service.AgencyWorkspace(ctx, caller, agencyID)
	if err != nil {
		a.writeError(w, err)
		return
	}

	httpTypes.WriteJSON(w, http.StatusOK, workspace)
}

func (a *API) upsertSubAccount(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.upsertSubAccount")
	defer span.End()

	agencyID := chi.URLParam(r, "agencyID")

	caller, err := a.gate.AuthorizeAgency(ctx, agencyID, authorization.ActionCreate)
	if err != nil {
		a.writeError(w, err)
		return
	}

	subAccount := new(types.SubAccount)
	if err := httpTypes.DecodeJSON(r, subAccount, nil); err != nil {
		httpTypes.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	subAccount.AgencyID = agencyID

	status := http.StatusCreated
	if subAccount.ID != "" {
		status = http.StatusOK
	}

	saved, err := a.service.UpsertSubAccount(ctx, caller.User, subAccount)
	if err != nil {
		a.writeError(w, err)
		return
	}

	httpTypes.WriteJSON(w, status, saved)
}

func (a *API) getSubAccount(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.getSubAccount")
	defer span.End()

	_, subAccount, err := a.gate.AuthorizeSubAccount(ctx, chi.URLParam(r, "subaccountID"), authorization.ActionView)
	if err != nil {
		a.writeError(w, err)
		return
	}

	httpTypes.WriteJSON(w, http.StatusOK, subAccount)
}

func (a *API) deleteSubAccount(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.deleteSubAccount")
	defer span.End()

	caller, subAccount, err := a.gate.AuthorizeSubAccount(ctx, chi.URLParam(r, "subaccountID"), authorization.ActionDelete)
	if err != nil {
		a.writeError(w, err)
		return
	}
	if !agencyStaff(caller) {
		a.writeError(w, authorization.ErrUnauthorized)
		return
	}

	if err := a.service.DeleteSubAccount(ctx, caller.User, subAccount); err != nil {
		a.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) subAccountWorkspace(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.subAccountWorkspace")
	defer span.End()

	caller, subAccount, err := a.gate.AuthorizeSubAccount(ctx, chi.URLParam(r, "subaccountID"), authorization.ActionView)
	if err != nil {
		a.writeError(w, err)
		return
	}

	workspace, err := a.service.SubAccountWorkspace(ctx, caller, subAccount)
	if err != nil {
		a.writeError(w, err)
		return
	}

	httpTypes.WriteJSON(w, http.StatusOK, workspace)
}

// changePermission is reserved to agency staff, subaccount members only hold access.
func (a *API) changePermission(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.changePermission")
	defer span.End()

	caller, subAccount, err := a.gate.AuthorizeSubAccount(ctx, chi.URLParam(r, "subaccountID"), authorization.ActionEdit)
	if err != nil {
		a.writeError(w, err)
		return
	}
	if !agencyStaff(caller) {
		a.writeError(w, authorization.ErrUnauthorized)
		return
	}

	req := new(ChangePermissionRequest)
	if err := httpTypes.DecodeJSON(r, req, a.validate); err != nil {
		httpTypes.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	permission, err := a.service.ChangePermission(ctx, caller.User, subAccount, req.Email, *req.Access)
	if err != nil {
		a.writeError(w, err)
		return
	}

	httpTypes.WriteJSON(w, http.StatusOK, permission)
}

// agencyStaff reports whether the caller is an owner or admin of the agency, subaccount
// members pass the subaccount gate through their access grant alone.
func agencyStaff(caller *authorization.Caller) bool {
	return caller != nil && caller.User != nil && caller.User.Role.IsAgencyLevel()
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authorization.ErrUnauthenticated):
		httpTypes.WriteError(w, http.StatusUnauthorized, "unauthenticated")
	case errors.Is(err, authorization.ErrUnauthorized), errors.Is(err, ErrRoleChange):
		httpTypes.WriteError(w, http.StatusForbidden, "not authorized")
	case errors.Is(err, ErrInvalidAgency),
		errors.Is(err, ErrInvalidSubAccount),
		errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrMissingScope):
		httpTypes.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrAgencyNotFound),
		errors.Is(err, ErrSubAccountNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, storage.ErrNotFound):
		httpTypes.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrAlreadyMember),
		errors.Is(err, ErrOwnerChange),
		errors.Is(err, ErrAgencyOwnerNotFound),
		storage.IsConstraintViolation(err):
		httpTypes.WriteError(w, http.StatusConflict, err.Error())
	case storage.IsTransientError(err), errors.Is(err, kratos.ErrIdentityServiceUnavailable):
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

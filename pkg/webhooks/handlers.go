// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ory/hydra/v2/oauth2"

	httpTypes "github.com/canonical/agency-service/internal/http/types"
	"github.com/canonical/agency-service/internal/logging"
)

type API struct {
	service ServiceInterface
	apiKey  string
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, apiKey string, logger logging.LoggerInterface) *API {
	a := new(API)

	a.service = service
	a.apiKey = apiKey
	a.logger = logger

	return a
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	hooks := mux.With(a.authenticate)

	hooks.Post("/webhooks/registration", a.registration)
	hooks.Post("/webhooks/token", a.tokenHook)
}

// authenticate checks the api key the identity services are configured to send.
func (a *API) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.apiKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		key := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(key), []byte(a.apiKey)) != 1 {
			a.logger.Security().AuthnFailure("invalid webhook api key")
			httpTypes.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (a *API) registration(w http.ResponseWriter, r *http.Request) {
	identity := new(KratosIdentity)
	if err := json.NewDecoder(r.Body).Decode(identity); err != nil {
		a.logger.Errorf("invalid registration hook body: %v", err)
		httpTypes.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := a.service.HandleRegistration(r.Context(), identity); err != nil {
		a.logger.Errorf("registration hook failed: %v", err)
		httpTypes.WriteError(w, http.StatusInternalServerError, "registration hook failed")
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (a *API) tokenHook(w http.ResponseWriter, r *http.Request) {
	req := new(oauth2.TokenHookRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		a.logger.Errorf("invalid token hook body: %v", err)
		httpTypes.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := a.service.HandleTokenHook(r.Context(), req)
	if errors.Is(err, ErrMissingSubject) {
		httpTypes.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		a.logger.Errorf("token hook failed: %v", err)
		httpTypes.WriteError(w, http.StatusInternalServerError, "token hook failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		a.logger.Errorf("failed to encode token hook response: %v", err)
	}
}

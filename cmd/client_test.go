// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	httpTypes "github.com/canonical/agency-service/internal/http/types"
	"github.com/canonical/agency-service/internal/identity"
	"github.com/canonical/agency-service/internal/types"
)

func TestAPIClient_Do(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantErr    bool
		wantStatus int
		wantName   string
	}{
		{
			name: "decodes the data envelope and forwards credentials",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get(identity.HeaderName) != "subject-1" {
					httpTypes.WriteError(w, http.StatusUnauthorized, "missing identity")
					return
				}
				if r.Header.Get("Authorization") != "Bearer token-1" {
					httpTypes.WriteError(w, http.StatusUnauthorized, "missing token")
					return
				}
				httpTypes.WriteJSON(w, http.StatusOK, &types.Agency{ID: "agency-1", Name: "Acme"})
			},
			wantName: "Acme",
		},
		{
			name: "api errors keep status and message",
			handler: func(w http.ResponseWriter, r *http.Request) {
				httpTypes.WriteError(w, http.StatusForbidden, "forbidden")
			},
			wantErr:    true,
			wantStatus: http.StatusForbidden,
		},
		{
			name: "plain text errors are reported",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusBadGateway)
			},
			wantErr:    true,
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := newAPIClient(srv.URL+"/", "subject-1", "token-1")

			agency, err := c.GetAgency(context.Background(), "agency-1")

			if tt.wantErr {
				var apiErr *apiError
				if !errors.As(err, &apiErr) {
					t.Fatalf("expected api error, got %v", err)
				}
				if apiErr.Status != tt.wantStatus {
					t.Errorf("expected status %d, got %d", tt.wantStatus, apiErr.Status)
				}
				if apiErr.Message == "" {
					t.Error("expected a message")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if agency.Name != tt.wantName {
				t.Errorf("expected name %s, got %s", tt.wantName, agency.Name)
			}
		})
	}
}

func TestNewAPIClient_Endpoint(t *testing.T) {
	c := newAPIClient("localhost:8080/", "", "")

	if c.endpoint != "http://localhost:8080" {
		t.Errorf("unexpected endpoint %s", c.endpoint)
	}
}

// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, http.StatusForbidden, "not authorized")

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type %s", ct)
	}

	var body ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	expected := ErrorResponse{Status: http.StatusForbidden, Message: "not authorized"}
	if !reflect.DeepEqual(body, expected) {
		t.Errorf("expected %v, got %v", expected, body)
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	WriteJSON(w, http.StatusCreated, map[string]string{"id": "1"})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}

	var body struct {
		Data    map[string]string `json:"data"`
		Status  int               `json:"status"`
		Message string            `json:"message"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Data["id"] != "1" || body.Status != http.StatusCreated || body.Message != "Created" {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Email string `json:"email" validate:"required,email"`
	}

	tests := []struct {
		name string
		body string
		err  error
	}{
		{name: "valid", body: `{"email": "jane@example.com"}`},
		{name: "malformed", body: `{"email": `, err: ErrInvalidPayload},
		{name: "fails validation", body: `{"email": "jane"}`, err: ErrInvalidPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			p := new(payload)
			err := DecodeJSON(r, p, validator.New())

			if !errors.Is(err, tt.err) {
				t.Errorf("expected error %v, got %v", tt.err, err)
			}
		})
	}
}

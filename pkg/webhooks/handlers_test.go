// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/ory/hydra/v2/oauth2"
	"go.uber.org/mock/gomock"
)

func TestAPI_TokenHook(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*MockServiceInterface, *MockLoggerInterface)
		expectedStatus int
		validateResp   func(*testing.T, *http.Response)
	}{
		{
			name: "success",
			requestBody: &oauth2.TokenHookRequest{
				Session: oauth2.NewSession("user-123"),
			},
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				claims := map[string]any{ClaimAgencyID: "agency-1", ClaimRole: "AGENCY_OWNER"}
				mockSvc.EXPECT().HandleTokenHook(gomock.Any(), gomock.Any()).
					Return(&TokenHookResponse{Session: TokenSession{IDToken: claims, AccessToken: claims}}, nil)
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, resp *http.Response) {
				var result TokenHookResponse
				if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
					t.Errorf("failed to decode response: %v", err)
				}
				if result.Session.IDToken[ClaimAgencyID] != "agency-1" {
					t.Error("expected agency in ID token")
				}
			},
		},
		{
			name:        "invalid request body",
			requestBody: "not-json",
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "missing subject",
			requestBody: &oauth2.TokenHookRequest{},
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockSvc.EXPECT().HandleTokenHook(gomock.Any(), gomock.Any()).Return(nil, ErrMissingSubject)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "service error",
			requestBody: &oauth2.TokenHookRequest{
				Session: oauth2.NewSession("user-123"),
			},
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockSvc.EXPECT().HandleTokenHook(gomock.Any(), gomock.Any()).Return(nil, errors.New("service error"))
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockService := NewMockServiceInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			api := NewAPI(mockService, "", mockLogger)

			req := httptest.NewRequest(http.MethodPost, "/webhooks/token", bytes.NewBuffer(requestBody(t, tt.requestBody)))
			w := httptest.NewRecorder()

			tt.setupMocks(mockService, mockLogger)

			mux := chi.NewMux()
			api.RegisterEndpoints(mux)
			mux.ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedStatus {
				body, _ := io.ReadAll(res.Body)
				t.Fatalf("expected status %d, got %d. Body: %s", tt.expectedStatus, res.StatusCode, string(body))
			}

			if tt.validateResp != nil {
				tt.validateResp(t, res)
			}
		})
	}
}

func TestAPI_Registration(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*MockServiceInterface, *MockLoggerInterface)
		expectedStatus int
	}{
		{
			name: "success",
			requestBody: KratosIdentity{
				ID:     "identity-123",
				Traits: KratosTraits{Email: "user@example.com"},
			},
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockSvc.EXPECT().HandleRegistration(gomock.Any(), &KratosIdentity{ID: "identity-123", Traits: KratosTraits{Email: "user@example.com"}}).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "invalid request body",
			requestBody: "not-json",
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "service error",
			requestBody: KratosIdentity{
				ID:     "identity-456",
				Traits: KratosTraits{Email: "error@example.com"},
			},
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockSvc.EXPECT().HandleRegistration(gomock.Any(), gomock.Any()).Return(errors.New("service error"))
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockService := NewMockServiceInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			api := NewAPI(mockService, "", mockLogger)

			req := httptest.NewRequest(http.MethodPost, "/webhooks/registration", bytes.NewBuffer(requestBody(t, tt.requestBody)))
			w := httptest.NewRecorder()

			tt.setupMocks(mockService, mockLogger)

			mux := chi.NewMux()
			api.RegisterEndpoints(mux)
			mux.ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedStatus {
				body, _ := io.ReadAll(res.Body)
				t.Errorf("expected status %d, got %d. Body: %s", tt.expectedStatus, res.StatusCode, string(body))
			}
		})
	}
}

func requestBody(t *testing.T, v interface{}) []byte {
	if str, ok := v.(string); ok {
		return []byte(str)
	}

	body, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	return body
}

func TestAPI_HookAuthentication(t *testing.T) {
	tests := []struct {
		name           string
		authorization  string
		setupMocks     func(*MockServiceInterface, *MockLoggerInterface, *MockSecurityLoggerInterface)
		expectedStatus int
	}{
		{
			name:          "valid key",
			authorization: "hook-secret",
			setupMocks: func(mockSvc *MockServiceInterface, _ *MockLoggerInterface, _ *MockSecurityLoggerInterface) {
				mockSvc.EXPECT().HandleRegistration(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:          "valid bearer key",
			authorization: "Bearer hook-secret",
			setupMocks: func(mockSvc *MockServiceInterface, _ *MockLoggerInterface, _ *MockSecurityLoggerInterface) {
				mockSvc.EXPECT().HandleRegistration(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "missing key",
			setupMocks: func(_ *MockServiceInterface, mockLogger *MockLoggerInterface, mockSecurity *MockSecurityLoggerInterface) {
				mockLogger.EXPECT().Security().Return(mockSecurity)
				mockSecurity.EXPECT().AuthnFailure(gomock.Any())
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:          "wrong key",
			authorization: "guess",
			setupMocks: func(_ *MockServiceInterface, mockLogger *MockLoggerInterface, mockSecurity *MockSecurityLoggerInterface) {
				mockLogger.EXPECT().Security().Return(mockSecurity)
				mockSecurity.EXPECT().AuthnFailure(gomock.Any())
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockService := NewMockServiceInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockSecurity := NewMockSecurityLoggerInterface(ctrl)
			tt.setupMocks(mockService, mockLogger, mockSecurity)

			mux := chi.NewMux()
			NewAPI(mockService, "hook-secret", mockLogger).RegisterEndpoints(mux)

			body := requestBody(t, KratosIdentity{ID: "identity-123"})
			req := httptest.NewRequest(http.MethodPost, "/webhooks/registration", bytes.NewBuffer(body))
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"
	"testing"

	fga "github.com/openfga/go-sdk"
	"github.com/openfga/go-sdk/client"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/agency-service/internal/openfga"
	"github.com/canonical/agency-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_logger.go -source=../logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_monitor.go -source=../monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_tracing.go -source=../tracing/interfaces.go

func setupAuthorizer(t *testing.T, spans ...string) (*Authorizer, *MockAuthzClientInterface, *MockLoggerInterface) {
	ctrl := gomock.NewController(t)

	mockClient := NewMockAuthzClientInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	for _, s := range spans {
		mockTracer.EXPECT().Start(gomock.Any(), s).
			Return(context.Background(), trace.SpanFromContext(context.Background()))
	}

	return NewAuthorizer(mockClient, mockTracer, mockMonitor, mockLogger), mockClient, mockLogger
}

func TestAuthorizer_ValidateModel(t *testing.T) {
	testCases := []struct {
		name        string
		setupMocks  func(*MockAuthzClientInterface)
		expectedErr error
	}{
		{
			name: "success - models match",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().CompareModel(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, model fga.AuthorizationModel) (bool, error) {
						if len(model.TypeDefinitions) != 3 {
							t.Errorf("expected 3 type definitions, got %d", len(model.TypeDefinitions))
						}
						return true, nil
					},
				)
			},
			expectedErr: nil,
		},
		{
			name: "error - models do not match",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().CompareModel(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			expectedErr: ErrInvalidAuthModel,
		},
		{
			name: "error - client error",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().CompareModel(gomock.Any(), gomock.Any()).Return(false, errors.New("client error"))
			},
			expectedErr: errors.New("client error"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, mockClient, _ := setupAuthorizer(t, "authorization.Authorizer.ValidateModel")
			tc.setupMocks(mockClient)

			err := a.ValidateModel(context.Background())

			if tc.expectedErr != nil {
				if err == nil {
					t.Errorf("expected error %v but got none", tc.expectedErr)
				} else if tc.expectedErr == ErrInvalidAuthModel && !errors.Is(err, ErrInvalidAuthModel) {
					t.Errorf("expected ErrInvalidAuthModel but got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAuthorizer_AssignAgencyRole(t *testing.T) {
	agencyID := "agency-123"
	userID := "user-456"

	testCases := []struct {
		name        string
		role        types.Role
		relation    string
		writeErr    error
		expectedErr bool
	}{
		{name: "owner", role: types.RoleAgencyOwner, relation: OWNER_RELATION},
		{name: "admin", role: types.RoleAgencyAdmin, relation: ADMIN_RELATION},
		{name: "subaccount user", role: types.RoleSubAccountUser, relation: MEMBER_RELATION},
		{name: "subaccount guest", role: types.RoleSubAccountGuest, relation: MEMBER_RELATION},
		{
			name:        "error - write tuple error",
			role:        types.RoleAgencyAdmin,
			relation:    ADMIN_RELATION,
			writeErr:    errors.New("write error"),
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, mockClient, _ := setupAuthorizer(t, "authorization.Authorizer.AssignAgencyRole")

			mockClient.EXPECT().WriteTuple(gomock.Any(), UserTuple(userID), tc.relation, AgencyTuple(agencyID)).Return(tc.writeErr)

			err := a.AssignAgencyRole(context.Background(), agencyID, userID, tc.role)

			if tc.expectedErr && err == nil {
				t.Error("expected error but got none")
			} else if !tc.expectedErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAuthorizer_RemoveAgencyRole(t *testing.T) {
	a, mockClient, _ := setupAuthorizer(t, "authorization.Authorizer.RemoveAgencyRole")
	mockClient.EXPECT().DeleteTuple(gomock.Any(), "user:user-1", "admin", "agency:agency-1").Return(nil)

	if err := a.RemoveAgencyRole(context.Background(), "agency-1", "user-1", types.RoleAgencyAdmin); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthorizer_LinkSubAccount(t *testing.T) {
	a, mockClient, _ := setupAuthorizer(t, "authorization.Authorizer.LinkSubAccount")

	mockClient.EXPECT().WriteTuple(gomock.Any(), AgencyTuple("agency-1"), PARENT_RELATION, SubAccountTuple("sub-1")).Return(nil)

	if err := a.LinkSubAccount(context.Background(), "agency-1", "sub-1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthorizer_SetSubAccountAccess(t *testing.T) {
	testCases := []struct {
		name       string
		access     bool
		setupMocks func(*MockAuthzClientInterface)
	}{
		{
			name:   "grant",
			access: true,
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().WriteTuple(gomock.Any(), UserTuple("user-1"), MEMBER_RELATION, SubAccountTuple("sub-1")).Return(nil)
			},
		},
		{
			name:   "revoke",
			access: false,
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().DeleteTuple(gomock.Any(), UserTuple("user-1"), MEMBER_RELATION, SubAccountTuple("sub-1")).Return(nil)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, mockClient, _ := setupAuthorizer(t, "authorization.Authorizer.SetSubAccountAccess")
			tc.setupMocks(mockClient)

			if err := a.SetSubAccountAccess(context.Background(), "sub-1", "user-1", tc.access); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAuthorizer_DeleteAgency(t *testing.T) {
	agencyID := "agency-123"
	object := AgencyTuple(agencyID)

	tuples := []fga.Tuple{
		{Key: fga.TupleKey{User: UserTuple("u1"), Relation: OWNER_RELATION, Object: object}},
		{Key: fga.TupleKey{User: UserTuple("u2"), Relation: ADMIN_RELATION, Object: object}},
	}

	testCases := []struct {
		name        string
		setupMocks  func(*MockAuthzClientInterface, *MockLoggerInterface)
		expectedErr bool
	}{
		{
			name: "success - single page",
			setupMocks: func(mockClient *MockAuthzClientInterface, _ *MockLoggerInterface) {
				mockClient.EXPECT().ReadTuples(gomock.Any(), "", "", object, "").
					Return(&client.ClientReadResponse{Tuples: tuples}, nil)
				mockClient.EXPECT().DeleteTuples(gomock.Any(), gomock.Len(2)).Return(nil)
			},
		},
		{
			name: "success - paginated",
			setupMocks: func(mockClient *MockAuthzClientInterface, _ *MockLoggerInterface) {
				gomock.InOrder(
					mockClient.EXPECT().ReadTuples(gomock.Any(), "", "", object, "").
						Return(&client.ClientReadResponse{Tuples: tuples[:1], ContinuationToken: "next"}, nil),
					mockClient.EXPECT().DeleteTuples(gomock.Any(), gomock.Any()).Return(nil),
					mockClient.EXPECT().ReadTuples(gomock.Any(), "", "", object, "next").
						Return(&client.ClientReadResponse{Tuples: tuples[1:]}, nil),
					mockClient.EXPECT().DeleteTuples(gomock.Any(), gomock.Any()).Return(nil),
				)
			},
		},
		{
			name: "success - nothing to delete",
			setupMocks: func(mockClient *MockAuthzClientInterface, _ *MockLoggerInterface) {
				mockClient.EXPECT().ReadTuples(gomock.Any(), "", "", object, "").
					Return(&client.ClientReadResponse{Tuples: []fga.Tuple{}}, nil)
			},
		},
		{
			name: "error - read tuples",
			setupMocks: func(mockClient *MockAuthzClientInterface, mockLogger *MockLoggerInterface) {
				mockClient.EXPECT().ReadTuples(gomock.Any(), "", "", object, "").Return(nil, errors.New("read error"))
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedErr: true,
		},
		{
			name: "error - delete tuples",
			setupMocks: func(mockClient *MockAuthzClientInterface, mockLogger *MockLoggerInterface) {
				mockClient.EXPECT().ReadTuples(gomock.Any(), "", "", object, "").
					Return(&client.ClientReadResponse{Tuples: tuples}, nil)
				mockClient.EXPECT().DeleteTuples(gomock.Any(), gomock.Any()).Return(errors.New("delete error"))
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any())
			},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, mockClient, mockLogger := setupAuthorizer(t, "authorization.Authorizer.DeleteAgency")
			tc.setupMocks(mockClient, mockLogger)

			err := a.DeleteAgency(context.Background(), agencyID)

			if tc.expectedErr && err == nil {
				t.Error("expected error but got none")
			} else if !tc.expectedErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAuthorizer_DeleteSubAccount(t *testing.T) {
	a, mockClient, _ := setupAuthorizer(t, "authorization.Authorizer.DeleteSubAccount")

	object := SubAccountTuple("sub-1")
	mockClient.EXPECT().ReadTuples(gomock.Any(), "", "", object, "").
		Return(&client.ClientReadResponse{Tuples: []fga.Tuple{
			{Key: fga.TupleKey{User: AgencyTuple("agency-1"), Relation: PARENT_RELATION, Object: object}},
		}}, nil)
	mockClient.EXPECT().DeleteTuples(gomock.Any(), *openfga.NewTuple(AgencyTuple("agency-1"), PARENT_RELATION, object)).Return(nil)

	if err := a.DeleteSubAccount(context.Background(), "sub-1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthorizationModelProvider(t *testing.T) {
	model, err := NewAuthorizationModelProvider("v0").GetModel()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if model.SchemaVersion != "1.1" {
		t.Errorf("expected schema 1.1, got %s", model.SchemaVersion)
	}

	found := map[string]bool{}
	for _, td := range model.TypeDefinitions {
		found[td.Type] = true
	}
	for _, want := range []string{"user", "agency", "subaccount"} {
		if !found[want] {
			t.Errorf("expected type %s in model", want)
		}
	}

	if _, err := NewAuthorizationModelProvider("v9").GetModel(); err == nil {
		t.Error("expected error for unknown version")
	}
}

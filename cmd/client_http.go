// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"net/http"
	"net/url"

	"github.com/canonical/agency-service/internal/types"
	"github.com/canonical/agency-service/pkg/invitation"
	"github.com/canonical/agency-service/pkg/tenant"
)

func (c *apiClient) Me(ctx context.Context) (*types.UserDetails, error) {
	out := new(types.UserDetails)
	if err := c.do(ctx, http.MethodGet, "/api/v0/me", nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *apiClient) CreateAgency(ctx context.Context, agency *types.Agency) (*types.Agency, error) {
	out := new(types.Agency)
	if err := c.do(ctx, http.MethodPost, "/api/v0/agencies", agency, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *apiClient) GetAgency(ctx context.Context, agencyID string) (*types.Agency, error) {
	out := new(types.Agency)
	if err := c.do(ctx, http.MethodGet, "/api/v0/agencies/"+url.PathEscape(agencyID), nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *apiClient) UpdateAgency(ctx context.Context, agencyID string, in *tenant.UpdateAgencyRequest) (*types.Agency, error) {
	out := new(types.Agency)
	if err := c.do(ctx, http.MethodPatch, "/api/v0/agencies/"+url.PathEscape(agencyID), in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *apiClient) DeleteAgency(ctx context.Context, agencyID string) error {
	return c.do(ctx, http.MethodDelete, "/api/v0/agencies/"+url.PathEscape(agencyID), nil, nil)
}

func (c *apiClient) ListTeam(ctx context.Context, agencyID string) ([]*types.User, error) {
	out := make([]*types.User, 0)
	if err := c.do(ctx, http.MethodGet, "/api/v0/agencies/"+url.PathEscape(agencyID)+"/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *apiClient) RemoveTeamMember(ctx context.Context, agencyID, userID string) error {
	path := "/api/v0/agencies/" + url.PathEscape(agencyID) + "/users/" + url.PathEscape(userID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *apiClient) ListNotifications(ctx context.Context, agencyID string) ([]*types.NotificationWithUser, error) {
	out := make([]*types.NotificationWithUser, 0)
	if err := c.do(ctx, http.MethodGet, "/api/v0/agencies/"+url.PathEscape(agencyID)+"/notifications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *apiClient) ListInvitations(ctx context.Context, agencyID string) ([]*types.Invitation, error) {
	out := make([]*types.Invitation, 0)
	if err := c.do(ctx, http.MethodGet, "/api/v0/agencies/"+url.PathEscape(agencyID)+"/invitations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *apiClient) Invite(ctx context.Context, agencyID string, in *invitation.CreateInvitationRequest) (*types.Invitation, error) {
	out := new(types.Invitation)
	if err := c.do(ctx, http.MethodPost, "/api/v0/agencies/"+url.PathEscape(agencyID)+"/invitations", in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *apiClient) RevokeInvitation(ctx context.Context, agencyID, email string) error {
	path := "/api/v0/agencies/" + url.PathEscape(agencyID) + "/invitations/" + url.PathEscape(email)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *apiClient) AcceptInvitation(ctx context.Context) (*invitation.AcceptResponse, error) {
	out := new(invitation.AcceptResponse)
	if err := c.do(ctx, http.MethodPost, "/api/v0/invitations/accept", nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *apiClient) UpsertSubAccount(ctx context.Context, sa *types.SubAccount) (*types.SubAccount, error) {
	out := new(types.SubAccount)
	if err := c.do(ctx, http.MethodPost, "/api/v0/agencies/"+url.PathEscape(sa.AgencyID)+"/subaccounts", sa, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *apiClient) DeleteSubAccount(ctx context.Context, subAccountID string) error {
	return c.do(ctx, http.MethodDelete, "/api/v0/subaccounts/"+url.PathEscape(subAccountID), nil, nil)
}

func (c *apiClient) ChangePermission(ctx context.Context, subAccountID, email string, access bool) (*types.Permission, error) {
	out := new(types.Permission)
	in := &tenant.ChangePermissionRequest{Email: email, Access: &access}
	if err := c.do(ctx, http.MethodPut, "/api/v0/subaccounts/"+url.PathEscape(subAccountID)+"/permissions", in, out); err != nil {
		return nil, err
	}
	return out, nil
}

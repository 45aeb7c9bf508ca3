// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"encoding/json"
	"strings"

	"github.com/canonical/agency-service/internal/types"
)

const DefaultLogo = "/assets/default-logo.png"

type WorkspaceKind string

const (
	AgencyKind     WorkspaceKind = "agency"
	SubAccountKind WorkspaceKind = "subaccount"
)

// Workspace is the navigation view of either an agency or one of its subaccounts.
// The only implementations are AgencyWorkspace and SubAccountWorkspace.
type Workspace interface {
	Kind() WorkspaceKind
	workspace()
}

// Viewer is who the workspace was resolved for, StaffViewer or MemberViewer.
type Viewer interface {
	viewer()
}

// StaffViewer is an agency owner or admin, the only viewer of an agency workspace.
type StaffViewer struct {
	User        *types.User         `json:"user"`
	Permissions []*types.Permission `json:"permissions"`
}

// MemberViewer is a subaccount user or guest.
type MemberViewer struct {
	User        *types.User         `json:"user"`
	Permissions []*types.Permission `json:"permissions"`
}

func (StaffViewer) viewer()  {}
func (MemberViewer) viewer() {}

type AgencyWorkspace struct {
	Agency      *types.Agency          `json:"agency"`
	Logo        string                 `json:"logo"`
	Options     []*types.SidebarOption `json:"options"`
	SubAccounts []*types.SubAccount    `json:"subaccounts"`
	Viewer      Viewer                 `json:"viewer"`
}

type SubAccountWorkspace struct {
	Agency      *types.Agency          `json:"agency"`
	SubAccount  *types.SubAccount      `json:"subaccount"`
	Logo        string                 `json:"logo"`
	Options     []*types.SidebarOption `json:"options"`
	SubAccounts []*types.SubAccount    `json:"subaccounts"`
	Viewer      Viewer                 `json:"viewer"`
}

func (AgencyWorkspace) Kind() WorkspaceKind     { return AgencyKind }
func (SubAccountWorkspace) Kind() WorkspaceKind { return SubAccountKind }
func (AgencyWorkspace) workspace()              {}
func (SubAccountWorkspace) workspace()          {}

func (w AgencyWorkspace) MarshalJSON() ([]byte, error) {
	type alias AgencyWorkspace
	return json.Marshal(struct {
		Kind WorkspaceKind `json:"kind"`
		alias
	}{AgencyKind, alias(w)})
}

func (w SubAccountWorkspace) MarshalJSON() ([]byte, error) {
	type alias SubAccountWorkspace
	return json.Marshal(struct {
		Kind WorkspaceKind `json:"kind"`
		alias
	}{SubAccountKind, alias(w)})
}

func NewViewer(user *types.User, permissions []*types.Permission) Viewer {
	if user != nil && user.Role.IsAgencyLevel() {
		return StaffViewer{User: user, Permissions: permissions}
	}
	return MemberViewer{User: user, Permissions: permissions}
}

func NewAgencyWorkspace(agency *types.Agency, options []*types.SidebarOption, subAccounts []*types.SubAccount, viewer Viewer) AgencyWorkspace {
	return AgencyWorkspace{
		Agency:      agency,
		Logo:        agencyLogo(agency),
		Options:     nonNil(options),
		SubAccounts: visibleSubAccounts(subAccounts, viewer),
		Viewer:      viewer,
	}
}

// NewSubAccountWorkspace shows the subaccount logo unless the agency is white labelled,
// in which case the agency branding is kept everywhere.
func NewSubAccountWorkspace(agency *types.Agency, subAccount *types.SubAccount, options []*types.SidebarOption, subAccounts []*types.SubAccount, viewer Viewer) SubAccountWorkspace {
	logo := agencyLogo(agency)
	if !agency.WhiteLabel && subAccount.SubAccountLogo != "" {
		logo = subAccount.SubAccountLogo
	}

	return SubAccountWorkspace{
		Agency:      agency,
		SubAccount:  subAccount,
		Logo:        logo,
		Options:     nonNil(options),
		SubAccounts: visibleSubAccounts(subAccounts, viewer),
		Viewer:      viewer,
	}
}

func agencyLogo(a *types.Agency) string {
	if a.AgencyLogo != "" {
		return a.AgencyLogo
	}
	return DefaultLogo
}

// visibleSubAccounts keeps the subaccounts the viewer holds a permission with access on,
// agency owners get one on every subaccount they create.
func visibleSubAccounts(subAccounts []*types.SubAccount, viewer Viewer) []*types.SubAccount {
	var user *types.User
	var permissions []*types.Permission

	switch v := viewer.(type) {
	case StaffViewer:
		user, permissions = v.User, v.Permissions
	case MemberViewer:
		user, permissions = v.User, v.Permissions
	}

	out := make([]*types.SubAccount, 0, len(subAccounts))
	if user == nil {
		return out
	}

	for _, sa := range subAccounts {
		if granted(user.Email, sa.ID, permissions) {
			out = append(out, sa)
		}
	}
	return out
}

func granted(email, subAccountID string, permissions []*types.Permission) bool {
	for _, p := range permissions {
		if p.SubAccountID == subAccountID && p.Access && strings.EqualFold(p.Email, email) {
			return true
		}
	}
	return false
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"strings"

	"github.com/canonical/agency-service/internal/types"
)

type Action string

const (
	ActionView   Action = "view"
	ActionEdit   Action = "edit"
	ActionCreate Action = "create"
	ActionDelete Action = "delete"
)

// Principal is everything Decide needs to know about a caller.
type Principal struct {
	Email       string
	Role        types.Role
	AgencyID    *string
	Permissions []types.Permission
}

// Resource identifies an agency, or one of its subaccounts when SubAccountID is set.
type Resource struct {
	AgencyID     string
	SubAccountID string
}

func (r Resource) isSubAccount() bool {
	return r.SubAccountID != ""
}

type Decision struct {
	Allowed bool
	Action  Action
	Reason  string
}

const (
	ReasonNoAgency        = "user is not attached to an agency"
	ReasonForeignAgency   = "resource belongs to another agency"
	ReasonAgencyRole      = "agency role on owning agency"
	ReasonPermission      = "subaccount permission with access"
	ReasonNoPermission    = "no subaccount permission with access"
	ReasonAgencyOnly      = "agency resources require an agency role"
	ReasonUnknownRole     = "unknown role"
	ReasonMissingResource = "resource has no agency"
)

// PrincipalFromUser builds a Principal from a stored user and its permissions.
func PrincipalFromUser(u *types.User, permissions []*types.Permission) Principal {
	p := Principal{}
	if u == nil {
		return p
	}

	p.Email = u.Email
	p.Role = u.Role
	p.AgencyID = u.AgencyID
	p.Permissions = make([]types.Permission, 0, len(permissions))
	for _, perm := range permissions {
		if perm != nil {
			p.Permissions = append(p.Permissions, *perm)
		}
	}

	return p
}

// Decide is a pure function of its inputs; the action never changes the outcome.
func Decide(principal Principal, action Action, resource Resource) Decision {
	deny := func(reason string) Decision {
		return Decision{Allowed: false, Action: action, Reason: reason}
	}
	allow := func(reason string) Decision {
		return Decision{Allowed: true, Action: action, Reason: reason}
	}

	if principal.AgencyID == nil || *principal.AgencyID == "" {
		return deny(ReasonNoAgency)
	}
	if resource.AgencyID == "" {
		return deny(ReasonMissingResource)
	}
	if *principal.AgencyID != resource.AgencyID {
		return deny(ReasonForeignAgency)
	}

	switch principal.Role {
	case types.RoleAgencyOwner, types.RoleAgencyAdmin:
		return allow(ReasonAgencyRole)
	case types.RoleSubAccountUser, types.RoleSubAccountGuest:
		if !resource.isSubAccount() {
			return deny(ReasonAgencyOnly)
		}
		if HasAccess(principal.Email, resource.SubAccountID, principal.Permissions) {
			return allow(ReasonPermission)
		}
		return deny(ReasonNoPermission)
	}

	return deny(ReasonUnknownRole)
}

// HasAccess reports whether permissions hold an access grant for email on the subaccount.
func HasAccess(email, subAccountID string, permissions []types.Permission) bool {
	for _, p := range permissions {
		if strings.EqualFold(p.Email, email) && p.SubAccountID == subAccountID && p.Access {
			return true
		}
	}
	return false
}

// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

// Role is the platform-wide authorization tier of a User.
type Role string

const (
	RoleAgencyOwner     Role = "AGENCY_OWNER"
	RoleAgencyAdmin     Role = "AGENCY_ADMIN"
	RoleSubAccountUser  Role = "SUBACCOUNT_USER"
	RoleSubAccountGuest Role = "SUBACCOUNT_GUEST"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAgencyOwner, RoleAgencyAdmin, RoleSubAccountUser, RoleSubAccountGuest:
		return true
	}
	return false
}

// IsAgencyLevel reports whether the role grants access to the whole agency.
func (r Role) IsAgencyLevel() bool {
	return r == RoleAgencyOwner || r == RoleAgencyAdmin
}

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationRevoked  InvitationStatus = "REVOKED"
)

type Plan string

const (
	PlanBasic     Plan = "price_basic"
	PlanUnlimited Plan = "price_unlimited"
)

// Subject is the identity provider's view of an authenticated caller.
type Subject struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
	// Role as stored in the identity's private metadata, empty when never assigned.
	Role Role
}

type Agency struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name" validate:"required"`
	CompanyEmail string    `db:"company_email" json:"company_email" validate:"required,email"`
	CompanyPhone string    `db:"company_phone" json:"company_phone"`
	WhiteLabel   bool      `db:"white_label" json:"white_label"`
	AgencyLogo   string    `db:"agency_logo" json:"agency_logo"`
	Address      string    `db:"address" json:"address"`
	City         string    `db:"city" json:"city"`
	ZipCode      string    `db:"zip_code" json:"zip_code"`
	State        string    `db:"state" json:"state"`
	Country      string    `db:"country" json:"country"`
	GoalCount    int       `db:"goal" json:"goal"`
	Plan         *Plan     `db:"plan" json:"plan,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type SubAccount struct {
	ID             string    `db:"id" json:"id"`
	AgencyID       string    `db:"agency_id" json:"agency_id"`
	Name           string    `db:"name" json:"name" validate:"required"`
	CompanyEmail   string    `db:"company_email" json:"company_email" validate:"required,email"`
	CompanyPhone   string    `db:"company_phone" json:"company_phone"`
	SubAccountLogo string    `db:"subaccount_logo" json:"subaccount_logo"`
	Address        string    `db:"address" json:"address"`
	City           string    `db:"city" json:"city"`
	ZipCode        string    `db:"zip_code" json:"zip_code"`
	State          string    `db:"state" json:"state"`
	Country        string    `db:"country" json:"country"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type User struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	AvatarURL string    `db:"avatar_url" json:"avatar_url"`
	Role      Role      `db:"role" json:"role"`
	AgencyID  *string   `db:"agency_id" json:"agency_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Permission grants a user, by email, access to one subaccount.
type Permission struct {
	ID           string `db:"id" json:"id"`
	Email        string `db:"email" json:"email"`
	SubAccountID string `db:"subaccount_id" json:"subaccount_id"`
	Access       bool   `db:"access" json:"access"`
}

type Invitation struct {
	ID        string           `db:"id" json:"id"`
	Email     string           `db:"email" json:"email"`
	AgencyID  string           `db:"agency_id" json:"agency_id"`
	Role      Role             `db:"role" json:"role"`
	Status    InvitationStatus `db:"status" json:"status"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}

type Notification struct {
	ID             string    `db:"id" json:"id"`
	Notification   string    `db:"notification" json:"notification"`
	AgencyID       string    `db:"agency_id" json:"agency_id"`
	SubAccountID   *string   `db:"subaccount_id" json:"subaccount_id,omitempty"`
	UserID         string    `db:"user_id" json:"user_id"`
	IdempotencyKey *string   `db:"idempotency_key" json:"-"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// NotificationWithUser is a notification joined with the user that caused it.
type NotificationWithUser struct {
	Notification
	User User `json:"user"`
}

type SidebarOption struct {
	ID           string  `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	Icon         string  `db:"icon" json:"icon"`
	Link         string  `db:"link" json:"link"`
	AgencyID     *string `db:"agency_id" json:"agency_id,omitempty"`
	SubAccountID *string `db:"subaccount_id" json:"subaccount_id,omitempty"`
}

type Pipeline struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	SubAccountID string    `db:"subaccount_id" json:"subaccount_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// UserDetails is a user with the agency, subaccounts and permissions it can see.
type UserDetails struct {
	User
	Agency      *Agency       `json:"agency,omitempty"`
	SubAccounts []*SubAccount `json:"subaccounts,omitempty"`
	Permissions []*Permission `json:"permissions"`
}

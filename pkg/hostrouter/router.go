// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package hostrouter

import (
	"strings"
)

const (
	AgencyRoot     = "agency"
	SubAccountRoot = "subaccount"
)

type Kind int

const (
	// None leaves the request untouched.
	None Kind = iota
	Rewrite
	Redirect
	PassThrough
)

func (k Kind) String() string {
	switch k {
	case Rewrite:
		return "rewrite"
	case Redirect:
		return "redirect"
	case PassThrough:
		return "pass-through"
	}
	return "none"
}

// Decision is the outcome of routing one request, Path carries the query string.
type Decision struct {
	Kind Kind
	Path string
}

// Router resolves a Host header, path and query to a tenant route.
type Router struct {
	primaryDomain string
	landingPath   string
	signInPath    string
}

// Route applies, in order: subdomain rewrite, auth redirect, landing rewrite and
// tenant root pass-through.
func (r *Router) Route(host, path, rawQuery string) Decision {
	pathWithQuery := path
	if rawQuery != "" {
		pathWithQuery += "?" + rawQuery
	}

	if segment := r.Subdomain(host); segment != "" {
		return Decision{Kind: Rewrite, Path: "/" + segment + pathWithQuery}
	}

	if path == "/sign-in" || path == "/sign-up" {
		return Decision{Kind: Redirect, Path: r.signInPath}
	}

	if path == "" || path == "/" || (path == r.landingPath && strings.EqualFold(host, r.primaryDomain)) {
		return Decision{Kind: Rewrite, Path: r.landingPath}
	}

	if strings.HasPrefix(path, "/"+AgencyRoot) || strings.HasPrefix(path, "/"+SubAccountRoot) {
		return Decision{Kind: PassThrough, Path: pathWithQuery}
	}

	return Decision{Kind: None}
}

// Subdomain returns what is left of host once the primary domain suffix is removed,
// or the whole host for custom domains. The primary domain itself has no segment.
// Hosts are case-insensitive so the segment is lowercased, and the dot separating it
// from the primary domain is dropped: "Acme.example.com" yields "acme", not "Acme.".
func (r *Router) Subdomain(host string) string {
	host = strings.ToLower(host)

	if host == "" || r.primaryDomain == "" {
		return ""
	}

	rest, found := strings.CutSuffix(host, r.primaryDomain)
	if !found {
		return host
	}

	return strings.TrimSuffix(rest, ".")
}

func NewRouter(primaryDomain, landingPath, signInPath string) *Router {
	r := new(Router)

	r.primaryDomain = strings.ToLower(primaryDomain)
	r.landingPath = landingPath
	r.signInPath = signInPath

	return r
}

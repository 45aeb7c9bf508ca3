// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint   string  `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint   string  `envconfig:"otel_http_endpoint"`
	TracingEnabled     bool    `envconfig:"tracing_enabled" default:"true"`
	TracingSampleRatio float64 `envconfig:"tracing_sample_ratio" default:"1"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	// PrimaryDomain is stripped from the Host header to find the tenant subdomain.
	PrimaryDomain string `envconfig:"primary_domain" required:"true"`
	LandingPath   string `envconfig:"landing_path" default:"/site"`
	SignInPath    string `envconfig:"sign_in_path" default:"/agency/sign-in"`

	AllowedOrigins []string `envconfig:"allowed_origins"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	KratosAdminURL     string `envconfig:"kratos_admin_url" required:"true"`
	InvitationLifetime string `envconfig:"invitation_lifetime" default:"24h"`

	// WebhookAPIKey is the value Kratos and Hydra send in the Authorization header of
	// their hooks, hooks are not authenticated when empty.
	WebhookAPIKey string `envconfig:"webhook_api_key"`

	AuthenticationEnabled bool     `envconfig:"authentication_enabled" default:"false"`
	OAuth2Issuer          string   `envconfig:"oauth2_issuer"`
	OAuth2JWKSURL         string   `envconfig:"oauth2_jwks_url"`
	OAuth2AllowedSubjects []string `envconfig:"oauth2_allowed_subjects"`
	OAuth2RequiredScope   string   `envconfig:"oauth2_required_scope"`

	AuthorizationEnabled bool   `envconfig:"authorization_enabled" default:"false"`
	OpenfgaApiScheme     string `envconfig:"openfga_api_scheme" default:""`
	OpenfgaApiHost       string `envconfig:"openfga_api_host"`
	OpenfgaApiToken      string `envconfig:"openfga_api_token"`
	OpenfgaStoreId       string `envconfig:"openfga_store_id"`
	OpenfgaModelId       string `envconfig:"openfga_authorization_model_id" default:""`

	SubjectCacheEnabled bool          `envconfig:"subject_cache_enabled" default:"false"`
	RedisAddress        string        `envconfig:"redis_address" default:"localhost:6379"`
	RedisPassword       string        `envconfig:"redis_password"`
	RedisDB             int           `envconfig:"redis_db" default:"0"`
	SubjectCacheTTL     time.Duration `envconfig:"subject_cache_ttl" default:"30s"`

	MailEnabled   bool   `envconfig:"mail_enabled" default:"false"`
	MailSender    string `envconfig:"mail_sender"`
	MailAWSRegion string `envconfig:"mail_aws_region" default:"eu-west-1"`
}

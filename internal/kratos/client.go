// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	ory "github.com/ory/client-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/canonical/agency-service/internal/cache"
	"github.com/canonical/agency-service/internal/identity"
	"github.com/canonical/agency-service/internal/logging"
	"github.com/canonical/agency-service/internal/monitoring"
	"github.com/canonical/agency-service/internal/tracing"
	"github.com/canonical/agency-service/internal/types"
)

const (
	metadataRoleKey = "role"
	kratosComponent = "kratos"
)

var (
	ErrIdentityServiceUnavailable = errors.New("identity service unavailable")
	ErrIdentityNotFound           = errors.New("identity not found")
)

var _ ClientInterface = (*Client)(nil)

type Client struct {
	client *ory.APIClient
	cache  cache.SubjectCacheInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// classify separates answers from the identity service from failures to reach it.
func (c *Client) classify(r *http.Response, err error, op string) error {
	available := 1.0
	defer func() {
		if mErr := c.monitor.SetDependencyAvailability(map[string]string{"component": kratosComponent}, available); mErr != nil {
			c.logger.Debugf("failed to record kratos availability: %v", mErr)
		}
	}()

	if err == nil {
		return nil
	}

	if r == nil || r.StatusCode >= http.StatusInternalServerError {
		available = 0.0
		return fmt.Errorf("%s: %w: %v", op, ErrIdentityServiceUnavailable, err)
	}

	if r.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", op, ErrIdentityNotFound)
	}

	return fmt.Errorf("%s: %w", op, err)
}

func (c *Client) CurrentSubject(ctx context.Context) (*types.Subject, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.CurrentSubject")
	defer span.End()

	subjectID, ok := identity.SubjectIDFromContext(ctx)
	if !ok {
		return nil, nil
	}

	subject, err := c.GetSubject(ctx, subjectID)
	if errors.Is(err, ErrIdentityNotFound) {
		// a session for an identity that no longer exists is no session
		c.logger.Security().AuthnFailure("unknown identity " + subjectID)
		return nil, nil
	}

	return subject, err
}

func (c *Client) GetSubject(ctx context.Context, subjectID string) (*types.Subject, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.GetSubject")
	defer span.End()

	if subject, ok := c.cache.Get(ctx, subjectID); ok {
		return subject, nil
	}

	i, r, err := c.client.IdentityAPI.GetIdentity(ctx, subjectID).Execute()
	if err := c.classify(r, err, "failed to get identity"); err != nil {
		return nil, err
	}

	subject := subjectFromIdentity(i)
	c.cache.Set(ctx, subject)

	return subject, nil
}

// UpdateSubjectMetadata sets the role key of the identity's admin metadata with a
// single patch, other keys are never read or written. Writing the same role twice
// is harmless.
func (c *Client) UpdateSubjectMetadata(ctx context.Context, subjectID string, role types.Role) error {
	ctx, span := c.tracer.Start(ctx, "kratos.UpdateSubjectMetadata")
	defer span.End()

	patch := []ory.JsonPatch{
		{Op: "add", Path: "/metadata_admin/" + metadataRoleKey, Value: string(role)},
	}

	_, r, err := c.client.IdentityAPI.PatchIdentity(ctx, subjectID).JsonPatch(patch).Execute()
	if err != nil && r != nil && r.StatusCode == http.StatusBadRequest {
		// a key can only be added below an existing object, identities without
		// admin metadata get it created
		c.logger.Debugf("identity %s has no admin metadata, creating it", subjectID)

		patch = []ory.JsonPatch{
			{Op: "add", Path: "/metadata_admin", Value: map[string]interface{}{metadataRoleKey: string(role)}},
		}
		_, r, err = c.client.IdentityAPI.PatchIdentity(ctx, subjectID).JsonPatch(patch).Execute()
	}
	if err := c.classify(r, err, "failed to update identity metadata"); err != nil {
		return err
	}

	c.cache.Delete(ctx, subjectID)

	return nil
}

func (c *Client) GetIdentityIDByEmail(ctx context.Context, email string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.GetIdentityIDByEmail")
	defer span.End()

	// empty page token works around https://github.com/ory/sdk/issues/461
	ids, r, err := c.client.IdentityAPI.ListIdentities(ctx).CredentialsIdentifier(email).PageToken("").Execute()
	if err := c.classify(r, err, "failed to list identities"); err != nil {
		if errors.Is(err, ErrIdentityNotFound) {
			return "", nil
		}
		return "", err
	}

	if len(ids) == 0 {
		return "", nil
	}

	return ids[0].Id, nil
}

func (c *Client) CreateIdentity(ctx context.Context, email string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.CreateIdentity")
	defer span.End()

	body := ory.CreateIdentityBody{
		SchemaId: "default",
		Traits: map[string]interface{}{
			"email": email,
		},
	}

	i, r, err := c.client.IdentityAPI.CreateIdentity(ctx).CreateIdentityBody(body).Execute()
	if err := c.classify(r, err, "failed to create identity"); err != nil {
		return "", err
	}

	return i.Id, nil
}

func (c *Client) CreateRecoveryLink(ctx context.Context, identityID string, expiresIn string) (string, string, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.CreateRecoveryLink")
	defer span.End()

	body := ory.CreateRecoveryCodeForIdentityBody{
		IdentityId: identityID,
		ExpiresIn:  &expiresIn,
	}

	recoveryCode, r, err := c.client.IdentityAPI.CreateRecoveryCodeForIdentity(ctx).CreateRecoveryCodeForIdentityBody(body).Execute()
	if err := c.classify(r, err, "failed to create recovery code"); err != nil {
		return "", "", err
	}

	return recoveryCode.RecoveryLink, recoveryCode.RecoveryCode, nil
}

// subjectFromIdentity prefers a verified email address and falls back to the email
// trait only when the identity has no verifiable addresses at all.
func subjectFromIdentity(i *ory.Identity) *types.Subject {
	subject := &types.Subject{ID: i.Id}

	traits, _ := i.Traits.(map[string]interface{})

	for _, addr := range i.VerifiableAddresses {
		if addr.Via == "email" && addr.Verified {
			subject.Email = strings.ToLower(addr.Value)
			break
		}
	}
	if subject.Email == "" && len(i.VerifiableAddresses) == 0 {
		if email, ok := traits["email"].(string); ok {
			subject.Email = strings.ToLower(email)
		}
	}

	switch name := traits["name"].(type) {
	case string:
		subject.Name = name
	case map[string]interface{}:
		first, _ := name["first"].(string)
		last, _ := name["last"].(string)
		subject.Name = strings.TrimSpace(first + " " + last)
	}

	if picture, ok := traits["picture"].(string); ok {
		subject.AvatarURL = picture
	}

	if i.MetadataAdmin != nil {
		if role, ok := i.MetadataAdmin[metadataRoleKey].(string); ok && types.Role(role).Valid() {
			subject.Role = types.Role(role)
		}
	}

	return subject
}

func NewClient(kratosAdminURL string, subjects cache.SubjectCacheInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	conf := ory.NewConfiguration()
	conf.Servers = ory.ServerConfigurations{{URL: kratosAdminURL}}
	conf.HTTPClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

	if subjects == nil {
		subjects = cache.NewNoopCache()
	}

	return &Client{
		client:  ory.NewAPIClient(conf),
		cache:   subjects,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

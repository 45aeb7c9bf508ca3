// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package openfga

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"

	fga "github.com/openfga/go-sdk"
	"github.com/openfga/go-sdk/client"
	"github.com/openfga/go-sdk/credentials"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/canonical/agency-service/internal/logging"
	"github.com/canonical/agency-service/internal/monitoring"
	"github.com/canonical/agency-service/internal/tracing"
)

const openfgaComponent = "openfga"

type Client struct {
	c *client.OpenFgaClient

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (c *Client) available(err error) {
	v := 1.0
	if err != nil {
		v = 0.0
	}
	if mErr := c.monitor.SetDependencyAvailability(map[string]string{"component": openfgaComponent}, v); mErr != nil {
		c.logger.Debugf("failed to record openfga availability: %v", mErr)
	}
}

func (c *Client) ReadModel(ctx context.Context) (*fga.AuthorizationModel, error) {
	ctx, span := c.tracer.Start(ctx, "openfga.Client.ReadModel")
	defer span.End()

	authModel, err := c.c.ReadAuthorizationModel(ctx).Execute()
	c.available(err)
	if err != nil {
		c.logger.Errorf("issues performing read operation: %s", err)
		return nil, err
	}

	model := authModel.GetAuthorizationModel()
	return &model, nil
}

// CompareModel reports whether the type definitions and conditions of the model
// configured on the store match the given one.
func (c *Client) CompareModel(ctx context.Context, model fga.AuthorizationModel) (bool, error) {
	ctx, span := c.tracer.Start(ctx, "openfga.Client.CompareModel")
	defer span.End()

	current, err := c.ReadModel(ctx)
	if err != nil {
		return false, err
	}

	if current.SchemaVersion != model.SchemaVersion {
		c.logger.Errorf("invalid authorization model schema version")
		return false, nil
	}

	// round trip through JSON so that nil and empty collections compare equal
	a, err := normalizeModel(current)
	if err != nil {
		return false, err
	}
	b, err := normalizeModel(&model)
	if err != nil {
		return false, err
	}

	if !reflect.DeepEqual(a, b) {
		c.logger.Errorf("invalid authorization model type definitions")
		return false, nil
	}

	return true, nil
}

func normalizeModel(m *fga.AuthorizationModel) (interface{}, error) {
	raw, err := json.Marshal(struct {
		TypeDefinitions []fga.TypeDefinition      `json:"type_definitions"`
		Conditions      *map[string]fga.Condition `json:"conditions,omitempty"`
	}{m.TypeDefinitions, m.Conditions})
	if err != nil {
		return nil, fmt.Errorf("failed to encode model: %w", err)
	}

	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	return out, nil
}

func (c *Client) WriteModel(ctx context.Context, model *client.ClientWriteAuthorizationModelRequest) (string, error) {
	ctx, span := c.tracer.Start(ctx, "openfga.Client.WriteModel")
	defer span.End()

	data, err := c.c.WriteAuthorizationModel(ctx).Body(*model).Execute()
	c.available(err)
	if err != nil {
		return "", err
	}

	return data.GetAuthorizationModelId(), nil
}

func (c *Client) CreateStore(ctx context.Context, storeName string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "openfga.Client.CreateStore")
	defer span.End()

	store, err := c.c.CreateStore(ctx).Body(client.ClientCreateStoreRequest{Name: storeName}).Execute()
	c.available(err)
	if err != nil {
		return "", err
	}

	return store.GetId(), nil
}

func (c *Client) SetStoreID(ctx context.Context, storeID string) error {
	return c.c.SetStoreId(storeID)
}

func (c *Client) ReadTuples(ctx context.Context, user, relation, object, continuationToken string) (*client.ClientReadResponse, error) {
	ctx, span := c.tracer.Start(ctx, "openfga.Client.ReadTuples")
	defer span.End()

	body := client.ClientReadRequest{}
	if user != "" {
		body.User = &user
	}
	if relation != "" {
		body.Relation = &relation
	}
	if object != "" {
		body.Object = &object
	}

	options := client.ClientReadOptions{}
	if continuationToken != "" {
		options.ContinuationToken = &continuationToken
	}

	res, err := c.c.Read(ctx).Body(body).Options(options).Execute()
	c.available(err)
	if err != nil {
		c.logger.Errorf("issues performing read operation: %s", err)
		return nil, err
	}

	return res, nil
}

func (c *Client) WriteTuple(ctx context.Context, user, relation, object string) error {
	ctx, span := c.tracer.Start(ctx, "openfga.Client.WriteTuple")
	defer span.End()

	return c.WriteTuples(ctx, *NewTuple(user, relation, object))
}

func (c *Client) WriteTuples(ctx context.Context, tuples ...Tuple) error {
	ctx, span := c.tracer.Start(ctx, "openfga.Client.WriteTuples")
	defer span.End()

	if len(tuples) == 0 {
		return nil
	}

	body := make(client.ClientWriteTuplesBody, 0, len(tuples))
	for _, t := range tuples {
		body = append(body, t.ToOpenFGATupleKey())
	}

	_, err := c.c.WriteTuples(ctx).Body(body).Execute()
	c.available(err)
	if err != nil {
		c.logger.Errorf("issues performing write operation: %s", err)
	}

	return err
}

func (c *Client) DeleteTuple(ctx context.Context, user, relation, object string) error {
	ctx, span := c.tracer.Start(ctx, "openfga.Client.DeleteTuple")
	defer span.End()

	return c.DeleteTuples(ctx, *NewTuple(user, relation, object))
}

func (c *Client) DeleteTuples(ctx context.Context, tuples ...Tuple) error {
	ctx, span := c.tracer.Start(ctx, "openfga.Client.DeleteTuples")
	defer span.End()

	if len(tuples) == 0 {
		return nil
	}

	body := make(client.ClientDeleteTuplesBody, 0, len(tuples))
	for _, t := range tuples {
		body = append(body, t.ToOpenFGATupleKeyWithoutCondition())
	}

	_, err := c.c.DeleteTuples(ctx).Body(body).Execute()
	c.available(err)
	if err != nil {
		c.logger.Errorf("issues performing delete operation: %s", err)
	}

	return err
}

func NewClient(cfg *Config) *Client {
	c := new(Client)

	if cfg == nil {
		panic("OpenFGA config missing")
	}

	sdk, err := client.NewSdkClient(
		&client.ClientConfiguration{
			ApiUrl:               fmt.Sprintf("%s://%s", cfg.ApiScheme, cfg.ApiHost),
			StoreId:              cfg.StoreID,
			AuthorizationModelId: cfg.AuthModelID,
			Credentials: &credentials.Credentials{
				Method: credentials.CredentialsMethodApiToken,
				Config: &credentials.Config{
					ApiToken: cfg.ApiToken,
				},
			},
			Debug: cfg.Debug,
			HTTPClient: &http.Client{
				Transport: otelhttp.NewTransport(http.DefaultTransport),
			},
		},
	)
	if err != nil {
		panic(fmt.Sprintf("issues when setting up OpenFGA client %s", err))
	}

	c.c = sdk
	c.tracer = cfg.Tracer
	c.monitor = cfg.Monitor
	c.logger = cfg.Logger

	return c
}

// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package openfga

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	fga "github.com/openfga/go-sdk"

	"github.com/canonical/agency-service/internal/logging"
	"github.com/canonical/agency-service/internal/monitoring"
	"github.com/canonical/agency-service/internal/tracing"
)

const testStoreID = "01HVMMBCMGZNT3SED4Z17ECXCA"

type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]interface{}
}

func newTestClient(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, *[]recordedRequest) {
	t.Helper()

	requests := make([]recordedRequest, 0)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.Path}
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.Body)
		}
		requests = append(requests, rec)

		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	logger := logging.NewNoopLogger()
	cfg := NewConfig(
		"http",
		strings.TrimPrefix(srv.URL, "http://"),
		testStoreID,
		"token",
		"",
		false,
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor("test", logger),
		logger,
	)

	return NewClient(cfg), &requests
}

func TestClientWriteTuples(t *testing.T) {
	c, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	err := c.WriteTuples(
		context.Background(),
		*NewTuple("user:1", "owner", "agency:1"),
		*NewTuple("agency:1", "parent", "subaccount:1"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(*requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(*requests))
	}

	req := (*requests)[0]
	if req.Method != http.MethodPost || req.Path != "/stores/"+testStoreID+"/write" {
		t.Errorf("unexpected request %s %s", req.Method, req.Path)
	}

	writes, ok := req.Body["writes"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected writes in body, got %v", req.Body)
	}
	if keys, _ := writes["tuple_keys"].([]interface{}); len(keys) != 2 {
		t.Errorf("expected 2 tuple keys, got %v", writes["tuple_keys"])
	}
}

func TestClientWriteTuplesEmpty(t *testing.T) {
	c, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	if err := c.WriteTuples(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.DeleteTuples(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*requests) != 0 {
		t.Errorf("expected no requests, got %d", len(*requests))
	}
}

func TestClientDeleteTuple(t *testing.T) {
	c, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	if err := c.DeleteTuple(context.Background(), "user:1", "member", "subaccount:1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := (*requests)[0]
	deletes, ok := req.Body["deletes"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected deletes in body, got %v", req.Body)
	}
	keys, _ := deletes["tuple_keys"].([]interface{})
	if len(keys) != 1 {
		t.Fatalf("expected 1 tuple key, got %v", deletes["tuple_keys"])
	}
	key := keys[0].(map[string]interface{})
	if key["user"] != "user:1" || key["relation"] != "member" || key["object"] != "subaccount:1" {
		t.Errorf("unexpected tuple key %v", key)
	}
}

func TestClientReadTuples(t *testing.T) {
	c, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"tuples": [
				{"key": {"user": "user:1", "relation": "owner", "object": "agency:1"}, "timestamp": "2025-01-01T00:00:00Z"}
			],
			"continuation_token": "next"
		}`))
	})

	res, err := c.ReadTuples(context.Background(), "", "", "agency:1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Tuples) != 1 || res.Tuples[0].Key.User != "user:1" {
		t.Errorf("unexpected tuples %v", res.Tuples)
	}
	if res.ContinuationToken != "next" {
		t.Errorf("expected continuation token next, got %s", res.ContinuationToken)
	}

	req := (*requests)[0]
	if req.Path != "/stores/"+testStoreID+"/read" {
		t.Errorf("unexpected path %s", req.Path)
	}
	tk, _ := req.Body["tuple_key"].(map[string]interface{})
	if tk["object"] != "agency:1" {
		t.Errorf("expected object filter, got %v", req.Body)
	}
	if _, ok := tk["user"]; ok {
		t.Errorf("expected no user filter, got %v", tk)
	}
}

func TestClientCreateStore(t *testing.T) {
	c, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": "01HVMMBCMGZNT3SED4Z17ECXCB", "name": "agency-service", "created_at": "2025-01-01T00:00:00Z", "updated_at": "2025-01-01T00:00:00Z"}`))
	})

	id, err := c.CreateStore(context.Background(), "agency-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "01HVMMBCMGZNT3SED4Z17ECXCB" {
		t.Errorf("unexpected store id %s", id)
	}
	if (*requests)[0].Body["name"] != "agency-service" {
		t.Errorf("unexpected body %v", (*requests)[0].Body)
	}
}

func TestNoopClient(t *testing.T) {
	logger := logging.NewNoopLogger()
	c := NewNoopClient(tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger)

	if err := c.WriteTuple(context.Background(), "user:1", "owner", "agency:1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	res, err := c.ReadTuples(context.Background(), "", "", "agency:1", "")
	if err != nil || len(res.Tuples) != 0 {
		t.Errorf("expected empty read, got %v %v", res, err)
	}

	eq, err := c.CompareModel(context.Background(), fgaModel())
	if err != nil || !eq {
		t.Errorf("expected noop model comparison to succeed")
	}
}

func fgaModel() fga.AuthorizationModel {
	return fga.AuthorizationModel{SchemaVersion: "1.1"}
}

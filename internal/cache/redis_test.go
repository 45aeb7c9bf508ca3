// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/agency-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package cache -destination ./mock_logger.go -source=../logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package cache -destination ./mock_monitor.go -source=../monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package cache -destination ./mock_tracing.go -source=../tracing/interfaces.go

func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
}

func TestSubjectCacheUnavailableIsAMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).Return(context.Background(), trace.SpanFromContext(context.Background())).AnyTimes()
	mockLogger.EXPECT().Warnf(gomock.Any(), gomock.Any()).Times(3)
	mockMonitor.EXPECT().SetDependencyAvailability(map[string]string{"component": "redis"}, 0.0).Return(nil)

	c := NewSubjectCacheWithClient(unreachableClient(), time.Minute, mockTracer, mockMonitor, mockLogger)
	defer c.Close()

	subject := &types.Subject{ID: "subject-1", Email: "a@b.com", Role: types.RoleSubAccountUser}

	c.Set(context.Background(), subject)

	if got, ok := c.Get(context.Background(), subject.ID); ok || got != nil {
		t.Fatalf("expected a miss, got %v", got)
	}

	c.Delete(context.Background(), subject.ID)

	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected ping to fail")
	}
}

func TestNoopCache(t *testing.T) {
	c := NewNoopCache()
	c.Set(context.Background(), &types.Subject{ID: "subject-1"})

	if _, ok := c.Get(context.Background(), "subject-1"); ok {
		t.Fatal("noop cache must never hit")
	}
}

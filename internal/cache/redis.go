// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/canonical/agency-service/internal/logging"
	"github.com/canonical/agency-service/internal/monitoring"
	"github.com/canonical/agency-service/internal/tracing"
	"github.com/canonical/agency-service/internal/types"
)

const keyPrefix = "agency-service:subject:"

type Config struct {
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

// SubjectCache keeps identity lookups in redis for a short time.
// Cache failures are logged and treated as misses.
type SubjectCache struct {
	client redis.UniversalClient
	ttl    time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func key(subjectID string) string {
	return keyPrefix + subjectID
}

func (c *SubjectCache) Get(ctx context.Context, subjectID string) (*types.Subject, bool) {
	ctx, span := c.tracer.Start(ctx, "cache.SubjectCache.Get")
	defer span.End()

	raw, err := c.client.Get(ctx, key(subjectID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warnf("subject cache read failed: %v", err)
		}
		return nil, false
	}

	subject := new(types.Subject)
	if err := json.Unmarshal(raw, subject); err != nil {
		c.logger.Warnf("subject cache entry for %s is corrupted: %v", subjectID, err)
		return nil, false
	}

	return subject, true
}

func (c *SubjectCache) Set(ctx context.Context, subject *types.Subject) {
	ctx, span := c.tracer.Start(ctx, "cache.SubjectCache.Set")
	defer span.End()

	raw, err := json.Marshal(subject)
	if err != nil {
		c.logger.Errorf("failed to encode subject %s: %v", subject.ID, err)
		return
	}

	if err := c.client.Set(ctx, key(subject.ID), raw, c.ttl).Err(); err != nil {
		c.logger.Warnf("subject cache write failed: %v", err)
	}
}

func (c *SubjectCache) Delete(ctx context.Context, subjectID string) {
	ctx, span := c.tracer.Start(ctx, "cache.SubjectCache.Delete")
	defer span.End()

	if err := c.client.Del(ctx, key(subjectID)).Err(); err != nil {
		c.logger.Warnf("subject cache eviction failed: %v", err)
	}
}

// Ping checks redis is reachable and records its availability.
func (c *SubjectCache) Ping(ctx context.Context) error {
	err := c.client.Ping(ctx).Err()

	available := 1.0
	if err != nil {
		available = 0.0
	}
	if mErr := c.monitor.SetDependencyAvailability(map[string]string{"component": "redis"}, available); mErr != nil {
		c.logger.Debugf("failed to record redis availability: %v", mErr)
	}

	return err
}

func (c *SubjectCache) Close() error {
	return c.client.Close()
}

func NewSubjectCache(cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *SubjectCache {
	return NewSubjectCacheWithClient(
		redis.NewClient(&redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		cfg.TTL,
		tracer,
		monitor,
		logger,
	)
}

func NewSubjectCacheWithClient(client redis.UniversalClient, ttl time.Duration, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *SubjectCache {
	c := new(SubjectCache)
	c.client = client
	c.ttl = ttl

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c
}

// Package cache provides the Redis-backed evaluation result cache. Results
// live for a short TTL so detail views can be fetched after the calculation
// response; nothing is kept as history.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SafeHaul-Logistics/service-routing/internal/domain/safety"
	"github.com/SafeHaul-Logistics/service-routing/internal/platform/apperr"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "routing:eval:"

// ResultCache stores evaluation records keyed by route id.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultCache connects a result cache to the given Redis address.
func NewResultCache(addr string, ttl time.Duration) *ResultCache {
	return &ResultCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

// NewResultCacheWithClient wraps an existing client, used by tests.
func NewResultCacheWithClient(client *redis.Client, ttl time.Duration) *ResultCache {
	return &ResultCache{client: client, ttl: ttl}
}

// Put stores one evaluation record under its route id.
func (c *ResultCache) Put(ctx context.Context, rec safety.EvaluationRecord) error {
	if rec.Evaluated == nil || rec.Evaluated.Route == nil {
		return errors.New("evaluation record has no route")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal evaluation record: %w", err)
	}

	if err := c.client.Set(ctx, keyPrefix+rec.Evaluated.Route.ID, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("store evaluation record: %w", err)
	}
	return nil
}

// Get fetches the evaluation record for a route id. Missing or expired
// entries come back as a not-found application error.
func (c *ResultCache) Get(ctx context.Context, routeID string) (*safety.EvaluationRecord, error) {
	data, err := c.client.Get(ctx, keyPrefix+routeID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NewNotFoundError("route", routeID)
		}
		return nil, fmt.Errorf("fetch evaluation record: %w", err)
	}

	var rec safety.EvaluationRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal evaluation record: %w", err)
	}
	return &rec, nil
}

// Ping verifies connectivity for health checks.
func (c *ResultCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (c *ResultCache) Close() error {
	return c.client.Close()
}

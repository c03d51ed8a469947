package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when no cached value exists for a key
var ErrCacheMiss = errors.New("cache miss")

// ReportCache caches computed report payloads per platform. Reports are
// aggregation-heavy queries; a short TTL keeps dashboards fast without
// letting figures go stale for long.
type ReportCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewReportCache creates a Redis-backed report cache
func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ReportCache{
		client:    client,
		keyPrefix: "report:",
		ttl:       ttl,
	}
}

// Get loads a cached report into dest. Returns ErrCacheMiss when absent.
func (c *ReportCache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("failed to read report cache: %w", err)
	}
	return json.Unmarshal(data, dest)
}

// Set stores a report payload under the key with the configured TTL
func (c *ReportCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode report for cache: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write report cache: %w", err)
	}
	return nil
}

// InvalidatePlatform drops all cached reports for a platform
func (c *ReportCache) InvalidatePlatform(ctx context.Context, platformID string) error {
	pattern := c.keyPrefix + platformID + ":*"

	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to invalidate report cache: %w", err)
		}
	}
	return iter.Err()
}

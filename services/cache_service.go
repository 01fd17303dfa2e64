package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hitrate-app-go/logging"

	"github.com/redis/go-redis/v9"
)

// CacheService wraps Redis for computed summary tables. A nil CacheService is
// valid and disables caching entirely, so callers never have to branch on
// whether Redis is configured.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// NewCacheService creates a cache over an existing Redis client.
func NewCacheService(client *redis.Client, ttl time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    ttl,
		logger: logging.WithPrefix("CacheService"),
	}
}

// GetJSON loads and unmarshals a cached value into dest. A miss (or a nil
// cache) returns false with no error.
func (c *CacheService) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if c == nil {
		return false, nil
	}
	raw, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		// A corrupt entry is treated as a miss so the caller recomputes.
		c.logger.Warnf("Discarding corrupt cache entry %s: %v", key, err)
		return false, nil
	}
	return true, nil
}

// SetJSON marshals and stores a value under the configured TTL. Failures are
// logged, not returned: a broken cache must never fail a request.
func (c *CacheService) SetJSON(ctx context.Context, key string, value interface{}) {
	if c == nil {
		return
	}
	b, err := json.Marshal(value)
	if err != nil {
		c.logger.Errorf("Failed to marshal cache entry %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, string(b), c.ttl).Err(); err != nil {
		c.logger.Warnf("Failed to store cache entry %s: %v", key, err)
	}
}

// Invalidate removes cached entries by pattern, e.g. after a feed refresh.
func (c *CacheService) Invalidate(ctx context.Context, pattern string) {
	if c == nil {
		return
	}
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		c.logger.Warnf("Failed to scan cache keys %s: %v", pattern, err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warnf("Failed to invalidate %d cache keys: %v", len(keys), err)
	}
	c.logger.Debugf("Invalidated %d cache keys matching %s", len(keys), pattern)
}

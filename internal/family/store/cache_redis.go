package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"wikisite/internal/family"
	"wikisite/internal/family/metrics"
	"wikisite/internal/family/models"
)

const familyKeyPrefix = "wikisite:family:"

// RedisCache decorates a Directory with a shared Redis snapshot cache.
// Family metadata changes rarely, so a TTL-bounded JSON snapshot keeps
// multi-process bot fleets from hammering the directory database.
type RedisCache struct {
	inner   family.Directory
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
}

// NewRedisCache wraps a directory with a Redis cache.
func NewRedisCache(inner family.Directory, client *redis.Client, ttl time.Duration, m *metrics.Metrics) *RedisCache {
	return &RedisCache{inner: inner, client: client, ttl: ttl, metrics: m}
}

// Find implements family.Directory. Cache failures other than a miss fall
// through to the inner directory; the cache must never make lookups less
// available than the directory itself.
func (c *RedisCache) Find(ctx context.Context, name string) (*models.Family, error) {
	key := familyKeyPrefix + name

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var fam models.Family
		if err := json.Unmarshal(raw, &fam); err == nil {
			c.metrics.RecordHit("redis")
			return &fam, nil
		}
		// Corrupt entry: drop it and treat as a miss.
		c.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) && ctx.Err() != nil {
		return nil, fmt.Errorf("family cache get: %w", err)
	}

	c.metrics.RecordMiss("redis")
	fam, err := c.inner.Find(ctx, name)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(fam); err == nil {
		c.client.Set(ctx, key, raw, c.ttl)
	}
	return fam, nil
}

// Invalidate removes the cached snapshot for one family.
func (c *RedisCache) Invalidate(ctx context.Context, name string) error {
	return c.client.Del(ctx, familyKeyPrefix+name).Err()
}

package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voltstack/commerce-backend/internal/platform/envutil"
	"github.com/voltstack/commerce-backend/internal/platform/logger"
)

// Cache is a small JSON read-through cache. A nil *Cache is valid and does
// nothing, so callers never branch on whether redis is configured.
type Cache struct {
	client *redis.Client
	log    *logger.Logger
}

// New connects using REDIS_ADDR; when unset the cache is disabled.
func New(logg *logger.Logger) *Cache {
	addr := envutil.GetEnv("REDIS_ADDR", "", logg)
	if addr == "" {
		logg.Info("redis not configured, query caching disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: envutil.GetEnv("REDIS_PASSWORD", "", nil),
		DB:       envutil.GetEnvAsInt("REDIS_DB", 0, nil),
	})
	return &Cache{client: client, log: logg.With("service", "RedisCache")}
}

// GetJSON reports whether key was present and decoded into dest.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache get failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn("cache entry corrupt, dropping", "key", key, "error", err)
		_ = c.client.Del(ctx, key).Err()
		return false
	}
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(val)
	if err != nil {
		c.log.Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.log.Warn("cache set failed", "key", key, "error", err)
	}
}

// InvalidatePrefix drops every key under prefix. Used after writes so paged
// listings never serve stale aggregates.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) {
	if c == nil || c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn("cache invalidate failed", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("cache scan failed", "prefix", prefix, "error", err)
	}
}

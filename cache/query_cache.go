package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// QueryCache caches read-side query results under tuple keys and supports
// explicit invalidation by key prefix, e.g. Invalidate(ctx, "trainings")
// drops every cached trainings query.
type QueryCache interface {
	Put(ctx context.Context, value []byte, ttl time.Duration, key ...string) error
	Fetch(ctx context.Context, key ...string) ([]byte, error)
	Invalidate(ctx context.Context, key ...string) error
}

// ErrCacheMiss is returned by Fetch when no entry exists for the key.
var ErrCacheMiss = redis.Nil

// RedisQueryCache is the production QueryCache.
type RedisQueryCache struct {
	Client *redis.Client
	Logger *zap.Logger
}

func NewRedisQueryCache(client *redis.Client, logger *zap.Logger) *RedisQueryCache {
	return &RedisQueryCache{Client: client, Logger: logger}
}

func joinKey(key []string) string {
	return "query:" + strings.Join(key, ":")
}

// Put stores a serialized query result.
func (c *RedisQueryCache) Put(ctx context.Context, value []byte, ttl time.Duration, key ...string) error {
	if err := c.Client.Set(ctx, joinKey(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("query cache put failed: %w", err)
	}
	return nil
}

// Fetch returns the cached result, or ErrCacheMiss.
func (c *RedisQueryCache) Fetch(ctx context.Context, key ...string) ([]byte, error) {
	data, err := c.Client.Get(ctx, joinKey(key)).Bytes()
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Invalidate removes the entry for the key and every entry nested under it.
func (c *RedisQueryCache) Invalidate(ctx context.Context, key ...string) error {
	base := joinKey(key)
	keys := []string{base}

	iter := c.Client.Scan(ctx, 0, base+":*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("query cache scan failed: %w", err)
	}

	if err := c.Client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("query cache invalidation failed: %w", err)
	}
	c.Logger.Debug("query cache invalidated",
		zap.String("key", base), zap.Int("entries", len(keys)))
	return nil
}

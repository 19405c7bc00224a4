// Package cache is the Redis cache-aside layer in front of the property
// store. Entries are disposable JSON projections of store state: every
// operation tolerates Redis being down, and callers treat any failure as a
// cache miss rather than an error.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned by Get when the key is absent or the cache is
// unavailable.
var ErrCacheMiss = errors.New("cache miss")

type PropertyCache struct {
	client *redis.Client
	logger *zap.Logger
}

// New wraps a Redis client. The client may be nil (Redis unreachable at
// startup); the cache then reports misses and swallows writes so the service
// keeps serving from the store.
func New(client *redis.Client, logger *zap.Logger) *PropertyCache {
	return &PropertyCache{client: client, logger: logger}
}

// Get returns the serialized value stored under key, or ErrCacheMiss.
func (c *PropertyCache) Get(ctx context.Context, key string) ([]byte, error) {
	if c.client == nil {
		return nil, ErrCacheMiss
	}
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return nil, ErrCacheMiss
	}
	return val, nil
}

// Set stores value under key for ttl, overwriting unconditionally. Writes
// are last-writer-wins; concurrent population after a miss is benign.
func (c *PropertyCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Delete removes a single key.
func (c *PropertyCache) Delete(ctx context.Context, key string) error {
	if c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("cache delete failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// DeleteMatching removes every key under prefix using SCAN+DEL. The scan is
// not atomic against concurrent writes, which is acceptable for an advisory
// cache: a key written mid-scan simply expires on its own TTL.
func (c *PropertyCache) DeleteMatching(ctx context.Context, prefix string) error {
	if c.client == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	batch := make([]string, 0, 100)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := c.client.Del(ctx, batch...).Err(); err != nil {
				c.logger.Warn("cache bulk delete failed", zap.String("prefix", prefix), zap.Error(err))
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("cache scan failed", zap.String("prefix", prefix), zap.Error(err))
		return err
	}
	if len(batch) > 0 {
		if err := c.client.Del(ctx, batch...).Err(); err != nil {
			c.logger.Warn("cache bulk delete failed", zap.String("prefix", prefix), zap.Error(err))
			return err
		}
	}
	return nil
}

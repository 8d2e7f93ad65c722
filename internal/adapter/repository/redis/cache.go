package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const cachePrefix = "finbook:cache:"

// Cache implements usecase.Cache on Redis. Values are opaque bytes; callers
// own serialization and key layout below the shared prefix.
type Cache struct {
	client *redis.Client
}

// NewCache creates a new Cache.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Get retrieves a value by key. Returns redis.Nil when absent.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	return c.client.Get(ctx, cachePrefix+key).Bytes()
}

// Set stores a value with TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, cachePrefix+key, value, ttl).Err()
}

// Delete removes a key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, cachePrefix+key).Err()
}

// Package cache implements the CacheProvider contract over Redis. Callers
// treat any Get error as a miss, so the adapter does not distinguish an
// absent key from a broken connection in its return type.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/providers"
	redisclient "github.com/ratewatch/medicaid-rates-backend/internal/infrastructure/clients/redis"
)

// RedisAdapter backs response caching, subscription-status caching, and the
// contact-form cooldown.
type RedisAdapter struct {
	rdb *redis.Client
}

// NewRedisAdapter creates a new Redis cache adapter
func NewRedisAdapter(client *redisclient.Client) providers.CacheProvider {
	return &RedisAdapter{rdb: client.Client()}
}

// Get returns the value at key, or an error when the key is absent.
func (a *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := a.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("cache miss for %s", key)
	}
	if err != nil {
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}
	return value, nil
}

// Set stores value at key. Zero expirationSeconds means no expiry, which the
// cache-generation counters rely on.
func (a *RedisAdapter) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	ttl := time.Duration(expirationSeconds) * time.Second
	if err := a.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Delete removes key; deleting an absent key is not an error.
func (a *RedisAdapter) Delete(ctx context.Context, key string) error {
	if err := a.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache delete %s: %w", key, err)
	}
	return nil
}

// Exists reports whether key is present.
func (a *RedisAdapter) Exists(ctx context.Context, key string) (bool, error) {
	count, err := a.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("cache exists %s: %w", key, err)
	}
	return count > 0, nil
}

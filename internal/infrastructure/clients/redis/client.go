package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ratewatch/medicaid-rates-backend/pkg/config"
)

// connectTimeout bounds the startup ping so a missing Redis fails fast; the
// server then runs uncached rather than hanging on boot.
const connectTimeout = 5 * time.Second

// Client wraps the go-redis connection used for response and status caching.
type Client struct {
	rdb *redis.Client
}

// NewClient connects to Redis and verifies the connection with a bounded
// ping.
func NewClient(cfg *config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis at %s unreachable: %w", cfg.RedisAddr(), err)
	}

	return &Client{rdb: rdb}, nil
}

// Client exposes the underlying go-redis client to adapters.
func (c *Client) Client() *redis.Client {
	return c.rdb
}

// Ping verifies the connection is still live.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close closes the connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}

package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const insightKey = "pos:insight:latest"

// Client caches generated business insights in Redis so the dashboard does
// not hit the AI API on every view. The service treats a nil *Client as "no
// cache" and regenerates on demand.
type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client and verifies connectivity.
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetInsight returns the cached insight, or "" when none is cached.
func (c *Client) GetInsight(ctx context.Context) (string, error) {
	val, err := c.rdb.Get(ctx, insightKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read insight cache: %w", err)
	}
	return val, nil
}

// SetInsight stores the latest insight with a TTL.
func (c *Client) SetInsight(ctx context.Context, insight string, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, insightKey, insight, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write insight cache: %w", err)
	}
	return nil
}

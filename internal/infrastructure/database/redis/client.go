// Package redis wraps the go-redis client. Redis backs the HTTP rate-limit
// middleware and readiness checks only; match results are recomputed per
// request and never cached here.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/VendorIQ/internal/config"
	"github.com/turtacn/VendorIQ/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VendorIQ/pkg/errors"
)

// Client is a thin handle over go-redis carrying the configured key prefix.
type Client struct {
	rdb       *redis.Client
	keyPrefix string
	logger    logging.Logger
}

// NewClient connects and pings before returning.
func NewClient(cfg config.RedisConfig, log logging.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "connecting to redis")
	}
	log.Info("connected to redis", logging.String("addr", cfg.Addr))

	return &Client{rdb: rdb, keyPrefix: cfg.KeyPrefix, logger: log}, nil
}

// Key builds a namespaced key.
func (c *Client) Key(parts ...string) string {
	key := c.keyPrefix
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

// HealthCheck pings the server.
func (c *Client) HealthCheck(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "redis ping failed")
	}
	return nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

// RateLimiter implements a fixed-window counter per caller key.
type RateLimiter struct {
	client *Client
	limit  int
	window time.Duration
}

// NewRateLimiter allows limit requests per window for each distinct key.
func NewRateLimiter(client *Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: limit, window: window}
}

// Allow increments the caller's window counter and reports whether the
// request fits the limit. On a redis failure it fails open: a degraded
// limiter must not take the API down with it.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowKey := l.client.Key("ratelimit", key,
		fmt.Sprintf("%d", time.Now().Unix()/int64(l.window.Seconds())))

	pipe := l.client.rdb.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		l.client.logger.Warn("rate limiter unavailable, allowing request", logging.Err(err))
		return true, err
	}
	return incr.Val() <= int64(l.limit), nil
}

package redisclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrRedisUnavailable = errors.New("redis unavailable")

const (
	retryAttempts = 3
	retryInterval = 2 * time.Second
)

// NewRedisFromURL parses a redis:// URL, opens a client and pings it,
// retrying a few times while the server comes up.
func NewRedisFromURL(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	rdb := redis.NewClient(opts)

	var lastErr error
	for i := range retryAttempts {
		if lastErr = rdb.Ping(ctx).Err(); lastErr == nil {
			return rdb, nil
		}
		select {
		case <-ctx.Done():
			_ = rdb.Close()
			return nil, errors.Join(ErrRedisUnavailable, ctx.Err())
		case <-time.After(time.Duration(i+1) * retryInterval):
		}
	}
	_ = rdb.Close()
	return nil, errors.Join(ErrRedisUnavailable, lastErr)
}

// Close releases the client; nil is a no-op.
func Close(rdb *redis.Client) error {
	if rdb == nil {
		return nil
	}
	return rdb.Close()
}

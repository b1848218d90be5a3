package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window counter backed by Redis. Each client key gets
// one window of `ttl`; the first increment sets the expiry, so the window
// resets on its own.
type Limiter struct {
	rdb    *redis.Client
	ttl    time.Duration
	budget int64
}

func New(rdb *redis.Client, window time.Duration, budget int) *Limiter {
	return &Limiter{rdb: rdb, ttl: window, budget: int64(budget)}
}

// Allow increments the counter for key and reports whether the request
// fits the current window's budget.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.rdb.Incr(ctx, l.formatKey(key)).Result()
	if err != nil {
		return false, err
	}

	// Set expiration on first increment
	if count == 1 {
		l.rdb.Expire(ctx, l.formatKey(key), l.ttl)
	}

	return count <= l.budget, nil
}

func (l *Limiter) formatKey(key string) string {
	return fmt.Sprintf("ratelimit:%s", key)
}

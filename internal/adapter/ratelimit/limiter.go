package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultLimit is the number of login attempts allowed per window.
	DefaultLimit = 5
	// DefaultWindow is the cooldown applied to a key after its first attempt.
	DefaultWindow = 15 * time.Minute

	keyPrefix = "login_attempts:"
)

// Limiter counts attempts per key inside a fixed window.
type Limiter interface {
	// Allow records an attempt and reports whether the key is still under the limit.
	Allow(ctx context.Context, key string) (bool, error)
	// Reset forgets previous attempts of the key.
	Reset(ctx context.Context, key string) error
}

// RedisLimiter keeps counters in Redis so limits hold across instances.
type RedisLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewRedisLimiter constructs RedisLimiter; non-positive values select the defaults.
func NewRedisLimiter(client *redis.Client, limit int64, window time.Duration) *RedisLimiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &RedisLimiter{client: client, limit: limit, window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	pipe := l.client.Pipeline()
	incr := pipe.Incr(ctx, keyPrefix+key)
	pipe.Expire(ctx, keyPrefix+key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("increment attempts: %w", err)
	}
	return incr.Val() <= l.limit, nil
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("reset attempts: %w", err)
	}
	return nil
}

// NoopLimiter allows everything. Used when Redis is not configured.
type NoopLimiter struct{}

func (NoopLimiter) Allow(context.Context, string) (bool, error) { return true, nil }

func (NoopLimiter) Reset(context.Context, string) error { return nil }

package ratelimit

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
)

// Module provides the login limiter and manages the Redis connection.
var Module = fx.Provide(newLimiter)

type limiterParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newLimiter(p limiterParams) Limiter {
	if p.Config.RedisAddr == "" {
		p.Logger.Warn("REDIS_ADDR is empty, login throttling disabled")
		return NoopLimiter{}
	}

	client := redis.NewClient(&redis.Options{Addr: p.Config.RedisAddr})
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				p.Logger.Warn("redis is unreachable, login throttling fails open", slog.String("error", err.Error()))
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return NewRedisLimiter(client, DefaultLimit, DefaultWindow)
}

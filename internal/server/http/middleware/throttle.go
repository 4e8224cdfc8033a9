package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Limiter counts attempts per key.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

// Throttle rejects clients that exceeded the limiter budget with 429.
// A successful response clears the counter of the client. Limiter failures let the request through.
func Throttle(limiter Limiter, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Warn("rate limiter unavailable", slog.String("error", err.Error()))
			c.Next()
			return
		}
		if !allowed {
			logger.Warn("too many attempts", slog.String("client", key), slog.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts, try again later"})
			return
		}

		c.Next()

		if c.Writer.Status() < http.StatusBadRequest {
			if err := limiter.Reset(c.Request.Context(), key); err != nil {
				logger.Warn("reset rate limiter failed", slog.String("error", err.Error()))
			}
		}
	}
}

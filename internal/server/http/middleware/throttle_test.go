package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func throttledRouter(limiter Limiter, status int) *gin.Engine {
	router := gin.New()
	router.Use(Throttle(limiter, slog.New(slog.NewJSONHandler(io.Discard, nil))))
	router.POST("/login", func(c *gin.Context) { c.Status(status) })
	return router
}

func TestThrottle(t *testing.T) {
	tests := []struct {
		name       string
		limiter    *testhelpers.LimiterStub
		status     int
		wantStatus int
		wantResets int
	}{
		{name: "allowed success resets", limiter: &testhelpers.LimiterStub{}, status: http.StatusOK, wantStatus: http.StatusOK, wantResets: 1},
		{name: "allowed failure keeps counter", limiter: &testhelpers.LimiterStub{}, status: http.StatusUnauthorized, wantStatus: http.StatusUnauthorized},
		{name: "denied", limiter: &testhelpers.LimiterStub{Denied: true}, status: http.StatusOK, wantStatus: http.StatusTooManyRequests},
		{name: "limiter error fails open", limiter: &testhelpers.LimiterStub{Err: errors.New("redis down")}, status: http.StatusOK, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := httptest.NewRecorder()
			throttledRouter(tt.limiter, tt.status).ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/login", nil))
			if resp.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, resp.Code)
			}
			if len(tt.limiter.Resets) != tt.wantResets {
				t.Fatalf("expected %d resets, got %v", tt.wantResets, tt.limiter.Resets)
			}
		})
	}
}

func TestThrottleKeysByClientIP(t *testing.T) {
	var keys []string
	limiter := &testhelpers.LimiterStub{AllowFn: func(_ context.Context, key string) (bool, error) {
		keys = append(keys, key)
		return true, nil
	}}
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	throttledRouter(limiter, http.StatusOK).ServeHTTP(httptest.NewRecorder(), req)
	if len(keys) != 1 || keys[0] != "10.1.2.3" {
		t.Fatalf("unexpected keys %v", keys)
	}
}

package di

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/adapter/gateway"
	"github.com/polkiloo/storefront/internal/adapter/mail"
	"github.com/polkiloo/storefront/internal/adapter/ratelimit"
	"github.com/polkiloo/storefront/internal/app"
	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/storage/postgres"
	"github.com/polkiloo/storefront/internal/test"
	"github.com/polkiloo/storefront/internal/usecase"
	"github.com/polkiloo/storefront/internal/worker"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:      ":0",
		DatabaseURI:     "postgres://stub",
		AuthSecret:      "secret",
		AuthStrategy:    "hmac",
		SessionSecret:   "session",
		StripeSecretKey: "sk_test_stub",
		Currency:        "usd",
		MailWorkers:     1,
		MailQueueSize:   1,
		ShutdownTimeout: time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := test.NewMemoryStore()
	gatewayStub := &test.GatewayStub{}
	sender := &test.SenderStub{}

	var (
		facade   *app.StorefrontFacade
		server   *http.Server
		notifier usecase.Notifier
		limiter  ratelimit.Limiter
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Decorate(func() repository.Store { return store }),
			fx.Decorate(func() gateway.Client { return gatewayStub }),
			fx.Decorate(func() mail.Sender { return sender }),
		),
		fx.Populate(&facade, &server, &notifier, &limiter),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	if facade == nil {
		t.Fatal("expected storefront facade instance")
	}
	if server.Addr != ":0" {
		t.Fatalf("unexpected server address %q", server.Addr)
	}
	if _, ok := notifier.(*worker.MailDispatcher); !ok {
		t.Fatalf("expected notifier to be the mail dispatcher, got %T", notifier)
	}
	if _, ok := limiter.(ratelimit.NoopLimiter); !ok {
		t.Fatalf("expected noop limiter without redis, got %T", limiter)
	}
}

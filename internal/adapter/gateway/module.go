package gateway

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
)

// Module exposes the Stripe client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewStripeClient(p.Config.StripeSecretKey, p.Config.StripeWebhookSecret, p.Logger)
}

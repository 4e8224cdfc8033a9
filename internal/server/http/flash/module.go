package flash

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
)

// Module provides the flash message store.
var Module = fx.Provide(func(cfg *config.Config, logger *slog.Logger) *Store {
	return NewStore(cfg.SessionSecret, logger)
})

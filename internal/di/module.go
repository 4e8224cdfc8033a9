package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/adapter/gateway"
	"github.com/polkiloo/storefront/internal/adapter/mail"
	"github.com/polkiloo/storefront/internal/adapter/ratelimit"
	"github.com/polkiloo/storefront/internal/app"
	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/logger"
	"github.com/polkiloo/storefront/internal/pkg/auth"
	"github.com/polkiloo/storefront/internal/server/http/flash"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
	"github.com/polkiloo/storefront/internal/server/http/router"
	"github.com/polkiloo/storefront/internal/storage/postgres"
	"github.com/polkiloo/storefront/internal/usecase"
	"github.com/polkiloo/storefront/internal/worker"
)

// Module assembles the application graph. Extra options are appended last so tests can decorate providers.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		gateway.Module,
		mail.Module,
		ratelimit.Module,
		usecase.Module,
		fx.Provide(func(c gateway.Client) usecase.Gateway { return c }),
		fx.Provide(func(s mail.Sender) worker.Sender { return s }),
		fx.Provide(func(d *worker.MailDispatcher) usecase.Notifier { return d }),
		fx.Provide(func(l ratelimit.Limiter) middleware.Limiter { return l }),
		fx.Provide(func(f *app.StorefrontFacade) handlers.StorefrontFacade { return f }),
		flash.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

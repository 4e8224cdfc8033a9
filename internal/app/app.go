package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewStorefrontFacade,
		newHTTPServer,
		newMailDispatcher,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Sender worker.Sender
	Config *config.Config
	Logger *slog.Logger
}

func newMailDispatcher(p workerParams) *worker.MailDispatcher {
	return worker.NewMailDispatcher(
		p.Sender,
		p.Config.MailWorkers,
		p.Config.MailQueueSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Mailer     *worker.MailDispatcher
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting storefront", slog.String("addr", p.Server.Addr))
			// The start context is cancelled once startup completes.
			p.Mailer.Start(context.WithoutCancel(ctx))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			err := p.Server.Shutdown(shutdownCtx)
			p.Mailer.Stop()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("storefront stopped")
			return nil
		},
	})
}

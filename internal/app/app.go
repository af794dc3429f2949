package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/adapter/chain"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/config"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/storage/postgres"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/usecase"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newMintFacade,
		newHTTPServer,
		newOrderReaper,
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Auth      *usecase.AuthUseCase
	Catalog   *usecase.CatalogUseCase
	Orders    *usecase.OrderUseCase
	Processor *usecase.MintProcessor
	Storage   *postgres.Storage
	Chain     chain.Client
}

func newMintFacade(p facadeParams) *MintFacade {
	return NewMintFacade(p.Auth, p.Catalog, p.Orders, p.Processor, p.Storage, p.Chain)
}

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

type reaperParams struct {
	fx.In

	Facade *MintFacade
	Config *config.Config
	Logger *slog.Logger
}

func newOrderReaper(p reaperParams) *worker.OrderReaper {
	return worker.NewOrderReaper(
		p.Facade,
		p.Config.ReaperInterval,
		p.Config.PendingOrderTTL,
		p.Config.ReaperBatch,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Reaper     *worker.OrderReaper
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting streetmint", slog.String("addr", p.Server.Addr))
			p.Reaper.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Reaper.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("streetmint stopped")
			return nil
		},
	})
}

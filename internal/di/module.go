package di

import (
	"go.uber.org/fx"

	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/adapter/chain"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/adapter/minter"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/adapter/rates"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/app"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/config"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/logger"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/metrics"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/pkg/auth"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/server/http/handlers"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/server/http/router"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/storage/postgres"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		chain.Module,
		minter.Module,
		rates.Module,
		metrics.Module,
		usecase.Module,
		fx.Provide(func(f *app.MintFacade) handlers.StreetMintFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

package rates

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/config"
)

// Module exposes rate client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.RatesAddress, p.Logger)
}

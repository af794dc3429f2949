package chain

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/config"
)

// Module exposes node client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.RPCNodeAddress, p.Logger)
}

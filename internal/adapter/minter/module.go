package minter

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/config"
)

// Module exposes mint API client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.MintAPIAddress, p.Config.MintAPIKey, p.Logger)
}

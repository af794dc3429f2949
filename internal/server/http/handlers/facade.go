package handlers

import (
	"context"

	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/model"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// CatalogFacade manages collections and collectibles over HTTP.
type CatalogFacade interface {
	CreateCollection(ctx context.Context, artistID int64, name, symbol string, royaltyBps int32) (*model.Collection, error)
	Collections(ctx context.Context, artistID int64) ([]model.Collection, error)
	Collection(ctx context.Context, id int64) (*model.Collection, error)
	SetCollectionAddresses(ctx context.Context, artistID, collectionID int64, mintAddress, treeAddress string) error
	CreateCollectible(ctx context.Context, artistID int64, collectible *model.Collectible) (*model.Collectible, error)
	Collectibles(ctx context.Context, collectionID int64) ([]model.Collectible, error)
	Collectible(ctx context.Context, id int64) (*model.Collectible, error)
}

// MintingFacade exposes the mint order workflow.
type MintingFacade interface {
	InitiateMint(ctx context.Context, collectibleID int64, wallet string, deviceID *string) (*usecase.InitiateResult, error)
	ProcessMint(ctx context.Context, orderID string, signedTxBase64 *string, priceSol float64) (*usecase.ProcessResult, error)
	VerifyNfcTap(ctx context.Context, collectibleID int64, nonce, signatureB64 string) (bool, error)
	HealthCheck(ctx context.Context) error
}

// StreetMintFacade aggregates the full set of operations used across handlers.
type StreetMintFacade interface {
	AuthFacade
	CatalogFacade
	MintingFacade
}

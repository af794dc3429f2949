package repository

import (
	"context"

	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/model"
)

// CollectionRepository describes persistence operations with collections.
type CollectionRepository interface {
	Create(ctx context.Context, collection *model.Collection) (*model.Collection, error)
	GetByID(ctx context.Context, id int64) (*model.Collection, error)
	ListByArtist(ctx context.Context, artistID int64) ([]model.Collection, error)
	SetAddresses(ctx context.Context, id int64, mintAddress, treeAddress string) error
}

// CollectibleRepository describes persistence operations with collectibles.
type CollectibleRepository interface {
	Create(ctx context.Context, collectible *model.Collectible) (*model.Collectible, error)
	GetByID(ctx context.Context, id int64) (*model.Collectible, error)
	ListByCollection(ctx context.Context, collectionID int64) ([]model.Collectible, error)
}

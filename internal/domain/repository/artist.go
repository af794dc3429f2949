package repository

import (
	"context"

	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/model"
)

// ArtistRepository describes persistence operations with artist accounts.
type ArtistRepository interface {
	Create(ctx context.Context, login, passwordHash string) (*model.Artist, error)
	GetByLogin(ctx context.Context, login string) (*model.Artist, error)
	GetByID(ctx context.Context, id int64) (*model.Artist, error)
}

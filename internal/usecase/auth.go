package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/errors"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/model"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/repository"
	pkgAuth "github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/pkg/auth"
)

// AuthUseCase handles artist account lifecycle and token management.
type AuthUseCase struct {
	artists repository.ArtistRepository
	hasher  pkgAuth.PasswordHasher
	tokens  pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(artists repository.ArtistRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{artists: artists, hasher: hasher, tokens: strategy}
}

// Register creates a new artist account and returns auth token.
func (u *AuthUseCase) Register(ctx context.Context, login, password string) (*model.Artist, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	artist, err := u.artists.Create(ctx, login, hash)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(artist.ID)
	if err != nil {
		return nil, "", err
	}

	return artist, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.Artist, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	artist, err := u.artists.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(artist.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(artist.ID)
	if err != nil {
		return nil, "", err
	}

	return artist, token, nil
}

// ParseToken extracts artist ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches artist by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.Artist, error) {
	return u.artists.GetByID(ctx, id)
}

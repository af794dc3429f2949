package auth

import "time"

// Strategy issues and validates tokens carrying an artist identifier.
type Strategy interface {
	IssueToken(artistID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

// Options tune token issuance.
type Options struct {
	TTL time.Duration
}

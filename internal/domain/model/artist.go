package model

import "time"

// Artist represents a creator account that owns collections.
type Artist struct {
	ID           int64
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}

package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidWallet      = errors.New("invalid wallet address")
	ErrAlreadyMinted      = errors.New("already minted")
	ErrMintInProgress     = errors.New("mint in progress")
	ErrMintWindowClosed   = errors.New("mint window closed")
	ErrSupplyExhausted    = errors.New("supply exhausted")
	ErrOrderNotPending    = errors.New("order is not pending")
	ErrPaymentRequired    = errors.New("signed transaction required")
	ErrNoTransfer         = errors.New("no native transfer instruction")
	ErrCollectionNotReady = errors.New("collection has no on-chain addresses")
	ErrNotOwner           = errors.New("not the owner")
)

package usecase

import "github.com/mr-tron/base58"

// ValidateWalletAddress checks that the address is base58 text decoding
// to a 32-byte public key.
func ValidateWalletAddress(address string) bool {
	if address == "" {
		return false
	}

	raw, err := base58.Decode(address)
	if err != nil {
		return false
	}

	return len(raw) == 32
}

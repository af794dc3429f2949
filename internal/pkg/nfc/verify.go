// Package nfc verifies tap signatures produced by physical tags bound to
// collectibles. A tag signs the SHA-256 digest of a server-issued nonce
// with its embedded P-256 key; the collectible stores the public half.
package nfc

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"math/big"
)

var (
	ErrInvalidPublicKey = errors.New("nfc: invalid public key")
	ErrInvalidSignature = errors.New("nfc: invalid signature encoding")
)

const rawSignatureLen = 64

// ParsePublicKey decodes a hex-encoded uncompressed P-256 public key
// (0x04 || X || Y, 65 bytes).
func ParsePublicKey(hexKey string) (*ecdsa.PublicKey, error) {
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, ErrInvalidPublicKey
	}
	if len(raw) != 65 || raw[0] != 0x04 {
		return nil, ErrInvalidPublicKey
	}
	curve := elliptic.P256()
	x := new(big.Int).SetBytes(raw[1:33])
	y := new(big.Int).SetBytes(raw[33:])
	if !curve.IsOnCurve(x, y) {
		return nil, ErrInvalidPublicKey
	}
	return &ecdsa.PublicKey{Curve: curve, X: x, Y: y}, nil
}

// VerifyTap checks a base64-encoded raw (r || s) signature over the SHA-256
// digest of the nonce against the tag public key.
func VerifyTap(pubKeyHex, nonce, signatureB64 string) (bool, error) {
	pub, err := ParsePublicKey(pubKeyHex)
	if err != nil {
		return false, err
	}
	sig, err := base64.StdEncoding.DecodeString(signatureB64)
	if err != nil {
		return false, ErrInvalidSignature
	}
	if len(sig) != rawSignatureLen {
		return false, ErrInvalidSignature
	}

	digest := sha256.Sum256([]byte(nonce))
	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:])
	return ecdsa.Verify(pub, digest[:], r, s), nil
}

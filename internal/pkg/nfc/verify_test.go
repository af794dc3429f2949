package nfc

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"testing"
)

func tagKeyPair(t *testing.T) (*ecdsa.PrivateKey, string) {
	t.Helper()
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	raw := make([]byte, 0, 65)
	raw = append(raw, 0x04)
	raw = append(raw, priv.PublicKey.X.FillBytes(make([]byte, 32))...)
	raw = append(raw, priv.PublicKey.Y.FillBytes(make([]byte, 32))...)
	return priv, hex.EncodeToString(raw)
}

func signNonce(t *testing.T, priv *ecdsa.PrivateKey, nonce string) string {
	t.Helper()
	digest := sha256.Sum256([]byte(nonce))
	r, s, err := ecdsa.Sign(rand.Reader, priv, digest[:])
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	sig := make([]byte, 0, 64)
	sig = append(sig, r.FillBytes(make([]byte, 32))...)
	sig = append(sig, s.FillBytes(make([]byte, 32))...)
	return base64.StdEncoding.EncodeToString(sig)
}

func TestVerifyTapAcceptsGenuineSignature(t *testing.T) {
	priv, pubHex := tagKeyPair(t)
	sig := signNonce(t, priv, "nonce-123")

	ok, err := VerifyTap(pubHex, "nonce-123", sig)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected signature to verify")
	}
}

func TestVerifyTapRejectsWrongNonce(t *testing.T) {
	priv, pubHex := tagKeyPair(t)
	sig := signNonce(t, priv, "nonce-123")

	ok, err := VerifyTap(pubHex, "nonce-456", sig)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("signature over different nonce must not verify")
	}
}

func TestVerifyTapRejectsForeignKey(t *testing.T) {
	priv, _ := tagKeyPair(t)
	_, otherPub := tagKeyPair(t)
	sig := signNonce(t, priv, "nonce-123")

	ok, err := VerifyTap(otherPub, "nonce-123", sig)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("signature must not verify against another tag key")
	}
}

func TestVerifyTapInvalidInputs(t *testing.T) {
	_, pubHex := tagKeyPair(t)

	if _, err := VerifyTap("zz", "n", "AAAA"); err != ErrInvalidPublicKey {
		t.Fatalf("expected ErrInvalidPublicKey, got %v", err)
	}
	if _, err := VerifyTap(pubHex, "n", "%%%"); err != ErrInvalidSignature {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
	short := base64.StdEncoding.EncodeToString([]byte{1, 2, 3})
	if _, err := VerifyTap(pubHex, "n", short); err != ErrInvalidSignature {
		t.Fatalf("expected ErrInvalidSignature for short signature, got %v", err)
	}
}

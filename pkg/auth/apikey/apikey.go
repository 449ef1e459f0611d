// Package apikey provides a static API key verifier using SHA-256
// hashing and constant-time comparison. The key authenticates the
// caller's right to use a narrow set of operations (account creation);
// it carries no identity.
package apikey

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/crymall/canteen-service/pkg/auth"
)

// Verifier validates candidate keys against one configured secret.
type Verifier struct {
	keyHash [32]byte
}

// Ensure Verifier implements auth.KeyVerifier at compile time.
var _ auth.KeyVerifier = (*Verifier)(nil)

// New creates a verifier for the given secret. The secret is hashed
// immediately; the plaintext is not retained.
func New(secret string) *Verifier {
	return &Verifier{keyHash: sha256.Sum256([]byte(secret))}
}

// Verify checks a candidate key. Absence and mismatch are the same
// failure: auth.ErrInvalidAPIKey.
func (v *Verifier) Verify(key string) error {
	if key == "" {
		return auth.ErrInvalidAPIKey
	}

	candidate := sha256.Sum256([]byte(key))
	if subtle.ConstantTimeCompare(candidate[:], v.keyHash[:]) != 1 {
		return auth.ErrInvalidAPIKey
	}

	return nil
}

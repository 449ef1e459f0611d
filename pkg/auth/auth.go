package auth

import (
	"context"
	"errors"
)

// Principal is the authenticated identity and permission set derived
// from a credential. It exists for the lifetime of one request and is
// never persisted.
type Principal struct {
	// ID is the user identifier, matched against resource owner columns.
	ID int64

	// Permissions lists the opaque capability strings granted to the
	// caller (e.g. "write:canteen"). Empty when the credential carried
	// no permissions claim.
	Permissions []string
}

// HasAnyPermission reports whether the principal holds at least one of
// the required permissions. Matching is disjunctive: possessing any
// single listed permission is sufficient. An empty required set never
// matches.
func (p *Principal) HasAnyPermission(required []string) bool {
	if p == nil {
		return false
	}
	for _, want := range required {
		for _, have := range p.Permissions {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Sentinel errors for credential verification.
var (
	// ErrNoCredential means the request carried no usable credential:
	// missing Authorization header, wrong scheme, or empty token.
	ErrNoCredential = errors.New("no credential provided")

	// ErrInvalidCredential means a credential was presented but failed
	// verification (bad signature, expired, malformed claims).
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrInvalidAPIKey means the API key was absent or did not match
	// the configured secret.
	ErrInvalidAPIKey = errors.New("invalid API key")
)

// TokenVerifier validates the Authorization header value and derives a
// Principal from it.
type TokenVerifier interface {
	Verify(ctx context.Context, authorization string) (*Principal, error)
}

// KeyVerifier validates a static API key value.
type KeyVerifier interface {
	Verify(key string) error
}

// Package jwt provides a bearer-token verifier for HMAC-signed JWTs.
//
// Tokens are issued externally and carry the caller's user id and
// permission set as claims. The signing secret is injected at
// construction, never read from the process environment inside the
// verifier, so tests can run against deterministic secrets.
package jwt

import (
	"context"
	"fmt"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/crymall/canteen-service/pkg/auth"
)

// Config holds the verifier configuration.
type Config struct {
	// Secret is the shared HMAC signing secret (required).
	Secret string

	// Issuer is the expected iss claim. If empty, issuer is not validated.
	Issuer string

	// UserClaim is the claim holding the numeric user id. Default: "id".
	UserClaim string

	// PermissionsClaim is the claim holding the permission set.
	// The value can be a JSON array or a space-separated string.
	// Default: "permissions".
	PermissionsClaim string
}

// applyDefaults fills in zero-value fields.
func (c *Config) applyDefaults() {
	if c.UserClaim == "" {
		c.UserClaim = "id"
	}
	if c.PermissionsClaim == "" {
		c.PermissionsClaim = "permissions"
	}
}

// Verifier validates HS256 bearer tokens against a shared secret.
type Verifier struct {
	config Config
	secret []byte
}

// Ensure Verifier implements auth.TokenVerifier at compile time.
var _ auth.TokenVerifier = (*Verifier)(nil)

// New creates a token verifier with the given configuration.
func New(cfg Config) *Verifier {
	cfg.applyDefaults()
	return &Verifier{
		config: cfg,
		secret: []byte(cfg.Secret),
	}
}

// Verify extracts a bearer token from the Authorization header value,
// validates it, and derives a Principal from its claims.
//
// Outcomes:
//   - auth.ErrNoCredential: missing header, non-Bearer scheme, empty token
//   - auth.ErrInvalidCredential (wrapped): signature/expiry/claims failure
//   - nil error with a populated Principal otherwise
func (v *Verifier) Verify(_ context.Context, authorization string) (*auth.Principal, error) {
	if authorization == "" {
		return nil, auth.ErrNoCredential
	}

	tokenStr, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok || tokenStr == "" {
		return nil, auth.ErrNoCredential
	}

	token, err := jwtlib.Parse(tokenStr, func(token *jwtlib.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, v.parserOptions()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrInvalidCredential, err)
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: malformed claims", auth.ErrInvalidCredential)
	}

	id, ok := claimID(claims, v.config.UserClaim)
	if !ok {
		return nil, fmt.Errorf("%w: missing %q claim", auth.ErrInvalidCredential, v.config.UserClaim)
	}

	return &auth.Principal{
		ID:          id,
		Permissions: extractPermissions(claims, v.config.PermissionsClaim),
	}, nil
}

// parserOptions builds parser options based on the configuration.
func (v *Verifier) parserOptions() []jwtlib.ParserOption {
	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
	}
	if v.config.Issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(v.config.Issuer))
	}
	return opts
}

// claimID extracts a numeric user id from the claims. JSON numbers
// decode as float64, but string-encoded ids are accepted too since
// token issuers differ on this.
func claimID(claims jwtlib.MapClaims, key string) (int64, bool) {
	val, ok := claims[key]
	if !ok {
		return 0, false
	}
	switch n := val.(type) {
	case float64:
		return int64(n), true
	case string:
		var id int64
		if _, err := fmt.Sscanf(n, "%d", &id); err == nil {
			return id, true
		}
	}
	return 0, false
}

// extractPermissions extracts the permission set from the claims.
// Returns nil when the claim is absent; the gate treats that as an
// empty set.
func extractPermissions(claims jwtlib.MapClaims, key string) []string {
	val, ok := claims[key]
	if !ok {
		return nil
	}

	// Space-separated string (e.g. "read:public write:canteen").
	if s, ok := val.(string); ok {
		parts := strings.Fields(s)
		if len(parts) == 0 {
			return nil
		}
		return parts
	}

	// JSON array (e.g. ["read:public", "write:canteen"]).
	if arr, ok := val.([]interface{}); ok {
		var perms []string
		for _, item := range arr {
			if s, ok := item.(string); ok {
				perms = append(perms, s)
			}
		}
		return perms
	}

	return nil
}

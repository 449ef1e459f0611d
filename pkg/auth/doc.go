// Package auth provides request authentication and authorization for
// the canteen service.
//
// Two credential schemes exist, bound per route at registration time:
// bearer tokens (pkg/auth/jwt) for identified callers, and a static
// API key (pkg/auth/apikey) for the narrow unauthenticated-identity
// operations such as account creation. The API-key path authenticates
// the right to call, not an identity, so it produces no Principal and
// bypasses the permission gate.
//
// Auth is implemented as HTTP middleware. On success the verified
// Principal is threaded into the request context; the permission gate
// downstream never runs before verification completes.
package auth

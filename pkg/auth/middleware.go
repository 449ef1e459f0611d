package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/crymall/canteen-service/pkg/api"
	"github.com/crymall/canteen-service/pkg/observability"
	"github.com/crymall/canteen-service/pkg/transport"
)

// RequireAuth creates middleware that verifies the bearer credential
// and injects the resulting Principal into the request context. The
// request never reaches the next handler unless verification completed
// successfully.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := verifier.Verify(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				if errors.Is(err, ErrNoCredential) {
					observability.AuthFailuresTotal.WithLabelValues("no_token").Inc()
					transport.WriteAPIError(w, api.NewNoTokenError())
					return
				}

				slog.Warn("token verification failed",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"error", err,
				)
				observability.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				transport.WriteAPIError(w, api.NewInvalidTokenError())
				return
			}

			next.ServeHTTP(w, r.WithContext(SetPrincipal(r.Context(), principal)))
		})
	}
}

// RequirePermissions creates the permission-gate middleware. The
// required set is fixed at route registration; the gate allows the
// request iff the principal holds at least one listed permission. On
// mismatch the response echoes which permissions would have sufficed,
// never the ones the caller actually has.
func RequirePermissions(required ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := PrincipalFromContext(r.Context())
			if principal == nil {
				observability.AuthFailuresTotal.WithLabelValues("unauthenticated").Inc()
				transport.WriteAPIError(w, api.NewUnauthenticatedError())
				return
			}

			if !principal.HasAnyPermission(required) {
				slog.Warn("permission denied",
					"path", r.URL.Path,
					"user_id", principal.ID,
					"required", required,
				)
				observability.AuthFailuresTotal.WithLabelValues("forbidden").Inc()
				transport.WriteAPIError(w, api.NewForbiddenError(required))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAPIKey creates middleware that checks the x-api-key header
// against the configured secret. No Principal is produced; the gate is
// bypassed on this path.
func RequireAPIKey(verifier KeyVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := verifier.Verify(r.Header.Get("x-api-key")); err != nil {
				slog.Warn("API key rejected",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
				)
				observability.AuthFailuresTotal.WithLabelValues("invalid_api_key").Inc()
				transport.WriteAPIError(w, api.NewInvalidAPIKeyError())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

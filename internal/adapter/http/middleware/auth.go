package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/iho/finbook/internal/infrastructure/auth"
	"github.com/iho/finbook/internal/infrastructure/metrics"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// OwnerContextKey is the context key for the authenticated owner ID
	OwnerContextKey ContextKey = "owner"

	// DevOwnerHeader names the owner when authentication is disabled.
	DevOwnerHeader = "X-Owner-ID"

	// DefaultOwnerID is the single-user fallback owner.
	DefaultOwnerID = "default"
)

// AuthMiddleware creates an authentication middleware. Every request is
// scoped to the owner carried in the token.
func AuthMiddleware(jwtManager *auth.JWTManager, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				if m != nil {
					m.AuthFailures.WithLabelValues("missing_header").Inc()
				}
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				if m != nil {
					m.AuthFailures.WithLabelValues("malformed_header").Inc()
				}
				http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := jwtManager.Verify(parts[1])
			if err != nil {
				if m != nil {
					m.AuthFailures.WithLabelValues("invalid_token").Inc()
				}
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), OwnerContextKey, claims.OwnerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DevAuthMiddleware scopes requests without verifying a token. Used when
// authentication is disabled: the owner comes from a header, falling back to
// the single-user default.
func DevAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ownerID := r.Header.Get(DevOwnerHeader)
			if ownerID == "" {
				ownerID = DefaultOwnerID
			}

			ctx := context.WithValue(r.Context(), OwnerContextKey, ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetOwnerFromContext extracts the authenticated owner ID from context
func GetOwnerFromContext(ctx context.Context) (string, bool) {
	ownerID, ok := ctx.Value(OwnerContextKey).(string)
	return ownerID, ok
}

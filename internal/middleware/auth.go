package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/centsplit/centsplit/internal/auth"
	"github.com/centsplit/centsplit/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// principalKey is the context key for the resolved acting user.
const principalKey contextKey = "principal"

// Principal extracts the resolved user from the context.
// Returns nil if the request was not authenticated.
func Principal(ctx context.Context) *models.User {
	principal, _ := ctx.Value(principalKey).(*models.User)
	return principal
}

// RequireAuth returns a middleware that resolves the caller's identity
// before any ledger logic runs. It extracts the bearer token, resolves
// it to a canonical user record, and injects that principal into the
// request context. Requests without a valid, provisioned user are
// rejected with 401.
func RequireAuth(resolver *auth.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)

			principal, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrUnauthenticated):
					unauthorized(w, "authorization token required or invalid")
				case errors.Is(err, auth.ErrUserNotProvisioned):
					unauthorized(w, "no user provisioned for this session")
				default:
					http.Error(w, "internal error", http.StatusInternalServerError)
				}
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

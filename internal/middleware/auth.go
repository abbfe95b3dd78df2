package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/afrowave/api/internal/service/auth"
	"github.com/afrowave/api/pkg/utils"
)

type contextKey struct{}

var identityKey contextKey

// TokenVerifier validates a bearer token and returns its identity claims.
type TokenVerifier interface {
	VerifyToken(token string) (auth.Identity, error)
}

// Auth gates every route behind a bearer token. Missing or invalid tokens
// are rejected uniformly with 401 before any handler runs.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				utils.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			identity, err := verifier.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				utils.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the verified identity set by Auth.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok
}

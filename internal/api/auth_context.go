package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/studytrack/studytrack-server/internal/auth"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

// identityKey is the context key for the authenticated identity.
const identityKey ctxKey = "identity"

// GetIdentity returns the authenticated identity from context.
// Returns 401 error if the request is not authenticated.
func GetIdentity(ctx context.Context) (string, error) {
	identity := IdentityFromContext(ctx)
	if identity == "" {
		return "", huma.Error401Unauthorized("Authentication required")
	}
	return identity, nil
}

// IdentityFromContext returns the authenticated identity, or "".
func IdentityFromContext(ctx context.Context) string {
	identity, _ := ctx.Value(identityKey).(string)
	return identity
}

// setIdentity stores the identity in context.
func setIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// authMiddleware validates Bearer tokens and stores the token subject as the
// caller identity. Requests without a valid token continue anonymously;
// handlers use GetIdentity to reject them.
func authMiddleware(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.VerifyAccessToken(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(setIdentity(r.Context(), claims.Identity())))
		})
	}
}

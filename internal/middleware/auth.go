package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"

	"GROUPGO_BACK-END/internal/store"
	"GROUPGO_BACK-END/internal/utils"
)

type contextKey string

const identityKey contextKey = "identity"

// Authenticator verifies Firebase ID tokens and attaches the caller's
// identity to the request context. The session token is the sole gate for
// every store operation that requires an authenticated caller.
type Authenticator struct {
	auth *auth.Client
}

// NewAuthenticator creates an Authenticator over the shared auth client.
func NewAuthenticator(clients *store.Clients) *Authenticator {
	return &Authenticator{auth: clients.Auth}
}

// Middleware rejects requests without a valid Firebase ID token. Websocket
// clients cannot always set headers, so a "token" query parameter is
// accepted as a fallback.
func (a *Authenticator) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := bearerToken(r)
		if tokenString == "" {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Authorization header required")
			return
		}

		token, err := a.auth.VerifyIDToken(r.Context(), tokenString)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid token")
			return
		}

		ident := store.Identity{UID: token.UID}
		if v, ok := token.Claims["email"].(string); ok {
			ident.Email = v
		}
		if v, ok := token.Claims["name"].(string); ok {
			ident.DisplayName = v
		}

		ctx := context.WithValue(r.Context(), identityKey, ident)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>",
// falling back to the "token" query parameter.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return r.URL.Query().Get("token")
}

// IdentityFromContext returns the caller identity placed by Middleware.
func IdentityFromContext(ctx context.Context) (store.Identity, bool) {
	ident, ok := ctx.Value(identityKey).(store.Identity)
	return ident, ok
}

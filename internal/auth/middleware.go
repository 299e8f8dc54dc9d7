package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/reads-stash/server/internal/apperror"
	"github.com/reads-stash/server/internal/metrics"
)

// contextKey is an unexported type used for context keys in this package.
// Using a package-private type prevents other packages from reading or
// shadowing the principal value — only this package can build the key.
type contextKey string

const principalKey contextKey = "principal"

// errorWriter decouples this middleware from the handler package's response
// helpers (importing handler here would create an import cycle). The server
// wires in handler.WriteError.
type errorWriter func(w http.ResponseWriter, err error)

// RequireAuth is the principal resolver: middleware that enforces
// authentication on every protected route.
//
// It reads the standard Authorization: Bearer header, validates the JWT, and
// stores the decoded Principal in the request context. A missing header and
// an unverifiable token produce the identical 401 — the caller can't tell
// "absent" from "expired" from "forged", and that is deliberate.
//
// The resolver performs no database lookup: the principal's identity is
// trusted as of token issuance, not re-verified against current row state.
func RequireAuth(tokens *TokenService, writeError errorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := extractPrincipal(r, tokens)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("unauthenticated").Inc()
				writeError(w, apperror.Unauthenticated())
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext retrieves the authenticated Principal set by
// RequireAuth. The second return is false for anonymous requests, which on a
// RequireAuth-protected route should never happen.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok && p.ID != 0
}

// extractPrincipal reads the bearer token from the Authorization header and
// validates it.
func extractPrincipal(r *http.Request, tokens *TokenService) (Principal, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return Principal{}, apperror.Unauthenticated()
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return Principal{}, apperror.Unauthenticated()
	}

	return tokens.Validate(parts[1])
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/reads-stash/server/internal/apperror"
	"github.com/reads-stash/server/internal/auth"
)

// requirePrincipal fetches the principal set by the auth middleware. On a
// protected route it is always present; the error branch covers a route
// wired outside the middleware by mistake.
func requirePrincipal(r *http.Request) (auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		return auth.Principal{}, apperror.Unauthenticated()
	}
	return p, nil
}

// pathID parses a numeric path parameter. The ownership guard runs before
// this on owner params, so by the time an owner id is parsed it is known
// numeric; for resource ids a malformed value reads as a missing resource.
func pathID(r *http.Request, name, resource string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.NotFound(resource, raw)
	}
	return id, nil
}

package middleware

import (
	"net/http"

	"github.com/rs/xid"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every response with a sortable unique id. An id supplied by
// the client (a proxy tracing a call chain) is passed through; otherwise a
// fresh xid is generated. The header is set before the handler runs so the
// Logger middleware can read it afterwards.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = xid.New().String()
		}
		w.Header().Set(requestIDHeader, id)

		next.ServeHTTP(w, r)
	})
}

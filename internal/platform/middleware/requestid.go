package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"carebridge/pkg/requestcontext"
)

const requestIDHeader = "X-Request-Id"

// RequestID attaches a correlation ID to the request context and response,
// reusing the caller's ID when one is supplied.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

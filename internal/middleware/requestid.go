package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestID assigns a fresh UUID to requests that arrive without an
// X-Request-ID header and echoes the header on the response, so error
// envelopes and logs can be correlated.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
			r.Header.Set("X-Request-ID", id)
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

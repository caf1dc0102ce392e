package middleware

import (
	"net/http"

	"socialmedia/internal/httputil"
)

// DefaultMaxBodyBytes comfortably fits any request body the API accepts.
const DefaultMaxBodyBytes = 64 << 10

// MaxBodySize rejects requests that announce a body larger than maxBytes and
// caps the reader for those that do not, so a decoder sees an error instead of
// reading without bound.
func MaxBodySize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				httputil.WriteError(w, http.StatusRequestEntityTooLarge, httputil.ErrCodePayloadTooLarge, "Request body too large")
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

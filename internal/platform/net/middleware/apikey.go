package middleware

import (
	"crypto/subtle"
	"net/http"

	perr "pulsetrack/internal/platform/errors"
	pnet "pulsetrack/internal/platform/net"
)

// APIKeyHeader is the shared-secret header checked by APIKey
const APIKeyHeader = "X-API-Key"

// APIKey rejects requests whose X-API-Key header does not match key.
// write is the JSON writer used for the 401 body (keeps this package
// transport-envelope agnostic)
func APIKey(key string, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(APIKeyHeader)
			if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				status, body := perr.HTTP(perr.Unauthorizedf("missing or invalid API key"))
				if reqID := pnet.RequestID(r.Context()); reqID != "" {
					w.Header().Set("X-Request-ID", reqID)
				}
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

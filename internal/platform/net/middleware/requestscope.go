package middleware

import (
	"net/http"

	"pulsetrack/internal/platform/logger"
	pnet "pulsetrack/internal/platform/net"
)

// RequestScope copies the request id into the logger context so request-scoped
// child loggers carry it. Mount after RequestID
func RequestScope() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if reqID := pnet.RequestID(ctx); reqID != "" {
				ctx = logger.WithRequest(ctx, reqID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package middleware

import (
	"fmt"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/demo-018/indiveg-hub/pkg/logger"
)

// Logging attaches a request-scoped logger and emits one line per
// request with method, path, status and latency.
func Logging(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx := log.WithRequestID(r.Context(), RequestIDFrom(r.Context()))
			ctx = log.WithFields(ctx, map[string]any{
				"method": r.Method,
				"path":   r.URL.Path,
			})

			wrapped := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(wrapped, r.WithContext(ctx))

			ctx = log.WithFields(ctx, map[string]any{
				"status":      wrapped.Status(),
				"bytes":       wrapped.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
			})
			log.Info(ctx, fmt.Sprintf("%s %s -> %d", r.Method, r.URL.Path, wrapped.Status()))
		})
	}
}

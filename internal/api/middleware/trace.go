// Package middleware contains HTTP middleware for the API layer.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/dstanley/taskforge-api/internal/api/shared"
	"github.com/dstanley/taskforge-api/internal/platform/logger"
)

// TraceMiddleware adds a trace ID to the request context and attaches a
// logger annotated with it, so every log line downstream of this
// middleware carries the same trace ID. Apply it early in the chain.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := slog.With(slog.String("trace_id", traceID))
		ctx = logger.WithLogger(ctx, log)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

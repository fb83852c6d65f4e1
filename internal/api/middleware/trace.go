package middleware

import (
	"log/slog"
	"net/http"

	"github.com/tomehq/practice-api/internal/api/shared"
)

// CorrelationHeader is the inbound header carrying a caller-supplied
// correlation id. The same id is forwarded to upstream services.
const CorrelationHeader = "X-Correlation-Id"

// TraceMiddleware seeds the request context with a trace ID, honoring a
// correlation id forwarded by the caller and generating one otherwise.
// This middleware should be applied early in the middleware chain so all
// subsequent handlers have access to the trace ID.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context(), r.Header.Get(CorrelationHeader))

		traceID := shared.GetTraceID(ctx)
		w.Header().Set(CorrelationHeader, traceID)

		slog.Debug("request started",
			slog.String("trace_id", traceID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

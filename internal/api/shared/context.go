package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"

	"github.com/google/uuid"
)

// ContextKey is the type used for context values set by the API layer.
type ContextKey string

// Context keys for various values
const (
	// UserContextKey is the context key for the authenticated user's email.
	UserContextKey ContextKey = "user"

	// AuthorizationContextKey is the context key for the caller's raw
	// Authorization header, kept for forwarding to upstream services.
	AuthorizationContextKey ContextKey = "authorization"

	// TraceIDKey is the key for the trace ID in the request context.
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of bytes used to generate the trace ID.
	TraceIDLength = 16 // 32 hex characters
)

// SetTraceID adds a trace ID to the context.
// This is useful for correlating logs and error responses.
// An id forwarded by the caller (X-Correlation-ID) takes precedence; a
// fresh one is generated when none is given.
func SetTraceID(ctx context.Context, inbound string) context.Context {
	traceID := inbound
	if traceID == "" {
		traceID = generateTraceID()
	}
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// GetUser retrieves the authenticated user's email from the context.
func GetUser(ctx context.Context) (string, bool) {
	user, ok := ctx.Value(UserContextKey).(string)
	return user, ok && user != ""
}

// GetAuthorization retrieves the caller's raw Authorization header from
// the context.
func GetAuthorization(ctx context.Context) string {
	authorization, ok := ctx.Value(AuthorizationContextKey).(string)
	if !ok {
		return ""
	}
	return authorization
}

// generateTraceID creates a random trace ID for request tracking.
// Returns a 32-character hex string (16 bytes). If crypto/rand fails it
// falls back to a UUID rather than ever returning a static value.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	n, err := rand.Read(b)

	if err != nil || n != TraceIDLength {
		slog.Error("failed to generate secure random trace ID",
			"error", err,
			"bytes_read", n,
			"bytes_requested", TraceIDLength,
			"fallback", "uuid")
		return uuid.NewString()
	}

	return hex.EncodeToString(b)
}

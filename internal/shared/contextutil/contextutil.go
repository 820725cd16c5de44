package contextutil

import (
	"context"

	"github.com/MuleAlemuB/project1-sub002/internal/domain"

	"go.uber.org/zap"
)

// contextKey is private so keys never collide with other packages.
type contextKey string

const (
	identityKey contextKey = "identity"
	loggerKey   contextKey = "logger"
)

// --- Identity Helpers ---

// WithIdentity stores the authenticated caller in the context.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentity returns the authenticated caller, if any.
func GetIdentity(ctx context.Context) (domain.Identity, bool) {
	if ctx == nil {
		return domain.Identity{}, false
	}
	id, ok := ctx.Value(identityKey).(domain.Identity)
	return id, ok
}

// GetUserID returns the caller id as a string, empty when anonymous.
func GetUserID(ctx context.Context) string {
	if id, ok := GetIdentity(ctx); ok {
		return id.ID.String()
	}
	return ""
}

// --- Logger Helpers ---

// WithLogger stores a (usually request-decorated) zap logger in the context.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the context logger, falling back to defaultLogger and
// then to a no-op logger so callers never get nil.
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}

	if defaultLogger != nil {
		return defaultLogger
	}

	return zap.NewNop()
}

// Metadata holds basic tracing info.
type Metadata struct {
	RequestID string
	UserID    string
	Role      string
}

// ExtractMetadata collects tracing info for manual logging.
func ExtractMetadata(ctx context.Context) Metadata {
	md := Metadata{
		RequestID: GetRequestID(ctx),
		UserID:    GetUserID(ctx),
	}
	if id, ok := GetIdentity(ctx); ok {
		md.Role = id.Role.String()
	}
	return md
}

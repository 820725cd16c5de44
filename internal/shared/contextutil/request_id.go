package contextutil

import "context"

const requestIDKey contextKey = "request_id"

// GetRequestID returns the request id propagated by the middleware.
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// WithRequestID injects a request id, useful in unit tests.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

// GetKey exposes the raw key for middleware that needs it.
func GetKey() string {
	return string(requestIDKey)
}

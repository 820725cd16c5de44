package bootstrap

import "context"

// AuditLog is a single operational event worth keeping outside the
// regular request log.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

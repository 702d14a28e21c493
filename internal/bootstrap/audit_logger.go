package bootstrap

import "context"

// AuditLog is a single operational audit entry. These cover process
// level events (startup, shutdown), not tenant data changes.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger mencatat kejadian operasional penting (shutdown, keputusan cuti).
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

package usecase

import "context"

// AuditRecorder abstracts the audit trail so use cases stay storage-agnostic.
// Recording is best-effort: callers log failures but never fail the primary
// operation over them.
type AuditRecorder interface {
	Record(ctx context.Context, action, entity, entityID, detail string) error
}

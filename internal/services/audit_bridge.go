package services

import (
	"context"

	"github.com/guruapp/backend/internal/infrastructure/audit"
	"github.com/guruapp/backend/usecase"
)

// AuditBridge adapts the bolt-backed audit store to the recorder port the
// use cases depend on.
type AuditBridge struct {
	store *audit.Store
}

func NewAuditBridge(store *audit.Store) *AuditBridge {
	return &AuditBridge{store: store}
}

func (b *AuditBridge) Record(_ context.Context, action, entity, entityID, detail string) error {
	if b == nil || b.store == nil {
		return nil
	}
	return b.store.Append(audit.Entry{
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Detail:   detail,
	})
}

var _ usecase.AuditRecorder = (*AuditBridge)(nil)

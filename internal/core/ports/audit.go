package ports

import (
	"context"

	"github.com/random-knowledge/knowledge-api/internal/core/domain"
)

// AuditRepository persists authentication audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}

// AuditRecorder accepts audit events for asynchronous persistence.
// Implementations must not block request handling.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

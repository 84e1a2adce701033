package ports

import (
	"context"

	"github.com/repairshop/technotes/internal/core/domain"
)

// AuditRepository persists audit-trail entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}

// AuditSink accepts audit entries for asynchronous recording. Record must
// never block the caller's request path beyond channel buffering.
type AuditSink interface {
	Record(entry domain.AuditEntry)
}

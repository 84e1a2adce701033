package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/repairshop/technotes/internal/core/domain"
)

const auditCollection = "audit_log"

// AuditRepository persists audit-trail entries. Writes happen off the
// request path (via the queue dispatcher), so failures here never surface
// to API callers.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(auditCollection)}
}

type mongoAuditEntry struct {
	Entity   string    `bson:"entity"`
	EntityID string    `bson:"entity_id"`
	Action   string    `bson:"action"`
	Detail   string    `bson:"detail,omitempty"`
	At       time.Time `bson:"at"`
}

func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAuditEntry{
		Entity:   entry.Entity,
		EntityID: entry.EntityID,
		Action:   entry.Action,
		Detail:   entry.Detail,
		At:       entry.At,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

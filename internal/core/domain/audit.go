package domain

import "time"

const (
	AuditEntityUser = "user"
	AuditEntityNote = "note"
)

const (
	AuditActionCreated = "created"
	AuditActionUpdated = "updated"
	AuditActionDeleted = "deleted"
)

// AuditEntry records a single successful mutation for the audit trail.
type AuditEntry struct {
	Entity   string    `json:"entity"`
	EntityID string    `json:"entity_id"`
	Action   string    `json:"action"`
	Detail   string    `json:"detail,omitempty"`
	At       time.Time `json:"at"`
}

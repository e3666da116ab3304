package models

import "time"

// AuditLog records one mutation of a domain entity. Rows are append-only.
type AuditLog struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	EntityType string    `gorm:"type:varchar(50);not null;index:idx_audit_logs_entity,priority:1" json:"entity_type"`
	EntityID   uint64    `gorm:"not null;index:idx_audit_logs_entity,priority:2" json:"entity_id"`
	Action     string    `gorm:"type:varchar(50);not null" json:"action"`
	Changes    string    `gorm:"type:text" json:"changes"`
	ActorID    *uint64   `gorm:"index" json:"actor_id"`
	CreatedAt  time.Time `json:"created_at"`
}

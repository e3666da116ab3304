package audit

import (
	"encoding/json"
	"log"

	"github.com/yukikurage/org-management-api/internal/models"
	"gorm.io/gorm"
)

// Actions recorded by the services.
const (
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionAssign   = "assign"
	ActionUnassign = "unassign"
	ActionGrant    = "grant"
	ActionRevoke   = "revoke"
)

// Entry describes one mutation of a domain entity.
type Entry struct {
	EntityType string
	EntityID   uint64
	Action     string
	Changes    map[string]interface{}
	ActorID    *uint64
}

// Recorder persists change-history entries. A failed recording must never
// fail the mutation it describes; implementations handle their own errors.
type Recorder interface {
	Record(entry Entry)
}

// GormRecorder writes audit entries to the audit_logs table.
type GormRecorder struct {
	db *gorm.DB
}

// NewRecorder creates a Recorder backed by the given database.
func NewRecorder(db *gorm.DB) Recorder {
	return &GormRecorder{db: db}
}

// Record persists the entry, logging and swallowing any failure.
func (r *GormRecorder) Record(entry Entry) {
	changes := ""
	if entry.Changes != nil {
		data, err := json.Marshal(entry.Changes)
		if err != nil {
			log.Printf("audit: failed to encode changes for %s %d: %v", entry.EntityType, entry.EntityID, err)
		} else {
			changes = string(data)
		}
	}

	record := models.AuditLog{
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Action:     entry.Action,
		Changes:    changes,
		ActorID:    entry.ActorID,
	}
	if err := r.db.Create(&record).Error; err != nil {
		log.Printf("audit: failed to record %s of %s %d: %v", entry.Action, entry.EntityType, entry.EntityID, err)
	}
}

// NopRecorder discards entries. Used in tests.
type NopRecorder struct{}

// Record does nothing.
func (NopRecorder) Record(Entry) {}

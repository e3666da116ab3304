package models

import (
	"time"

	"github.com/yukikurage/org-management-api/internal/i18n"
)

// Organization is the tenant root. Every other entity in this package is
// owned, directly or transitively, by exactly one organization. The parent
// link is navigational only: a parent does not own its children, and the
// chain must stay cycle-free.
type Organization struct {
	ID          uint64                `gorm:"primarykey" json:"id"`
	Name        i18n.TranslatedString `gorm:"type:json;not null" json:"name"`
	Description i18n.TranslatedString `gorm:"type:json" json:"description"`
	ParentID    *uint64               `gorm:"index" json:"parent_id"`
	ArchivedAt  *time.Time            `json:"archived_at"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`

	// Relations
	Parent   *Organization  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []Organization `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

// Archived reports whether the organization has been soft-archived. The
// transition itself is managed outside this service.
func (o *Organization) Archived() bool {
	return o.ArchivedAt != nil
}

package models

import (
	"time"

	"github.com/yukikurage/org-management-api/internal/i18n"
)

type Group struct {
	ID             uint64                `gorm:"primarykey" json:"id"`
	OrganizationID uint64                `gorm:"not null;index" json:"organization_id"`
	Name           i18n.TranslatedString `gorm:"type:json;not null" json:"name"`
	Description    i18n.TranslatedString `gorm:"type:json" json:"description"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Members      []Member     `gorm:"many2many:group_members" json:"members,omitempty"`
}

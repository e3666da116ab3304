package models

import (
	"time"

	"github.com/yukikurage/org-management-api/internal/i18n"
)

type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "active"
	MemberStatusInactive MemberStatus = "inactive"
)

// Member is a person within one organization. UserID is a weak reference to
// the account the person logs in with; a member can exist without one.
type Member struct {
	ID             uint64                `gorm:"primarykey" json:"id"`
	OrganizationID uint64                `gorm:"not null;index" json:"organization_id"`
	UserID         *uint64               `gorm:"index" json:"user_id"`
	Email          string                `gorm:"type:varchar(255);not null;index" json:"email"`
	Name           i18n.TranslatedString `gorm:"type:json" json:"name"`
	Status         MemberStatus          `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Groups       []Group      `gorm:"many2many:group_members" json:"groups,omitempty"`
}

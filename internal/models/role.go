package models

import (
	"time"

	"github.com/yukikurage/org-management-api/internal/i18n"
)

// Role is a position within an organization. Roles form a tree scoped to
// their owning organization, may belong to a department of the same
// organization, and hold permissions as a grantee.
type Role struct {
	ID             uint64                `gorm:"primarykey" json:"id"`
	OrganizationID uint64                `gorm:"not null;index" json:"organization_id"`
	DepartmentID   *uint64               `gorm:"index" json:"department_id"`
	ParentID       *uint64               `gorm:"index" json:"parent_id"`
	Active         bool                  `gorm:"not null;default:true" json:"active"`
	Name           i18n.TranslatedString `gorm:"type:json;not null" json:"name"`
	Description    i18n.TranslatedString `gorm:"type:json" json:"description"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`

	// Relations
	Organization Organization     `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Department   *Department      `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Parent       *Role            `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children     []Role           `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Assignments  []RoleAssignment `gorm:"foreignKey:RoleID" json:"assignments,omitempty"`
}

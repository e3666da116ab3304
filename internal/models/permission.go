package models

import "time"

// GranteeType tags the kind of entity a permission is attached to. The set
// is closed: permissions resolve through a lookup per kind rather than an
// open-ended polymorphic association.
type GranteeType string

const (
	GranteeMember     GranteeType = "member"
	GranteeRole       GranteeType = "role"
	GranteeGroup      GranteeType = "group"
	GranteeDepartment GranteeType = "department"
)

// Valid reports whether t is one of the known grantee kinds.
func (t GranteeType) Valid() bool {
	switch t {
	case GranteeMember, GranteeRole, GranteeGroup, GranteeDepartment:
		return true
	}
	return false
}

// Permission grants a capability, identified by Code, to a single grantee.
// A grantee may hold a given code at most once.
type Permission struct {
	ID             uint64      `gorm:"primarykey" json:"id"`
	OrganizationID uint64      `gorm:"not null;index" json:"organization_id"`
	Code           string      `gorm:"type:varchar(255);not null;uniqueIndex:idx_permissions_grantee_code,priority:3" json:"code"`
	GranteeType    GranteeType `gorm:"type:varchar(20);not null;uniqueIndex:idx_permissions_grantee_code,priority:1" json:"grantee_type"`
	GranteeID      uint64      `gorm:"not null;uniqueIndex:idx_permissions_grantee_code,priority:2" json:"grantee_id"`
	CreatedAt      time.Time   `json:"created_at"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}

package models

import "time"

// AssigneeType tags the kind of entity a RoleAssignment binds to a role.
// Members are the only assignees today; the tag keeps the door open for
// other kinds without an open-ended polymorphic reference.
type AssigneeType string

const (
	AssigneeMember AssigneeType = "member"
)

// RoleAssignment is the temporal join between a role and its assignee.
// A nil FinishDate marks the currently active assignment; closed rows are
// the assignment history and are never deleted.
type RoleAssignment struct {
	ID             uint64       `gorm:"primarykey" json:"id"`
	RoleID         uint64       `gorm:"not null;index:idx_role_assignments_assignee,priority:2;index" json:"role_id"`
	AssigneeType   AssigneeType `gorm:"type:varchar(20);not null;default:'member';index:idx_role_assignments_assignee,priority:3" json:"assignee_type"`
	AssigneeID     uint64       `gorm:"not null;index:idx_role_assignments_assignee,priority:1" json:"assignee_id"`
	OrganizationID uint64       `gorm:"not null;index" json:"organization_id"`
	StartDate      time.Time    `gorm:"not null" json:"start_date"`
	FinishDate     *time.Time   `json:"finish_date"`

	// Relations
	Role         Role         `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}

// Active reports whether the assignment is currently in effect.
func (a *RoleAssignment) Active() bool {
	return a.FinishDate == nil
}

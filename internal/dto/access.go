package dto

import (
	"time"

	"github.com/yukikurage/org-management-api/internal/models"
)

// RoleAssignmentDTO represents a role assignment in API responses
type RoleAssignmentDTO struct {
	ID           uint64              `json:"id"`
	RoleID       uint64              `json:"role_id"`
	AssigneeType models.AssigneeType `json:"assignee_type"`
	AssigneeID   uint64              `json:"assignee_id"`
	StartDate    time.Time           `json:"start_date"`
	FinishDate   *time.Time          `json:"finish_date"`
	Active       bool                `json:"active"`
}

// ToRoleAssignmentDTO converts a RoleAssignment model to RoleAssignmentDTO
func ToRoleAssignmentDTO(assignment models.RoleAssignment) RoleAssignmentDTO {
	return RoleAssignmentDTO{
		ID:           assignment.ID,
		RoleID:       assignment.RoleID,
		AssigneeType: assignment.AssigneeType,
		AssigneeID:   assignment.AssigneeID,
		StartDate:    assignment.StartDate,
		FinishDate:   assignment.FinishDate,
		Active:       assignment.Active(),
	}
}

// ToRoleAssignmentDTOs converts a slice of role assignments
func ToRoleAssignmentDTOs(assignments []models.RoleAssignment) []RoleAssignmentDTO {
	dtos := make([]RoleAssignmentDTO, len(assignments))
	for i, assignment := range assignments {
		dtos[i] = ToRoleAssignmentDTO(assignment)
	}
	return dtos
}

// PermissionDTO represents a permission grant in API responses
type PermissionDTO struct {
	ID          uint64             `json:"id"`
	Code        string             `json:"code"`
	GranteeType models.GranteeType `json:"grantee_type"`
	GranteeID   uint64             `json:"grantee_id"`
}

// ToPermissionDTO converts a Permission model to PermissionDTO
func ToPermissionDTO(perm models.Permission) PermissionDTO {
	return PermissionDTO{
		ID:          perm.ID,
		Code:        perm.Code,
		GranteeType: perm.GranteeType,
		GranteeID:   perm.GranteeID,
	}
}

// ToPermissionDTOs converts a slice of permissions
func ToPermissionDTOs(perms []models.Permission) []PermissionDTO {
	dtos := make([]PermissionDTO, len(perms))
	for i, perm := range perms {
		dtos[i] = ToPermissionDTO(perm)
	}
	return dtos
}

package dto

import (
	"time"

	"github.com/yukikurage/org-management-api/internal/i18n"
	"github.com/yukikurage/org-management-api/internal/models"
)

// DepartmentDTO represents a department in API responses
type DepartmentDTO struct {
	ID             uint64                `json:"id"`
	OrganizationID uint64                `json:"organization_id"`
	Name           string                `json:"name"`
	Description    string                `json:"description,omitempty"`
	Translations   i18n.TranslatedString `json:"name_translations"`
	CreatedAt      time.Time             `json:"created_at"`
}

// ToDepartmentDTO converts a Department model to DepartmentDTO
func ToDepartmentDTO(dept models.Department, locale, defaultLocale string) DepartmentDTO {
	return DepartmentDTO{
		ID:             dept.ID,
		OrganizationID: dept.OrganizationID,
		Name:           dept.Name.Get(locale, defaultLocale),
		Description:    dept.Description.Get(locale, defaultLocale),
		Translations:   dept.Name,
		CreatedAt:      dept.CreatedAt,
	}
}

// ToDepartmentDTOs converts a slice of departments
func ToDepartmentDTOs(depts []models.Department, locale, defaultLocale string) []DepartmentDTO {
	dtos := make([]DepartmentDTO, len(depts))
	for i, dept := range depts {
		dtos[i] = ToDepartmentDTO(dept, locale, defaultLocale)
	}
	return dtos
}

// RoleDTO represents a role in API responses
type RoleDTO struct {
	ID             uint64                `json:"id"`
	OrganizationID uint64                `json:"organization_id"`
	DepartmentID   *uint64               `json:"department_id"`
	ParentID       *uint64               `json:"parent_id"`
	Active         bool                  `json:"active"`
	Name           string                `json:"name"`
	Description    string                `json:"description,omitempty"`
	Translations   i18n.TranslatedString `json:"name_translations"`
	CreatedAt      time.Time             `json:"created_at"`
}

// ToRoleDTO converts a Role model to RoleDTO
func ToRoleDTO(role models.Role, locale, defaultLocale string) RoleDTO {
	return RoleDTO{
		ID:             role.ID,
		OrganizationID: role.OrganizationID,
		DepartmentID:   role.DepartmentID,
		ParentID:       role.ParentID,
		Active:         role.Active,
		Name:           role.Name.Get(locale, defaultLocale),
		Description:    role.Description.Get(locale, defaultLocale),
		Translations:   role.Name,
		CreatedAt:      role.CreatedAt,
	}
}

// ToRoleDTOs converts a slice of roles
func ToRoleDTOs(roles []models.Role, locale, defaultLocale string) []RoleDTO {
	dtos := make([]RoleDTO, len(roles))
	for i, role := range roles {
		dtos[i] = ToRoleDTO(role, locale, defaultLocale)
	}
	return dtos
}

// GroupDTO represents a group in API responses
type GroupDTO struct {
	ID             uint64                `json:"id"`
	OrganizationID uint64                `json:"organization_id"`
	Name           string                `json:"name"`
	Description    string                `json:"description,omitempty"`
	Translations   i18n.TranslatedString `json:"name_translations"`
	CreatedAt      time.Time             `json:"created_at"`
}

// ToGroupDTO converts a Group model to GroupDTO
func ToGroupDTO(group models.Group, locale, defaultLocale string) GroupDTO {
	return GroupDTO{
		ID:             group.ID,
		OrganizationID: group.OrganizationID,
		Name:           group.Name.Get(locale, defaultLocale),
		Description:    group.Description.Get(locale, defaultLocale),
		Translations:   group.Name,
		CreatedAt:      group.CreatedAt,
	}
}

// ToGroupDTOs converts a slice of groups
func ToGroupDTOs(groups []models.Group, locale, defaultLocale string) []GroupDTO {
	dtos := make([]GroupDTO, len(groups))
	for i, group := range groups {
		dtos[i] = ToGroupDTO(group, locale, defaultLocale)
	}
	return dtos
}

// MemberDTO represents a member in API responses
type MemberDTO struct {
	ID             uint64              `json:"id"`
	OrganizationID uint64              `json:"organization_id"`
	UserID         *uint64             `json:"user_id"`
	Email          string              `json:"email"`
	Name           string              `json:"name"`
	Status         models.MemberStatus `json:"status"`
	CreatedAt      time.Time           `json:"created_at"`
}

// ToMemberDTO converts a Member model to MemberDTO
func ToMemberDTO(member models.Member, locale, defaultLocale string) MemberDTO {
	return MemberDTO{
		ID:             member.ID,
		OrganizationID: member.OrganizationID,
		UserID:         member.UserID,
		Email:          member.Email,
		Name:           member.Name.Get(locale, defaultLocale),
		Status:         member.Status,
		CreatedAt:      member.CreatedAt,
	}
}

// ToMemberDTOs converts a slice of members
func ToMemberDTOs(members []models.Member, locale, defaultLocale string) []MemberDTO {
	dtos := make([]MemberDTO, len(members))
	for i, member := range members {
		dtos[i] = ToMemberDTO(member, locale, defaultLocale)
	}
	return dtos
}

package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/org-management-api/internal/audit"
	"github.com/yukikurage/org-management-api/internal/hierarchy"
	"github.com/yukikurage/org-management-api/internal/i18n"
	"github.com/yukikurage/org-management-api/internal/models"
	"github.com/yukikurage/org-management-api/internal/repository"
	"github.com/yukikurage/org-management-api/internal/validation"
	"gorm.io/gorm"
)

var (
	ErrRoleNotFound = errors.New("role not found")
)

// RoleService provides business logic for roles. Roles form a tree scoped to
// one organization; role names are unique organization-wide per locale, not
// just among siblings.
type RoleService struct {
	roleRepo repository.RoleRepository
	deptRepo repository.DepartmentRepository
	orgRepo  repository.OrganizationRepository
	recorder audit.Recorder
}

// NewRoleService creates a new RoleService.
func NewRoleService(roleRepo repository.RoleRepository, deptRepo repository.DepartmentRepository, orgRepo repository.OrganizationRepository, recorder audit.Recorder) *RoleService {
	return &RoleService{
		roleRepo: roleRepo,
		deptRepo: deptRepo,
		orgRepo:  orgRepo,
		recorder: recorder,
	}
}

// CreateRoleInput represents parameters to create a new role.
type CreateRoleInput struct {
	OrganizationID uint64
	DepartmentID   *uint64
	ParentID       *uint64
	Name           i18n.TranslatedString
	Description    i18n.TranslatedString
	ActorID        *uint64
}

// Create validates and creates a new role. The owning organization is fixed
// at creation and never changes afterwards.
func (s *RoleService) Create(input CreateRoleInput) (*models.Role, error) {
	var verrs validation.Errors

	if _, err := s.orgRepo.FindByID(input.OrganizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			verrs.Add("organization", validation.CodeNotFound, "organization not found")
		} else {
			return nil, fmt.Errorf("failed to find organization: %w", err)
		}
	}

	if !input.Name.HasAnyTranslation() {
		verrs.Add("name", validation.CodeMissingTranslation, "name must have at least one translation")
	}

	if input.DepartmentID != nil {
		if err := s.checkDepartment(*input.DepartmentID, input.OrganizationID, &verrs); err != nil {
			return nil, err
		}
	}

	if input.ParentID != nil {
		if err := s.checkParentRole(*input.ParentID, input.OrganizationID, &verrs); err != nil {
			return nil, err
		}
	}

	if err := s.checkOrganizationNames(input.Name, input.OrganizationID, 0, &verrs); err != nil {
		return nil, err
	}

	if err := verrs.ErrOrNil(); err != nil {
		return nil, err
	}

	role := &models.Role{
		OrganizationID: input.OrganizationID,
		DepartmentID:   input.DepartmentID,
		ParentID:       input.ParentID,
		Active:         true,
		Name:           input.Name,
		Description:    input.Description,
	}
	if err := s.roleRepo.Create(role); err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	s.recorder.Record(audit.Entry{
		EntityType: "role",
		EntityID:   role.ID,
		Action:     audit.ActionCreate,
		Changes:    map[string]interface{}{"name": role.Name, "department_id": role.DepartmentID, "parent_id": role.ParentID},
		ActorID:    input.ActorID,
	})

	return role, nil
}

// UpdateRoleInput represents parameters to update a role. Nil fields are
// left unchanged; the Clear flags detach optional references.
type UpdateRoleInput struct {
	Name            i18n.TranslatedString
	Description     i18n.TranslatedString
	DepartmentID    *uint64
	ClearDepartment bool
	ParentID        *uint64
	ClearParent     bool
	Active          *bool
	ActorID         *uint64
}

// Update validates and applies changes to a role. A rejected update leaves
// the stored role untouched, including its parent link.
func (s *RoleService) Update(id uint64, input UpdateRoleInput) (*models.Role, error) {
	role, err := s.roleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}

	name := role.Name
	if input.Name != nil {
		name = input.Name
	}

	newDeptID := role.DepartmentID
	if input.ClearDepartment {
		newDeptID = nil
	} else if input.DepartmentID != nil {
		newDeptID = input.DepartmentID
	}

	newParentID := role.ParentID
	if input.ClearParent {
		newParentID = nil
	} else if input.ParentID != nil {
		newParentID = input.ParentID
	}

	var verrs validation.Errors

	if !name.HasAnyTranslation() {
		verrs.Add("name", validation.CodeMissingTranslation, "name must have at least one translation")
	}

	if newDeptID != nil && parentChanged(role.DepartmentID, newDeptID) {
		if err := s.checkDepartment(*newDeptID, role.OrganizationID, &verrs); err != nil {
			return nil, err
		}
	}

	if newParentID != nil && parentChanged(role.ParentID, newParentID) {
		if err := s.checkParentRole(*newParentID, role.OrganizationID, &verrs); err != nil {
			return nil, err
		}
		if !verrs.Has("parent") {
			if err := s.checkNoCycle(role, *newParentID, &verrs); err != nil {
				return nil, err
			}
		}
	}

	if err := s.checkOrganizationNames(name, role.OrganizationID, id, &verrs); err != nil {
		return nil, err
	}

	if err := verrs.ErrOrNil(); err != nil {
		return nil, err
	}

	role.Name = name
	if input.Description != nil {
		role.Description = input.Description
	}
	role.DepartmentID = newDeptID
	role.ParentID = newParentID
	if input.Active != nil {
		role.Active = *input.Active
	}

	if err := s.roleRepo.Update(role); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	s.recorder.Record(audit.Entry{
		EntityType: "role",
		EntityID:   role.ID,
		Action:     audit.ActionUpdate,
		Changes:    map[string]interface{}{"name": role.Name, "department_id": role.DepartmentID, "parent_id": role.ParentID, "active": role.Active},
		ActorID:    input.ActorID,
	})

	return role, nil
}

// Get retrieves a role by ID.
func (s *RoleService) Get(id uint64) (*models.Role, error) {
	role, err := s.roleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}
	return role, nil
}

// ListByOrganization returns the roles of an organization.
func (s *RoleService) ListByOrganization(organizationID uint64) ([]models.Role, error) {
	roles, err := s.roleRepo.ListByOrganization(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// Ancestors returns the chain from the role up to its root, the role itself
// first.
func (s *RoleService) Ancestors(id uint64) ([]models.Role, error) {
	role, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	byID, err := s.loadTree(role.OrganizationID)
	if err != nil {
		return nil, err
	}

	chain := hierarchy.Ancestors(id, roleParentFunc(byID))
	return resolveRoles(chain, byID), nil
}

// Descendants returns every role below the given one, each exactly once.
func (s *RoleService) Descendants(id uint64) ([]models.Role, error) {
	role, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	byID, err := s.loadTree(role.OrganizationID)
	if err != nil {
		return nil, err
	}

	children := map[uint64][]uint64{}
	for _, r := range byID {
		if r.ParentID != nil {
			children[*r.ParentID] = append(children[*r.ParentID], r.ID)
		}
	}

	ids := hierarchy.Descendants(id, func(node uint64) []uint64 {
		return children[node]
	})
	return resolveRoles(ids, byID), nil
}

func (s *RoleService) checkDepartment(deptID, organizationID uint64, verrs *validation.Errors) error {
	dept, err := s.deptRepo.FindByID(deptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			verrs.Add("department", validation.CodeNotFound, "department not found")
			return nil
		}
		return fmt.Errorf("failed to find department: %w", err)
	}
	if dept.OrganizationID != organizationID {
		verrs.Add("department", validation.CodeTenantMismatch, "department belongs to a different organization")
	}
	return nil
}

func (s *RoleService) checkParentRole(parentID, organizationID uint64, verrs *validation.Errors) error {
	parent, err := s.roleRepo.FindByID(parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			verrs.Add("parent", validation.CodeNotFound, "parent role not found")
			return nil
		}
		return fmt.Errorf("failed to find parent role: %w", err)
	}
	if parent.OrganizationID != organizationID {
		verrs.Add("parent", validation.CodeTenantMismatch, "parent role belongs to a different organization")
	}
	return nil
}

func (s *RoleService) checkNoCycle(role *models.Role, parentID uint64, verrs *validation.Errors) error {
	byID, err := s.loadTree(role.OrganizationID)
	if err != nil {
		return err
	}
	if err := hierarchy.ValidateNoCycle(role.ID, parentID, roleParentFunc(byID)); err != nil {
		verrs.Add("parent", validation.CodeCircularReference, "role cannot be its own ancestor")
	}
	return nil
}

// checkOrganizationNames enforces per-locale name uniqueness across every
// role of the organization.
func (s *RoleService) checkOrganizationNames(name i18n.TranslatedString, organizationID, selfID uint64, verrs *validation.Errors) error {
	if !name.HasAnyTranslation() {
		return nil
	}

	roles, err := s.roleRepo.ListByOrganization(organizationID)
	if err != nil {
		return fmt.Errorf("failed to list roles: %w", err)
	}

	names := make([]i18n.TranslatedString, 0, len(roles))
	for _, other := range roles {
		if other.ID == selfID {
			continue
		}
		names = append(names, other.Name)
	}

	for _, locale := range duplicateNameLocales(name, names) {
		verrs.Add("name", validation.CodeDuplicateName,
			fmt.Sprintf("name is already used by another role in this organization for locale %q", locale))
	}
	return nil
}

func (s *RoleService) loadTree(organizationID uint64) (map[uint64]models.Role, error) {
	roles, err := s.roleRepo.ListByOrganization(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load role tree: %w", err)
	}
	byID := make(map[uint64]models.Role, len(roles))
	for _, role := range roles {
		byID[role.ID] = role
	}
	return byID, nil
}

func roleParentFunc(byID map[uint64]models.Role) hierarchy.ParentFunc[uint64] {
	return func(node uint64) (uint64, bool) {
		role, ok := byID[node]
		if !ok || role.ParentID == nil {
			return 0, false
		}
		return *role.ParentID, true
	}
}

func resolveRoles(ids []uint64, byID map[uint64]models.Role) []models.Role {
	roles := make([]models.Role, 0, len(ids))
	for _, id := range ids {
		if role, ok := byID[id]; ok {
			roles = append(roles, role)
		}
	}
	return roles
}

package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/org-management-api/internal/audit"
	"github.com/yukikurage/org-management-api/internal/i18n"
	"github.com/yukikurage/org-management-api/internal/models"
	"github.com/yukikurage/org-management-api/internal/repository"
	"github.com/yukikurage/org-management-api/internal/validation"
	"gorm.io/gorm"
)

var (
	ErrDepartmentNotFound = errors.New("department not found")
)

// DepartmentService provides business logic for departments. Department
// names need at least one translation but, unlike roles and groups, are not
// required to be unique.
type DepartmentService struct {
	deptRepo repository.DepartmentRepository
	orgRepo  repository.OrganizationRepository
	recorder audit.Recorder
}

// NewDepartmentService creates a new DepartmentService.
func NewDepartmentService(deptRepo repository.DepartmentRepository, orgRepo repository.OrganizationRepository, recorder audit.Recorder) *DepartmentService {
	return &DepartmentService{
		deptRepo: deptRepo,
		orgRepo:  orgRepo,
		recorder: recorder,
	}
}

// CreateDepartmentInput represents parameters to create a new department.
type CreateDepartmentInput struct {
	OrganizationID uint64
	Name           i18n.TranslatedString
	Description    i18n.TranslatedString
	ActorID        *uint64
}

// Create validates and creates a new department.
func (s *DepartmentService) Create(input CreateDepartmentInput) (*models.Department, error) {
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

	if err := verrs.ErrOrNil(); err != nil {
		return nil, err
	}

	dept := &models.Department{
		OrganizationID: input.OrganizationID,
		Name:           input.Name,
		Description:    input.Description,
	}
	if err := s.deptRepo.Create(dept); err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}

	s.recorder.Record(audit.Entry{
		EntityType: "department",
		EntityID:   dept.ID,
		Action:     audit.ActionCreate,
		Changes:    map[string]interface{}{"name": dept.Name},
		ActorID:    input.ActorID,
	})

	return dept, nil
}

// UpdateDepartmentInput represents parameters to update a department. Nil
// translated fields are left unchanged.
type UpdateDepartmentInput struct {
	Name        i18n.TranslatedString
	Description i18n.TranslatedString
	ActorID     *uint64
}

// Update validates and applies changes to a department.
func (s *DepartmentService) Update(id uint64, input UpdateDepartmentInput) (*models.Department, error) {
	dept, err := s.deptRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to find department: %w", err)
	}

	name := dept.Name
	if input.Name != nil {
		name = input.Name
	}

	var verrs validation.Errors
	if !name.HasAnyTranslation() {
		verrs.Add("name", validation.CodeMissingTranslation, "name must have at least one translation")
	}
	if err := verrs.ErrOrNil(); err != nil {
		return nil, err
	}

	dept.Name = name
	if input.Description != nil {
		dept.Description = input.Description
	}

	if err := s.deptRepo.Update(dept); err != nil {
		return nil, fmt.Errorf("failed to update department: %w", err)
	}

	s.recorder.Record(audit.Entry{
		EntityType: "department",
		EntityID:   dept.ID,
		Action:     audit.ActionUpdate,
		Changes:    map[string]interface{}{"name": dept.Name},
		ActorID:    input.ActorID,
	})

	return dept, nil
}

// Get retrieves a department by ID.
func (s *DepartmentService) Get(id uint64) (*models.Department, error) {
	dept, err := s.deptRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to find department: %w", err)
	}
	return dept, nil
}

// ListByOrganization returns the departments of an organization.
func (s *DepartmentService) ListByOrganization(organizationID uint64) ([]models.Department, error) {
	depts, err := s.deptRepo.ListByOrganization(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return depts, nil
}

// Delete removes a department. Its roles survive with their department
// reference nullified.
func (s *DepartmentService) Delete(id uint64, actorID *uint64) error {
	if _, err := s.deptRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentNotFound
		}
		return fmt.Errorf("failed to find department: %w", err)
	}

	if err := s.deptRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}

	s.recorder.Record(audit.Entry{
		EntityType: "department",
		EntityID:   id,
		Action:     audit.ActionDelete,
		ActorID:    actorID,
	})

	return nil
}

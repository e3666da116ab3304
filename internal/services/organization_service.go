package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/org-management-api/internal/audit"
	"github.com/yukikurage/org-management-api/internal/hierarchy"
	"github.com/yukikurage/org-management-api/internal/i18n"
	"github.com/yukikurage/org-management-api/internal/models"
	"github.com/yukikurage/org-management-api/internal/repository"
	"github.com/yukikurage/org-management-api/internal/validation"
	"gorm.io/gorm"
)

var (
	ErrOrganizationNotFound = errors.New("organization not found")
)

// OrganizationService provides business logic for the organization tree.
// Organizations are the tenant roots; they are never hard-deleted, and the
// archived state is toggled by an external lifecycle, not here.
type OrganizationService struct {
	orgRepo    repository.OrganizationRepository
	memberRepo repository.MemberRepository
	recorder   audit.Recorder
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo repository.OrganizationRepository, memberRepo repository.MemberRepository, recorder audit.Recorder) *OrganizationService {
	return &OrganizationService{
		orgRepo:    orgRepo,
		memberRepo: memberRepo,
		recorder:   recorder,
	}
}

// CreateOrganizationInput represents parameters to create a new organization.
// When FounderUserID is set, the creator is enrolled as the organization's
// first member; without that row no one could pass the membership check the
// organization-scoped routes sit behind.
type CreateOrganizationInput struct {
	Name          i18n.TranslatedString
	Description   i18n.TranslatedString
	ParentID      *uint64
	FounderUserID *uint64
	FounderEmail  string
	FounderName   i18n.TranslatedString
	ActorID       *uint64
}

// Create validates and creates a new organization, enrolling the founder as
// its first member when FounderUserID is set. All violations are collected
// and returned together as a validation.Errors.
func (s *OrganizationService) Create(input CreateOrganizationInput) (*models.Organization, error) {
	var verrs validation.Errors

	if !input.Name.HasAnyTranslation() {
		verrs.Add("name", validation.CodeMissingTranslation, "name must have at least one translation")
	}

	founderEmail := strings.TrimSpace(input.FounderEmail)
	if input.FounderUserID != nil {
		if founderEmail == "" {
			verrs.Add("founder_email", validation.CodeRequired, "founder email is required")
		} else if !validation.IsValidEmail(founderEmail) {
			verrs.Add("founder_email", validation.CodeInvalidEmail, "founder email is not a valid address")
		}
	}

	if input.ParentID != nil {
		if _, err := s.orgRepo.FindByID(*input.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				verrs.Add("parent", validation.CodeNotFound, "parent organization not found")
			} else {
				return nil, fmt.Errorf("failed to find parent organization: %w", err)
			}
		}
	}

	if err := s.checkSiblingNames(input.Name, input.ParentID, 0, &verrs); err != nil {
		return nil, err
	}

	if err := verrs.ErrOrNil(); err != nil {
		return nil, err
	}

	org := &models.Organization{
		Name:        input.Name,
		Description: input.Description,
		ParentID:    input.ParentID,
	}
	if err := s.orgRepo.Create(org); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	s.recorder.Record(audit.Entry{
		EntityType: "organization",
		EntityID:   org.ID,
		Action:     audit.ActionCreate,
		Changes:    map[string]interface{}{"name": org.Name, "parent_id": org.ParentID},
		ActorID:    input.ActorID,
	})

	if input.FounderUserID != nil {
		founder := &models.Member{
			OrganizationID: org.ID,
			UserID:         input.FounderUserID,
			Email:          founderEmail,
			Name:           input.FounderName,
			Status:         models.MemberStatusActive,
		}
		if err := s.memberRepo.Create(founder); err != nil {
			return nil, fmt.Errorf("failed to enroll founding member: %w", err)
		}

		s.recorder.Record(audit.Entry{
			EntityType: "member",
			EntityID:   founder.ID,
			Action:     audit.ActionCreate,
			Changes:    map[string]interface{}{"email": founder.Email, "organization_id": org.ID},
			ActorID:    input.ActorID,
		})
	}

	return org, nil
}

// UpdateOrganizationInput represents parameters to update an organization.
// Nil translated fields are left unchanged; ClearParent detaches the
// organization from its parent.
type UpdateOrganizationInput struct {
	Name        i18n.TranslatedString
	Description i18n.TranslatedString
	ParentID    *uint64
	ClearParent bool
	ActorID     *uint64
}

// Update validates and applies changes to an organization. A rejected update
// leaves the stored organization untouched.
func (s *OrganizationService) Update(id uint64, input UpdateOrganizationInput) (*models.Organization, error) {
	org, err := s.orgRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	name := org.Name
	if input.Name != nil {
		name = input.Name
	}

	newParentID := org.ParentID
	if input.ClearParent {
		newParentID = nil
	} else if input.ParentID != nil {
		newParentID = input.ParentID
	}

	var verrs validation.Errors

	if !name.HasAnyTranslation() {
		verrs.Add("name", validation.CodeMissingTranslation, "name must have at least one translation")
	}

	if parentChanged(org.ParentID, newParentID) && newParentID != nil {
		if err := s.checkParentLink(id, *newParentID, &verrs); err != nil {
			return nil, err
		}
	}

	if err := s.checkSiblingNames(name, newParentID, id, &verrs); err != nil {
		return nil, err
	}

	if err := verrs.ErrOrNil(); err != nil {
		return nil, err
	}

	org.Name = name
	if input.Description != nil {
		org.Description = input.Description
	}
	org.ParentID = newParentID

	if err := s.orgRepo.Update(org); err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	s.recorder.Record(audit.Entry{
		EntityType: "organization",
		EntityID:   org.ID,
		Action:     audit.ActionUpdate,
		Changes:    map[string]interface{}{"name": org.Name, "parent_id": org.ParentID},
		ActorID:    input.ActorID,
	})

	return org, nil
}

// Get retrieves an organization by ID.
func (s *OrganizationService) Get(id uint64) (*models.Organization, error) {
	org, err := s.orgRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}
	return org, nil
}

// List returns every organization.
func (s *OrganizationService) List() ([]models.Organization, error) {
	orgs, err := s.orgRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

// Ancestors returns the chain from the organization up to its root, the
// organization itself first.
func (s *OrganizationService) Ancestors(id uint64) ([]models.Organization, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}

	byID, err := s.loadTree()
	if err != nil {
		return nil, err
	}

	chain := hierarchy.Ancestors(id, treeParentFunc(byID))
	return resolveOrganizations(chain, byID), nil
}

// Descendants returns every organization below the given one, each exactly
// once.
func (s *OrganizationService) Descendants(id uint64) ([]models.Organization, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}

	byID, err := s.loadTree()
	if err != nil {
		return nil, err
	}

	children := map[uint64][]uint64{}
	for _, org := range byID {
		if org.ParentID != nil {
			children[*org.ParentID] = append(children[*org.ParentID], org.ID)
		}
	}

	ids := hierarchy.Descendants(id, func(node uint64) []uint64 {
		return children[node]
	})
	return resolveOrganizations(ids, byID), nil
}

// checkParentLink validates that the proposed parent exists and would not
// make the organization its own ancestor.
func (s *OrganizationService) checkParentLink(id, parentID uint64, verrs *validation.Errors) error {
	if _, err := s.orgRepo.FindByID(parentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			verrs.Add("parent", validation.CodeNotFound, "parent organization not found")
			return nil
		}
		return fmt.Errorf("failed to find parent organization: %w", err)
	}

	byID, err := s.loadTree()
	if err != nil {
		return err
	}

	if err := hierarchy.ValidateNoCycle(id, parentID, treeParentFunc(byID)); err != nil {
		verrs.Add("parent", validation.CodeCircularReference, "organization cannot be its own ancestor")
	}
	return nil
}

// checkSiblingNames enforces per-locale name uniqueness among organizations
// sharing the same parent (or among all roots when there is no parent).
// Uniqueness is sibling-scoped only: the same name may recur under a
// different parent.
func (s *OrganizationService) checkSiblingNames(name i18n.TranslatedString, parentID *uint64, selfID uint64, verrs *validation.Errors) error {
	if !name.HasAnyTranslation() {
		return nil
	}

	siblings, err := s.orgRepo.ListByParent(parentID)
	if err != nil {
		return fmt.Errorf("failed to list sibling organizations: %w", err)
	}

	names := make([]i18n.TranslatedString, 0, len(siblings))
	for _, sibling := range siblings {
		if sibling.ID == selfID {
			continue
		}
		names = append(names, sibling.Name)
	}

	for _, locale := range duplicateNameLocales(name, names) {
		verrs.Add("name", validation.CodeDuplicateName,
			fmt.Sprintf("name is already used by a sibling organization for locale %q", locale))
	}
	return nil
}

func (s *OrganizationService) loadTree() (map[uint64]models.Organization, error) {
	orgs, err := s.orgRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load organization tree: %w", err)
	}
	byID := make(map[uint64]models.Organization, len(orgs))
	for _, org := range orgs {
		byID[org.ID] = org
	}
	return byID, nil
}

func treeParentFunc(byID map[uint64]models.Organization) hierarchy.ParentFunc[uint64] {
	return func(node uint64) (uint64, bool) {
		org, ok := byID[node]
		if !ok || org.ParentID == nil {
			return 0, false
		}
		return *org.ParentID, true
	}
}

func resolveOrganizations(ids []uint64, byID map[uint64]models.Organization) []models.Organization {
	orgs := make([]models.Organization, 0, len(ids))
	for _, id := range ids {
		if org, ok := byID[id]; ok {
			orgs = append(orgs, org)
		}
	}
	return orgs
}

func parentChanged(current, proposed *uint64) bool {
	if current == nil && proposed == nil {
		return false
	}
	if current == nil || proposed == nil {
		return true
	}
	return *current != *proposed
}

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
	ErrGroupNotFound = errors.New("group not found")
)

// GroupService provides business logic for groups and group membership.
type GroupService struct {
	groupRepo  repository.GroupRepository
	memberRepo repository.MemberRepository
	orgRepo    repository.OrganizationRepository
	recorder   audit.Recorder
}

// NewGroupService creates a new GroupService.
func NewGroupService(groupRepo repository.GroupRepository, memberRepo repository.MemberRepository, orgRepo repository.OrganizationRepository, recorder audit.Recorder) *GroupService {
	return &GroupService{
		groupRepo:  groupRepo,
		memberRepo: memberRepo,
		orgRepo:    orgRepo,
		recorder:   recorder,
	}
}

// CreateGroupInput represents parameters to create a new group.
type CreateGroupInput struct {
	OrganizationID uint64
	Name           i18n.TranslatedString
	Description    i18n.TranslatedString
	ActorID        *uint64
}

// Create validates and creates a new group. Group names are unique
// organization-wide per locale.
func (s *GroupService) Create(input CreateGroupInput) (*models.Group, error) {
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

	if err := s.checkOrganizationNames(input.Name, input.OrganizationID, 0, &verrs); err != nil {
		return nil, err
	}

	if err := verrs.ErrOrNil(); err != nil {
		return nil, err
	}

	group := &models.Group{
		OrganizationID: input.OrganizationID,
		Name:           input.Name,
		Description:    input.Description,
	}
	if err := s.groupRepo.Create(group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	s.recorder.Record(audit.Entry{
		EntityType: "group",
		EntityID:   group.ID,
		Action:     audit.ActionCreate,
		Changes:    map[string]interface{}{"name": group.Name},
		ActorID:    input.ActorID,
	})

	return group, nil
}

// UpdateGroupInput represents parameters to update a group.
type UpdateGroupInput struct {
	Name        i18n.TranslatedString
	Description i18n.TranslatedString
	ActorID     *uint64
}

// Update validates and applies changes to a group.
func (s *GroupService) Update(id uint64, input UpdateGroupInput) (*models.Group, error) {
	group, err := s.groupRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to find group: %w", err)
	}

	name := group.Name
	if input.Name != nil {
		name = input.Name
	}

	var verrs validation.Errors
	if !name.HasAnyTranslation() {
		verrs.Add("name", validation.CodeMissingTranslation, "name must have at least one translation")
	}
	if err := s.checkOrganizationNames(name, group.OrganizationID, id, &verrs); err != nil {
		return nil, err
	}
	if err := verrs.ErrOrNil(); err != nil {
		return nil, err
	}

	group.Name = name
	if input.Description != nil {
		group.Description = input.Description
	}

	if err := s.groupRepo.Update(group); err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	s.recorder.Record(audit.Entry{
		EntityType: "group",
		EntityID:   group.ID,
		Action:     audit.ActionUpdate,
		Changes:    map[string]interface{}{"name": group.Name},
		ActorID:    input.ActorID,
	})

	return group, nil
}

// Get retrieves a group by ID.
func (s *GroupService) Get(id uint64) (*models.Group, error) {
	group, err := s.groupRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to find group: %w", err)
	}
	return group, nil
}

// ListByOrganization returns the groups of an organization.
func (s *GroupService) ListByOrganization(organizationID uint64) ([]models.Group, error) {
	groups, err := s.groupRepo.ListByOrganization(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// Delete removes a group and its memberships.
func (s *GroupService) Delete(id uint64, actorID *uint64) error {
	if _, err := s.groupRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("failed to find group: %w", err)
	}

	if err := s.groupRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	s.recorder.Record(audit.Entry{
		EntityType: "group",
		EntityID:   id,
		Action:     audit.ActionDelete,
		ActorID:    actorID,
	})

	return nil
}

// AddMember adds a member to a group. The member must belong to the group's
// organization.
func (s *GroupService) AddMember(groupID, memberID uint64, actorID *uint64) error {
	group, err := s.Get(groupID)
	if err != nil {
		return err
	}

	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find member: %w", err)
	}

	if member.OrganizationID != group.OrganizationID {
		return ErrTenantMismatch
	}

	if err := s.groupRepo.AddMember(groupID, memberID); err != nil {
		return fmt.Errorf("failed to add member to group: %w", err)
	}

	s.recorder.Record(audit.Entry{
		EntityType: "group",
		EntityID:   groupID,
		Action:     audit.ActionUpdate,
		Changes:    map[string]interface{}{"member_added": memberID},
		ActorID:    actorID,
	})

	return nil
}

// RemoveMember removes a member from a group.
func (s *GroupService) RemoveMember(groupID, memberID uint64, actorID *uint64) error {
	if _, err := s.Get(groupID); err != nil {
		return err
	}

	if err := s.groupRepo.RemoveMember(groupID, memberID); err != nil {
		return fmt.Errorf("failed to remove member from group: %w", err)
	}

	s.recorder.Record(audit.Entry{
		EntityType: "group",
		EntityID:   groupID,
		Action:     audit.ActionUpdate,
		Changes:    map[string]interface{}{"member_removed": memberID},
		ActorID:    actorID,
	})

	return nil
}

// ListMembers returns the members of a group.
func (s *GroupService) ListMembers(groupID uint64) ([]models.Member, error) {
	if _, err := s.Get(groupID); err != nil {
		return nil, err
	}
	members, err := s.groupRepo.ListMembers(groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	return members, nil
}

// checkOrganizationNames enforces per-locale name uniqueness across every
// group of the organization.
func (s *GroupService) checkOrganizationNames(name i18n.TranslatedString, organizationID, selfID uint64, verrs *validation.Errors) error {
	if !name.HasAnyTranslation() {
		return nil
	}

	groups, err := s.groupRepo.ListByOrganization(organizationID)
	if err != nil {
		return fmt.Errorf("failed to list groups: %w", err)
	}

	names := make([]i18n.TranslatedString, 0, len(groups))
	for _, other := range groups {
		if other.ID == selfID {
			continue
		}
		names = append(names, other.Name)
	}

	for _, locale := range duplicateNameLocales(name, names) {
		verrs.Add("name", validation.CodeDuplicateName,
			fmt.Sprintf("name is already used by another group in this organization for locale %q", locale))
	}
	return nil
}

package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/org-management-api/internal/audit"
	"github.com/yukikurage/org-management-api/internal/i18n"
	"github.com/yukikurage/org-management-api/internal/models"
	"github.com/yukikurage/org-management-api/internal/repository"
	"github.com/yukikurage/org-management-api/internal/utils"
	"github.com/yukikurage/org-management-api/internal/validation"
	"gorm.io/gorm"
)

var (
	ErrMemberNotFound = errors.New("member not found")
)

// MemberService provides business logic for members.
type MemberService struct {
	memberRepo repository.MemberRepository
	orgRepo    repository.OrganizationRepository
	groupRepo  repository.GroupRepository
	assignRepo repository.AssignmentRepository
	roleRepo   repository.RoleRepository
	deptRepo   repository.DepartmentRepository
	recorder   audit.Recorder
}

// NewMemberService creates a new MemberService.
func NewMemberService(
	memberRepo repository.MemberRepository,
	orgRepo repository.OrganizationRepository,
	groupRepo repository.GroupRepository,
	assignRepo repository.AssignmentRepository,
	roleRepo repository.RoleRepository,
	deptRepo repository.DepartmentRepository,
	recorder audit.Recorder,
) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		orgRepo:    orgRepo,
		groupRepo:  groupRepo,
		assignRepo: assignRepo,
		roleRepo:   roleRepo,
		deptRepo:   deptRepo,
		recorder:   recorder,
	}
}

// CreateMemberInput represents parameters to create a new member.
type CreateMemberInput struct {
	OrganizationID uint64
	Email          string
	Name           i18n.TranslatedString
	UserID         *uint64
	ActorID        *uint64
}

// Create validates and creates a new member.
func (s *MemberService) Create(input CreateMemberInput) (*models.Member, error) {
	var verrs validation.Errors

	if _, err := s.orgRepo.FindByID(input.OrganizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			verrs.Add("organization", validation.CodeNotFound, "organization not found")
		} else {
			return nil, fmt.Errorf("failed to find organization: %w", err)
		}
	}

	email := strings.TrimSpace(input.Email)
	if err := s.checkEmail(email, input.OrganizationID, 0, &verrs); err != nil {
		return nil, err
	}

	if err := verrs.ErrOrNil(); err != nil {
		return nil, err
	}

	member := &models.Member{
		OrganizationID: input.OrganizationID,
		Email:          email,
		Name:           input.Name,
		UserID:         input.UserID,
		Status:         models.MemberStatusActive,
	}
	if err := s.memberRepo.Create(member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	s.recorder.Record(audit.Entry{
		EntityType: "member",
		EntityID:   member.ID,
		Action:     audit.ActionCreate,
		Changes:    map[string]interface{}{"email": member.Email},
		ActorID:    input.ActorID,
	})

	return member, nil
}

// UpdateMemberInput represents parameters to update a member. Nil fields are
// left unchanged.
type UpdateMemberInput struct {
	Email   *string
	Name    i18n.TranslatedString
	Status  *models.MemberStatus
	ActorID *uint64
}

// Update validates and applies changes to a member. The owning organization
// never changes.
func (s *MemberService) Update(id uint64, input UpdateMemberInput) (*models.Member, error) {
	member, err := s.memberRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	email := member.Email
	if input.Email != nil {
		email = strings.TrimSpace(*input.Email)
	}

	var verrs validation.Errors
	if err := s.checkEmail(email, member.OrganizationID, id, &verrs); err != nil {
		return nil, err
	}
	if err := verrs.ErrOrNil(); err != nil {
		return nil, err
	}

	member.Email = email
	if input.Name != nil {
		member.Name = input.Name
	}
	if input.Status != nil {
		member.Status = *input.Status
	}

	if err := s.memberRepo.Update(member); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	s.recorder.Record(audit.Entry{
		EntityType: "member",
		EntityID:   member.ID,
		Action:     audit.ActionUpdate,
		Changes:    map[string]interface{}{"email": member.Email, "status": member.Status},
		ActorID:    input.ActorID,
	})

	return member, nil
}

// Get retrieves a member by ID.
func (s *MemberService) Get(id uint64) (*models.Member, error) {
	member, err := s.memberRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	return member, nil
}

// ListByOrganization returns one page of an organization's members along
// with the total member count.
func (s *MemberService) ListByOrganization(organizationID uint64, params utils.PaginationParams) ([]models.Member, int64, error) {
	members, total, err := s.memberRepo.ListByOrganization(organizationID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list members: %w", err)
	}
	return members, total, nil
}

// Groups returns the groups the member belongs to.
func (s *MemberService) Groups(id uint64) ([]models.Group, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	groups, err := s.groupRepo.ListGroupsForMember(id)
	if err != nil {
		return nil, fmt.Errorf("failed to list member groups: %w", err)
	}
	return groups, nil
}

// Departments returns the departments of the member's currently assigned
// roles. The relation is derived: it changes as assignments open and close.
func (s *MemberService) Departments(id uint64) ([]models.Department, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}

	assignments, err := s.assignRepo.ListActiveByAssignee(id)
	if err != nil {
		return nil, fmt.Errorf("failed to list active assignments: %w", err)
	}

	roleIDs := make([]uint64, 0, len(assignments))
	for _, a := range assignments {
		roleIDs = append(roleIDs, a.RoleID)
	}
	roles, err := s.roleRepo.FindByIDs(roleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load assigned roles: %w", err)
	}

	seen := map[uint64]bool{}
	var depts []models.Department
	for _, role := range roles {
		if role.DepartmentID == nil || seen[*role.DepartmentID] {
			continue
		}
		seen[*role.DepartmentID] = true
		dept, err := s.deptRepo.FindByID(*role.DepartmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to load department: %w", err)
		}
		depts = append(depts, *dept)
	}
	return depts, nil
}

// checkEmail validates presence, shape, and per-organization uniqueness.
func (s *MemberService) checkEmail(email string, organizationID, selfID uint64, verrs *validation.Errors) error {
	if email == "" {
		verrs.Add("email", validation.CodeRequired, "email is required")
		return nil
	}
	if !validation.IsValidEmail(email) {
		verrs.Add("email", validation.CodeInvalidEmail, "email is not a valid address")
		return nil
	}

	existing, err := s.memberRepo.FindByEmail(organizationID, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if existing.ID != selfID {
		verrs.Add("email", validation.CodeDuplicateEmail, "email is already used by another member of this organization")
	}
	return nil
}

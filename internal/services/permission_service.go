package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/yukikurage/org-management-api/internal/audit"
	"github.com/yukikurage/org-management-api/internal/models"
	"github.com/yukikurage/org-management-api/internal/repository"
	"github.com/yukikurage/org-management-api/internal/validation"
	"gorm.io/gorm"
)

var (
	ErrPermissionNotFound = errors.New("permission not found")
)

// PermissionService manages permission grants and computes a member's
// effective permission set.
type PermissionService struct {
	permRepo   repository.PermissionRepository
	memberRepo repository.MemberRepository
	roleRepo   repository.RoleRepository
	groupRepo  repository.GroupRepository
	deptRepo   repository.DepartmentRepository
	assignRepo repository.AssignmentRepository
	recorder   audit.Recorder
}

// NewPermissionService creates a new PermissionService.
func NewPermissionService(
	permRepo repository.PermissionRepository,
	memberRepo repository.MemberRepository,
	roleRepo repository.RoleRepository,
	groupRepo repository.GroupRepository,
	deptRepo repository.DepartmentRepository,
	assignRepo repository.AssignmentRepository,
	recorder audit.Recorder,
) *PermissionService {
	return &PermissionService{
		permRepo:   permRepo,
		memberRepo: memberRepo,
		roleRepo:   roleRepo,
		groupRepo:  groupRepo,
		deptRepo:   deptRepo,
		assignRepo: assignRepo,
		recorder:   recorder,
	}
}

// GrantInput represents parameters to grant a permission code to a grantee.
type GrantInput struct {
	OrganizationID uint64
	GranteeType    models.GranteeType
	GranteeID      uint64
	Code           string
	ActorID        *uint64
}

// Grant attaches a permission code to a grantee. The grantee must exist,
// belong to the same organization, and not already hold the code.
func (s *PermissionService) Grant(input GrantInput) (*models.Permission, error) {
	var verrs validation.Errors

	code := strings.TrimSpace(input.Code)
	if code == "" {
		verrs.Add("code", validation.CodeRequired, "permission code is required")
	}

	if !input.GranteeType.Valid() {
		verrs.Add("grantee", validation.CodeNotFound, "unknown grantee kind")
	} else {
		granteeOrg, err := s.granteeOrganization(input.GranteeType, input.GranteeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				verrs.Add("grantee", validation.CodeNotFound, "grantee not found")
			} else {
				return nil, err
			}
		} else if granteeOrg != input.OrganizationID {
			verrs.Add("grantee", validation.CodeTenantMismatch, "grantee belongs to a different organization")
		}
	}

	if code != "" && !verrs.Has("grantee") {
		if _, err := s.permRepo.FindByGranteeAndCode(input.GranteeType, input.GranteeID, code); err == nil {
			verrs.Add("code", validation.CodeDuplicatePermission, "grantee already holds this permission code")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check existing grant: %w", err)
		}
	}

	if err := verrs.ErrOrNil(); err != nil {
		return nil, err
	}

	perm := &models.Permission{
		OrganizationID: input.OrganizationID,
		Code:           code,
		GranteeType:    input.GranteeType,
		GranteeID:      input.GranteeID,
	}
	if err := s.permRepo.Create(perm); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			verrs.Add("code", validation.CodeDuplicatePermission, "grantee already holds this permission code")
			return nil, verrs
		}
		return nil, fmt.Errorf("failed to create permission: %w", err)
	}

	s.recorder.Record(audit.Entry{
		EntityType: "permission",
		EntityID:   perm.ID,
		Action:     audit.ActionGrant,
		Changes:    map[string]interface{}{"code": perm.Code, "grantee_type": perm.GranteeType, "grantee_id": perm.GranteeID},
		ActorID:    input.ActorID,
	})

	return perm, nil
}

// Revoke removes a permission code from a grantee.
func (s *PermissionService) Revoke(granteeType models.GranteeType, granteeID uint64, code string, actorID *uint64) error {
	perm, err := s.permRepo.FindByGranteeAndCode(granteeType, granteeID, strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPermissionNotFound
		}
		return fmt.Errorf("failed to find permission: %w", err)
	}

	if err := s.permRepo.Delete(perm.ID); err != nil {
		return fmt.Errorf("failed to delete permission: %w", err)
	}

	s.recorder.Record(audit.Entry{
		EntityType: "permission",
		EntityID:   perm.ID,
		Action:     audit.ActionRevoke,
		Changes:    map[string]interface{}{"code": perm.Code, "grantee_type": perm.GranteeType, "grantee_id": perm.GranteeID},
		ActorID:    actorID,
	})

	return nil
}

// ListForGrantee returns the grants held directly by one grantee.
func (s *PermissionService) ListForGrantee(granteeType models.GranteeType, granteeID uint64) ([]models.Permission, error) {
	perms, err := s.permRepo.ListByGrantee(granteeType, granteeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return perms, nil
}

// EffectivePermissions computes the member's effective permission set: the
// union of grants reachable through four paths — held directly, via a role
// the member currently holds, via a group the member belongs to, and via a
// department of a currently held role. Historical assignments contribute
// nothing. The result is deduplicated by code (holding a capability through
// two paths changes nothing about authorization) and sorted by code. This is
// a pure read.
func (s *PermissionService) EffectivePermissions(memberID uint64) ([]models.Permission, error) {
	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	direct, err := s.permRepo.ListByGrantee(models.GranteeMember, member.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load direct permissions: %w", err)
	}

	assignments, err := s.assignRepo.ListActiveByAssignee(member.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load active assignments: %w", err)
	}
	roleIDs := make([]uint64, 0, len(assignments))
	for _, a := range assignments {
		roleIDs = append(roleIDs, a.RoleID)
	}

	rolePerms, err := s.permRepo.ListByGrantees(models.GranteeRole, roleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load role permissions: %w", err)
	}

	groups, err := s.groupRepo.ListGroupsForMember(member.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load member groups: %w", err)
	}
	groupIDs := make([]uint64, 0, len(groups))
	for _, g := range groups {
		groupIDs = append(groupIDs, g.ID)
	}
	groupPerms, err := s.permRepo.ListByGrantees(models.GranteeGroup, groupIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load group permissions: %w", err)
	}

	roles, err := s.roleRepo.FindByIDs(roleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load assigned roles: %w", err)
	}
	deptSeen := map[uint64]bool{}
	deptIDs := make([]uint64, 0, len(roles))
	for _, role := range roles {
		if role.DepartmentID != nil && !deptSeen[*role.DepartmentID] {
			deptSeen[*role.DepartmentID] = true
			deptIDs = append(deptIDs, *role.DepartmentID)
		}
	}
	deptPerms, err := s.permRepo.ListByGrantees(models.GranteeDepartment, deptIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load department permissions: %w", err)
	}

	// Union by code. The first grant found for a code wins; which record
	// carries the code is irrelevant to authorization.
	byCode := map[string]models.Permission{}
	for _, batch := range [][]models.Permission{direct, rolePerms, groupPerms, deptPerms} {
		for _, perm := range batch {
			if _, ok := byCode[perm.Code]; !ok {
				byCode[perm.Code] = perm
			}
		}
	}

	effective := make([]models.Permission, 0, len(byCode))
	for _, perm := range byCode {
		effective = append(effective, perm)
	}
	sort.Slice(effective, func(i, j int) bool {
		return effective[i].Code < effective[j].Code
	})
	return effective, nil
}

// EffectiveCodes returns the effective permission set as bare codes.
func (s *PermissionService) EffectiveCodes(memberID uint64) ([]string, error) {
	perms, err := s.EffectivePermissions(memberID)
	if err != nil {
		return nil, err
	}
	codes := make([]string, len(perms))
	for i, perm := range perms {
		codes[i] = perm.Code
	}
	return codes, nil
}

// HasPermission reports whether the member's effective permission set
// contains the code.
func (s *PermissionService) HasPermission(memberID uint64, code string) (bool, error) {
	codes, err := s.EffectiveCodes(memberID)
	if err != nil {
		return false, err
	}
	for _, c := range codes {
		if c == code {
			return true, nil
		}
	}
	return false, nil
}

// granteeOrganization resolves the owning organization of a grantee through
// a lookup per kind. The grantee kinds form a closed set.
func (s *PermissionService) granteeOrganization(granteeType models.GranteeType, granteeID uint64) (uint64, error) {
	switch granteeType {
	case models.GranteeMember:
		member, err := s.memberRepo.FindByID(granteeID)
		if err != nil {
			return 0, err
		}
		return member.OrganizationID, nil
	case models.GranteeRole:
		role, err := s.roleRepo.FindByID(granteeID)
		if err != nil {
			return 0, err
		}
		return role.OrganizationID, nil
	case models.GranteeGroup:
		group, err := s.groupRepo.FindByID(granteeID)
		if err != nil {
			return 0, err
		}
		return group.OrganizationID, nil
	case models.GranteeDepartment:
		dept, err := s.deptRepo.FindByID(granteeID)
		if err != nil {
			return 0, err
		}
		return dept.OrganizationID, nil
	default:
		return 0, fmt.Errorf("unknown grantee type %q", granteeType)
	}
}

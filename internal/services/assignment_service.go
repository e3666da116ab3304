package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/org-management-api/internal/audit"
	"github.com/yukikurage/org-management-api/internal/models"
	"github.com/yukikurage/org-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	// ErrTenantMismatch is returned when an operation would link entities
	// owned by different organizations.
	ErrTenantMismatch = errors.New("entities belong to different organizations")

	// ErrConcurrencyConflict is returned when the close-then-open assignment
	// sequence lost its race twice. The caller may retry the whole request.
	ErrConcurrencyConflict = errors.New("concurrent assignment conflict")
)

// AssignmentService drives the temporal role-assignment lifecycle. A role
// has at most one active assignee; assigning closes whatever was active and
// opens a new row, and closed rows are kept forever as the assignment
// history.
type AssignmentService struct {
	assignRepo repository.AssignmentRepository
	roleRepo   repository.RoleRepository
	memberRepo repository.MemberRepository
	recorder   audit.Recorder
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(assignRepo repository.AssignmentRepository, roleRepo repository.RoleRepository, memberRepo repository.MemberRepository, recorder audit.Recorder) *AssignmentService {
	return &AssignmentService{
		assignRepo: assignRepo,
		roleRepo:   roleRepo,
		memberRepo: memberRepo,
		recorder:   recorder,
	}
}

// Assign gives the role to the member, closing any currently active
// assignment of the role first. Re-assigning the incumbent closes the old
// row and opens a fresh one, so the start date advances; this is observable
// in the history, not a no-op. Cross-organization assignment fails with
// ErrTenantMismatch and writes nothing.
func (s *AssignmentService) Assign(roleID, memberID uint64, actorID *uint64) (*models.RoleAssignment, error) {
	role, err := s.roleRepo.FindByID(roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}

	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	if role.OrganizationID != member.OrganizationID {
		return nil, ErrTenantMismatch
	}

	assignment, err := s.assignRepo.Assign(role.ID, member.ID, role.OrganizationID)
	if errors.Is(err, repository.ErrAssignmentConflict) {
		// Lost the race: the competing assignment is now the active one.
		// Retry once so ours closes it; surface the conflict if we lose
		// again.
		assignment, err = s.assignRepo.Assign(role.ID, member.ID, role.OrganizationID)
		if errors.Is(err, repository.ErrAssignmentConflict) {
			return nil, ErrConcurrencyConflict
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}

	s.recorder.Record(audit.Entry{
		EntityType: "role_assignment",
		EntityID:   assignment.ID,
		Action:     audit.ActionAssign,
		Changes:    map[string]interface{}{"role_id": roleID, "assignee_id": memberID},
		ActorID:    actorID,
	})

	return assignment, nil
}

// Unassign closes every active assignment of the role. It is a no-op when
// none is active.
func (s *AssignmentService) Unassign(roleID uint64, actorID *uint64) error {
	if _, err := s.roleRepo.FindByID(roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotFound
		}
		return fmt.Errorf("failed to find role: %w", err)
	}

	closed, err := s.assignRepo.CloseActive(roleID)
	if err != nil {
		return fmt.Errorf("failed to unassign role: %w", err)
	}

	if closed > 0 {
		s.recorder.Record(audit.Entry{
			EntityType: "role_assignment",
			EntityID:   roleID,
			Action:     audit.ActionUnassign,
			Changes:    map[string]interface{}{"role_id": roleID, "closed": closed},
			ActorID:    actorID,
		})
	}

	return nil
}

// ActiveAssignee returns the member currently holding the role, or nil when
// the role is unassigned.
func (s *AssignmentService) ActiveAssignee(roleID uint64) (*models.Member, error) {
	if _, err := s.roleRepo.FindByID(roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}

	actives, err := s.assignRepo.FindActiveByRole(roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find active assignment: %w", err)
	}
	if len(actives) == 0 {
		return nil, nil
	}

	member, err := s.memberRepo.FindByID(actives[0].AssigneeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignee: %w", err)
	}
	return member, nil
}

// History returns every assignment of the role, active and closed, newest
// first.
func (s *AssignmentService) History(roleID uint64) ([]models.RoleAssignment, error) {
	if _, err := s.roleRepo.FindByID(roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}

	assignments, err := s.assignRepo.ListByRole(roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

// ListForMember returns a member's assignments, active ones only or the
// closed history.
func (s *AssignmentService) ListForMember(memberID uint64, activeOnly bool) ([]models.RoleAssignment, error) {
	if _, err := s.memberRepo.FindByID(memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	var (
		assignments []models.RoleAssignment
		err         error
	)
	if activeOnly {
		assignments, err = s.assignRepo.ListActiveByAssignee(memberID)
	} else {
		assignments, err = s.assignRepo.ListHistoricalByAssignee(memberID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

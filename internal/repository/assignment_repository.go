package repository

import (
	"errors"
	"time"

	"github.com/yukikurage/org-management-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAssignmentConflict is returned when a concurrent assign wins the race on
// the single-active-assignment constraint. The caller may retry.
var ErrAssignmentConflict = errors.New("assignment repository: concurrent assignment conflict")

// GormAssignmentRepository is a GORM implementation of AssignmentRepository
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Assign closes every active assignment of the role and opens a new one for
// the assignee, all within a single transaction. The close and the create
// must not be separable: two concurrent assigns on the same role would
// otherwise leave two active rows.
func (r *GormAssignmentRepository) Assign(roleID, assigneeID, organizationID uint64) (*models.RoleAssignment, error) {
	var created models.RoleAssignment

	err := r.db.Transaction(func(tx *gorm.DB) error {
		// Row-level lock on the role serializes concurrent assigns where
		// the dialect supports it; sqlite serializes writers on its own.
		locked := tx
		if tx.Dialector.Name() != "sqlite" {
			locked = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var role models.Role
		if err := locked.First(&role, roleID).Error; err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&models.RoleAssignment{}).
			Where("role_id = ? AND finish_date IS NULL", roleID).
			Update("finish_date", now).Error; err != nil {
			return err
		}

		created = models.RoleAssignment{
			RoleID:         roleID,
			AssigneeType:   models.AssigneeMember,
			AssigneeID:     assigneeID,
			OrganizationID: organizationID,
			StartDate:      now,
		}
		if err := tx.Create(&created).Error; err != nil {
			// The partial unique index on active assignments turns a lost
			// race into a duplicate-key error.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAssignmentConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// CloseActive closes every active assignment of the role
func (r *GormAssignmentRepository) CloseActive(roleID uint64) (int64, error) {
	result := r.db.Model(&models.RoleAssignment{}).
		Where("role_id = ? AND finish_date IS NULL", roleID).
		Update("finish_date", time.Now())
	return result.RowsAffected, result.Error
}

// FindActiveByRole finds the active assignments of a role
func (r *GormAssignmentRepository) FindActiveByRole(roleID uint64) ([]models.RoleAssignment, error) {
	var assignments []models.RoleAssignment
	if err := r.db.Where("role_id = ? AND finish_date IS NULL", roleID).
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListByRole lists every assignment of a role, newest first
func (r *GormAssignmentRepository) ListByRole(roleID uint64) ([]models.RoleAssignment, error) {
	var assignments []models.RoleAssignment
	if err := r.db.Where("role_id = ?", roleID).
		Order("start_date DESC, id DESC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListActiveByAssignee lists a member's currently active assignments
func (r *GormAssignmentRepository) ListActiveByAssignee(assigneeID uint64) ([]models.RoleAssignment, error) {
	var assignments []models.RoleAssignment
	if err := r.db.Where("assignee_type = ? AND assignee_id = ? AND finish_date IS NULL",
		models.AssigneeMember, assigneeID).
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListHistoricalByAssignee lists a member's closed assignments
func (r *GormAssignmentRepository) ListHistoricalByAssignee(assigneeID uint64) ([]models.RoleAssignment, error) {
	var assignments []models.RoleAssignment
	if err := r.db.Where("assignee_type = ? AND assignee_id = ? AND finish_date IS NOT NULL",
		models.AssigneeMember, assigneeID).
		Order("start_date DESC, id DESC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

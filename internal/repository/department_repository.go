package repository

import (
	"github.com/yukikurage/org-management-api/internal/models"
	"gorm.io/gorm"
)

// GormDepartmentRepository is a GORM implementation of DepartmentRepository
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new DepartmentRepository
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

// Create creates a new department
func (r *GormDepartmentRepository) Create(dept *models.Department) error {
	return r.db.Create(dept).Error
}

// FindByID finds a department by ID
func (r *GormDepartmentRepository) FindByID(id uint64) (*models.Department, error) {
	var dept models.Department
	if err := r.db.First(&dept, id).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

// Update updates a department
func (r *GormDepartmentRepository) Update(dept *models.Department) error {
	return r.db.Save(dept).Error
}

// Delete removes a department. Roles keep existing with their department
// reference nullified; they are not cascade-deleted.
func (r *GormDepartmentRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Role{}).
			Where("department_id = ?", id).
			Update("department_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Department{}, id).Error
	})
}

// ListByOrganization lists the departments of an organization
func (r *GormDepartmentRepository) ListByOrganization(organizationID uint64) ([]models.Department, error) {
	var depts []models.Department
	if err := r.db.Where("organization_id = ?", organizationID).Find(&depts).Error; err != nil {
		return nil, err
	}
	return depts, nil
}

package repository

import (
	"github.com/yukikurage/org-management-api/internal/models"
	"gorm.io/gorm"
)

// GormRoleRepository is a GORM implementation of RoleRepository
type GormRoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &GormRoleRepository{db: db}
}

// Create creates a new role
func (r *GormRoleRepository) Create(role *models.Role) error {
	return r.db.Create(role).Error
}

// FindByID finds a role by ID
func (r *GormRoleRepository) FindByID(id uint64) (*models.Role, error) {
	var role models.Role
	if err := r.db.First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// FindByIDs finds the roles with the given IDs
func (r *GormRoleRepository) FindByIDs(ids []uint64) ([]models.Role, error) {
	if len(ids) == 0 {
		return []models.Role{}, nil
	}
	var roles []models.Role
	if err := r.db.Where("id IN ?", ids).Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// Update updates a role
func (r *GormRoleRepository) Update(role *models.Role) error {
	return r.db.Save(role).Error
}

// ListByOrganization lists the roles of an organization
func (r *GormRoleRepository) ListByOrganization(organizationID uint64) ([]models.Role, error) {
	var roles []models.Role
	if err := r.db.Where("organization_id = ?", organizationID).Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

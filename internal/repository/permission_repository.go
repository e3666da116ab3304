package repository

import (
	"github.com/yukikurage/org-management-api/internal/models"
	"gorm.io/gorm"
)

// GormPermissionRepository is a GORM implementation of PermissionRepository
type GormPermissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository creates a new PermissionRepository
func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &GormPermissionRepository{db: db}
}

// Create creates a new permission grant
func (r *GormPermissionRepository) Create(perm *models.Permission) error {
	return r.db.Create(perm).Error
}

// FindByGranteeAndCode finds a specific grant
func (r *GormPermissionRepository) FindByGranteeAndCode(granteeType models.GranteeType, granteeID uint64, code string) (*models.Permission, error) {
	var perm models.Permission
	if err := r.db.Where("grantee_type = ? AND grantee_id = ? AND code = ?",
		granteeType, granteeID, code).
		First(&perm).Error; err != nil {
		return nil, err
	}
	return &perm, nil
}

// Delete removes a permission grant
func (r *GormPermissionRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Permission{}, id).Error
}

// ListByGrantee lists the grants held by one grantee
func (r *GormPermissionRepository) ListByGrantee(granteeType models.GranteeType, granteeID uint64) ([]models.Permission, error) {
	return r.ListByGrantees(granteeType, []uint64{granteeID})
}

// ListByGrantees lists the grants held by any of the given grantees of one kind
func (r *GormPermissionRepository) ListByGrantees(granteeType models.GranteeType, granteeIDs []uint64) ([]models.Permission, error) {
	if len(granteeIDs) == 0 {
		return []models.Permission{}, nil
	}
	var perms []models.Permission
	if err := r.db.Where("grantee_type = ? AND grantee_id IN ?", granteeType, granteeIDs).
		Find(&perms).Error; err != nil {
		return nil, err
	}
	return perms, nil
}

// ListByOrganization lists every grant within an organization
func (r *GormPermissionRepository) ListByOrganization(organizationID uint64) ([]models.Permission, error) {
	var perms []models.Permission
	if err := r.db.Where("organization_id = ?", organizationID).Find(&perms).Error; err != nil {
		return nil, err
	}
	return perms, nil
}

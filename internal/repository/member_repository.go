package repository

import (
	"github.com/yukikurage/org-management-api/internal/database"
	"github.com/yukikurage/org-management-api/internal/models"
	"github.com/yukikurage/org-management-api/internal/utils"
	"gorm.io/gorm"
)

// GormMemberRepository is a GORM implementation of MemberRepository
type GormMemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &GormMemberRepository{db: db}
}

// Create creates a new member
func (r *GormMemberRepository) Create(member *models.Member) error {
	return r.db.Create(member).Error
}

// FindByID finds a member by ID
func (r *GormMemberRepository) FindByID(id uint64) (*models.Member, error) {
	var member models.Member
	if err := r.db.First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByEmail finds a member by email within an organization
func (r *GormMemberRepository) FindByEmail(organizationID uint64, email string) (*models.Member, error) {
	var member models.Member
	if err := r.db.Where("organization_id = ? AND email = ?", organizationID, email).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// Update updates a member
func (r *GormMemberRepository) Update(member *models.Member) error {
	return r.db.Save(member).Error
}

// ListByOrganization lists one page of an organization's members, ordered by
// ID, along with the total member count
func (r *GormMemberRepository) ListByOrganization(organizationID uint64, params utils.PaginationParams) ([]models.Member, int64, error) {
	var total int64
	if err := r.db.Model(&models.Member{}).
		Where("organization_id = ?", organizationID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var members []models.Member
	if err := r.db.Where("organization_id = ?", organizationID).
		Scopes(database.Paginate(params)).
		Order("id").
		Find(&members).Error; err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

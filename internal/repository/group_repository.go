package repository

import (
	"github.com/yukikurage/org-management-api/internal/models"
	"gorm.io/gorm"
)

// GormGroupRepository is a GORM implementation of GroupRepository
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &GormGroupRepository{db: db}
}

// Create creates a new group
func (r *GormGroupRepository) Create(group *models.Group) error {
	return r.db.Create(group).Error
}

// FindByID finds a group by ID
func (r *GormGroupRepository) FindByID(id uint64) (*models.Group, error) {
	var group models.Group
	if err := r.db.First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// Update updates a group
func (r *GormGroupRepository) Update(group *models.Group) error {
	return r.db.Save(group).Error
}

// Delete removes a group and its memberships in a transaction
func (r *GormGroupRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM group_members WHERE group_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, id).Error
	})
}

// ListByOrganization lists the groups of an organization
func (r *GormGroupRepository) ListByOrganization(organizationID uint64) ([]models.Group, error) {
	var groups []models.Group
	if err := r.db.Where("organization_id = ?", organizationID).Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// AddMember adds a member to a group
func (r *GormGroupRepository) AddMember(groupID, memberID uint64) error {
	return r.db.Model(&models.Group{ID: groupID}).
		Association("Members").
		Append(&models.Member{ID: memberID})
}

// RemoveMember removes a member from a group
func (r *GormGroupRepository) RemoveMember(groupID, memberID uint64) error {
	return r.db.Model(&models.Group{ID: groupID}).
		Association("Members").
		Delete(&models.Member{ID: memberID})
}

// ListMembers lists the members of a group
func (r *GormGroupRepository) ListMembers(groupID uint64) ([]models.Member, error) {
	var group models.Group
	if err := r.db.Preload("Members").First(&group, groupID).Error; err != nil {
		return nil, err
	}
	return group.Members, nil
}

// ListGroupsForMember lists the groups a member belongs to
func (r *GormGroupRepository) ListGroupsForMember(memberID uint64) ([]models.Group, error) {
	var member models.Member
	if err := r.db.Preload("Groups").First(&member, memberID).Error; err != nil {
		return nil, err
	}
	return member.Groups, nil
}

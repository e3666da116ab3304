package repository

import (
	"github.com/yukikurage/org-management-api/internal/models"
	"github.com/yukikurage/org-management-api/internal/utils"
)

// OrganizationRepository defines the interface for organization data access.
// Organizations are never hard-deleted; archival is a state flag managed
// elsewhere.
type OrganizationRepository interface {
	// Create creates a new organization
	Create(org *models.Organization) error

	// FindByID finds an organization by ID
	FindByID(id uint64) (*models.Organization, error)

	// Update updates an organization
	Update(org *models.Organization) error

	// ListAll lists every organization
	ListAll() ([]models.Organization, error)

	// ListByParent lists the organizations sharing a parent; a nil parent
	// selects the root organizations
	ListByParent(parentID *uint64) ([]models.Organization, error)
}

// DepartmentRepository defines the interface for department data access
type DepartmentRepository interface {
	// Create creates a new department
	Create(dept *models.Department) error

	// FindByID finds a department by ID
	FindByID(id uint64) (*models.Department, error)

	// Update updates a department
	Update(dept *models.Department) error

	// Delete removes a department, nullifying the department reference on
	// its roles in the same transaction
	Delete(id uint64) error

	// ListByOrganization lists the departments of an organization
	ListByOrganization(organizationID uint64) ([]models.Department, error)
}

// RoleRepository defines the interface for role data access
type RoleRepository interface {
	// Create creates a new role
	Create(role *models.Role) error

	// FindByID finds a role by ID
	FindByID(id uint64) (*models.Role, error)

	// FindByIDs finds the roles with the given IDs
	FindByIDs(ids []uint64) ([]models.Role, error)

	// Update updates a role
	Update(role *models.Role) error

	// ListByOrganization lists the roles of an organization
	ListByOrganization(organizationID uint64) ([]models.Role, error)
}

// GroupRepository defines the interface for group data access
type GroupRepository interface {
	// Create creates a new group
	Create(group *models.Group) error

	// FindByID finds a group by ID
	FindByID(id uint64) (*models.Group, error)

	// Update updates a group
	Update(group *models.Group) error

	// Delete removes a group and its memberships
	Delete(id uint64) error

	// ListByOrganization lists the groups of an organization
	ListByOrganization(organizationID uint64) ([]models.Group, error)

	// AddMember adds a member to a group
	AddMember(groupID, memberID uint64) error

	// RemoveMember removes a member from a group
	RemoveMember(groupID, memberID uint64) error

	// ListMembers lists the members of a group
	ListMembers(groupID uint64) ([]models.Member, error)

	// ListGroupsForMember lists the groups a member belongs to
	ListGroupsForMember(memberID uint64) ([]models.Group, error)
}

// MemberRepository defines the interface for member data access
type MemberRepository interface {
	// Create creates a new member
	Create(member *models.Member) error

	// FindByID finds a member by ID
	FindByID(id uint64) (*models.Member, error)

	// FindByEmail finds a member by email within an organization
	FindByEmail(organizationID uint64, email string) (*models.Member, error)

	// Update updates a member
	Update(member *models.Member) error

	// ListByOrganization lists one page of an organization's members along
	// with the total member count
	ListByOrganization(organizationID uint64, params utils.PaginationParams) ([]models.Member, int64, error)
}

// AssignmentRepository defines the interface for role-assignment data access.
// Closed assignments are the audit trail of role holdings and are never
// deleted.
type AssignmentRepository interface {
	// Assign atomically closes every active assignment of the role and
	// opens a new one for the assignee. Returns ErrAssignmentConflict if a
	// concurrent writer wins the race on the active-assignment constraint.
	Assign(roleID uint64, assigneeID uint64, organizationID uint64) (*models.RoleAssignment, error)

	// CloseActive closes every active assignment of the role, returning
	// how many were closed
	CloseActive(roleID uint64) (int64, error)

	// FindActiveByRole finds the active assignments of a role (at most one
	// under the single-active-assignee invariant)
	FindActiveByRole(roleID uint64) ([]models.RoleAssignment, error)

	// ListByRole lists every assignment of a role, newest first
	ListByRole(roleID uint64) ([]models.RoleAssignment, error)

	// ListActiveByAssignee lists a member's currently active assignments
	ListActiveByAssignee(assigneeID uint64) ([]models.RoleAssignment, error)

	// ListHistoricalByAssignee lists a member's closed assignments
	ListHistoricalByAssignee(assigneeID uint64) ([]models.RoleAssignment, error)
}

// PermissionRepository defines the interface for permission data access
type PermissionRepository interface {
	// Create creates a new permission grant
	Create(perm *models.Permission) error

	// FindByGranteeAndCode finds a specific grant
	FindByGranteeAndCode(granteeType models.GranteeType, granteeID uint64, code string) (*models.Permission, error)

	// Delete removes a permission grant
	Delete(id uint64) error

	// ListByGrantee lists the grants held by one grantee
	ListByGrantee(granteeType models.GranteeType, granteeID uint64) ([]models.Permission, error)

	// ListByGrantees lists the grants held by any of the given grantees of
	// one kind
	ListByGrantees(granteeType models.GranteeType, granteeIDs []uint64) ([]models.Permission, error)

	// ListByOrganization lists every grant within an organization
	ListByOrganization(organizationID uint64) ([]models.Permission, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}

package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/org-management-api/internal/audit"
	"github.com/yukikurage/org-management-api/internal/database"
	"github.com/yukikurage/org-management-api/internal/i18n"
	"github.com/yukikurage/org-management-api/internal/models"
	"github.com/yukikurage/org-management-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db          *gorm.DB
	orgs        *OrganizationService
	depts       *DepartmentService
	roles       *RoleService
	groups      *GroupService
	members     *MemberService
	assignments *AssignmentService
	permissions *PermissionService
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Department{},
		&models.Role{},
		&models.Group{},
		&models.Member{},
		&models.RoleAssignment{},
		&models.Permission{},
		&models.AuditLog{},
	)
	require.NoError(t, err)
	require.NoError(t, database.AddIndexes(db))

	orgRepo := repository.NewOrganizationRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	assignRepo := repository.NewAssignmentRepository(db)
	permRepo := repository.NewPermissionRepository(db)

	recorder := audit.NopRecorder{}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return serviceTestEnv{
		db:          db,
		orgs:        NewOrganizationService(orgRepo, memberRepo, recorder),
		depts:       NewDepartmentService(deptRepo, orgRepo, recorder),
		roles:       NewRoleService(roleRepo, deptRepo, orgRepo, recorder),
		groups:      NewGroupService(groupRepo, memberRepo, orgRepo, recorder),
		members:     NewMemberService(memberRepo, orgRepo, groupRepo, assignRepo, roleRepo, deptRepo, recorder),
		assignments: NewAssignmentService(assignRepo, roleRepo, memberRepo, recorder),
		permissions: NewPermissionService(permRepo, memberRepo, roleRepo, groupRepo, deptRepo, assignRepo, recorder),
	}
}

func newAuthServiceForTest(env serviceTestEnv) *AuthService {
	return NewAuthService(repository.NewUserRepository(env.db))
}

func enName(value string) i18n.TranslatedString {
	return i18n.TranslatedString{"en": value}
}

// mustCreateOrg creates an organization or fails the test.
func (env serviceTestEnv) mustCreateOrg(t *testing.T, name string, parentID *uint64) *models.Organization {
	t.Helper()
	org, err := env.orgs.Create(CreateOrganizationInput{
		Name:     enName(name),
		ParentID: parentID,
	})
	require.NoError(t, err)
	return org
}

func (env serviceTestEnv) mustCreateMember(t *testing.T, orgID uint64, email, name string) *models.Member {
	t.Helper()
	member, err := env.members.Create(CreateMemberInput{
		OrganizationID: orgID,
		Email:          email,
		Name:           enName(name),
	})
	require.NoError(t, err)
	return member
}

func (env serviceTestEnv) mustCreateRole(t *testing.T, orgID uint64, name string, deptID, parentID *uint64) *models.Role {
	t.Helper()
	role, err := env.roles.Create(CreateRoleInput{
		OrganizationID: orgID,
		Name:           enName(name),
		DepartmentID:   deptID,
		ParentID:       parentID,
	})
	require.NoError(t, err)
	return role
}

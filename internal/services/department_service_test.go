package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/org-management-api/internal/validation"
)

func TestDepartmentService_CreateRequiresName(t *testing.T) {
	env := setupServiceTestEnv(t)
	org := env.mustCreateOrg(t, "Acme", nil)

	_, err := env.depts.Create(CreateDepartmentInput{
		OrganizationID: org.ID,
	})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	require.True(t, verrs.Has("name"))
}

func TestDepartmentService_DuplicateNamesAllowed(t *testing.T) {
	env := setupServiceTestEnv(t)
	org := env.mustCreateOrg(t, "Acme", nil)

	_, err := env.depts.Create(CreateDepartmentInput{
		OrganizationID: org.ID,
		Name:           enName("Operations"),
	})
	require.NoError(t, err)

	// department names only need presence, not uniqueness
	_, err = env.depts.Create(CreateDepartmentInput{
		OrganizationID: org.ID,
		Name:           enName("Operations"),
	})
	require.NoError(t, err)
}

func TestDepartmentService_DeleteDetachesRoles(t *testing.T) {
	env := setupServiceTestEnv(t)
	org := env.mustCreateOrg(t, "Acme", nil)

	dept, err := env.depts.Create(CreateDepartmentInput{
		OrganizationID: org.ID,
		Name:           enName("Engineering"),
	})
	require.NoError(t, err)

	role := env.mustCreateRole(t, org.ID, "Engineer", &dept.ID, nil)

	require.NoError(t, env.depts.Delete(dept.ID, nil))

	_, err = env.depts.Get(dept.ID)
	require.True(t, errors.Is(err, ErrDepartmentNotFound))

	// the role survives without a department
	reloaded, err := env.roles.Get(role.ID)
	require.NoError(t, err)
	require.Nil(t, reloaded.DepartmentID)
}

func TestDepartmentService_Update(t *testing.T) {
	env := setupServiceTestEnv(t)
	org := env.mustCreateOrg(t, "Acme", nil)

	dept, err := env.depts.Create(CreateDepartmentInput{
		OrganizationID: org.ID,
		Name:           enName("Engineering"),
	})
	require.NoError(t, err)

	updated, err := env.depts.Update(dept.ID, UpdateDepartmentInput{
		Name: enName("Platform Engineering"),
	})
	require.NoError(t, err)
	require.Equal(t, "Platform Engineering", updated.Name.Get("en", "en"))
}

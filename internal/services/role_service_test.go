package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/org-management-api/internal/validation"
)

func TestRoleService_CreateRequiresOrganization(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.roles.Create(CreateRoleInput{
		OrganizationID: 999,
		Name:           enName("CTO"),
	})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	require.True(t, verrs.Has("organization"))
}

func TestRoleService_OrganizationWideNameUniqueness(t *testing.T) {
	env := setupServiceTestEnv(t)
	org := env.mustCreateOrg(t, "Acme", nil)

	parent := env.mustCreateRole(t, org.ID, "Lead", nil, nil)

	// role names are unique across the whole organization, not per subtree
	_, err := env.roles.Create(CreateRoleInput{
		OrganizationID: org.ID,
		Name:           enName("Lead"),
		ParentID:       &parent.ID,
	})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	require.True(t, verrs.Has("name"))
}

func TestRoleService_SameNameInOtherOrganization(t *testing.T) {
	env := setupServiceTestEnv(t)
	orgA := env.mustCreateOrg(t, "Acme", nil)
	orgB := env.mustCreateOrg(t, "Globex", nil)

	env.mustCreateRole(t, orgA.ID, "CTO", nil, nil)
	role := env.mustCreateRole(t, orgB.ID, "CTO", nil, nil)
	require.Equal(t, orgB.ID, role.OrganizationID)
}

func TestRoleService_DepartmentTenantMismatch(t *testing.T) {
	env := setupServiceTestEnv(t)
	orgA := env.mustCreateOrg(t, "Acme", nil)
	orgB := env.mustCreateOrg(t, "Globex", nil)

	dept, err := env.depts.Create(CreateDepartmentInput{
		OrganizationID: orgB.ID,
		Name:           enName("Finance"),
	})
	require.NoError(t, err)

	_, err = env.roles.Create(CreateRoleInput{
		OrganizationID: orgA.ID,
		Name:           enName("Accountant"),
		DepartmentID:   &dept.ID,
	})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	require.True(t, verrs.Has("department"))
}

func TestRoleService_ParentRoleTenantMismatch(t *testing.T) {
	env := setupServiceTestEnv(t)
	orgA := env.mustCreateOrg(t, "Acme", nil)
	orgB := env.mustCreateOrg(t, "Globex", nil)

	foreign := env.mustCreateRole(t, orgB.ID, "CEO", nil, nil)

	_, err := env.roles.Create(CreateRoleInput{
		OrganizationID: orgA.ID,
		Name:           enName("CTO"),
		ParentID:       &foreign.ID,
	})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	require.True(t, verrs.Has("parent"))
}

func TestRoleService_UpdateRejectsCycle(t *testing.T) {
	env := setupServiceTestEnv(t)
	org := env.mustCreateOrg(t, "Acme", nil)

	ceo := env.mustCreateRole(t, org.ID, "CEO", nil, nil)
	cto := env.mustCreateRole(t, org.ID, "CTO", nil, &ceo.ID)
	lead := env.mustCreateRole(t, org.ID, "Lead", nil, &cto.ID)

	_, err := env.roles.Update(ceo.ID, UpdateRoleInput{
		ParentID: &lead.ID,
	})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	require.True(t, verrs.Has("parent"))

	reloaded, err := env.roles.Get(ceo.ID)
	require.NoError(t, err)
	require.Nil(t, reloaded.ParentID)
}

func TestRoleService_UpdateDeactivate(t *testing.T) {
	env := setupServiceTestEnv(t)
	org := env.mustCreateOrg(t, "Acme", nil)
	role := env.mustCreateRole(t, org.ID, "CTO", nil, nil)
	require.True(t, role.Active)

	inactive := false
	updated, err := env.roles.Update(role.ID, UpdateRoleInput{Active: &inactive})
	require.NoError(t, err)
	require.False(t, updated.Active)
}

func TestRoleService_UpdateClearDepartment(t *testing.T) {
	env := setupServiceTestEnv(t)
	org := env.mustCreateOrg(t, "Acme", nil)

	dept, err := env.depts.Create(CreateDepartmentInput{
		OrganizationID: org.ID,
		Name:           enName("Engineering"),
	})
	require.NoError(t, err)

	role := env.mustCreateRole(t, org.ID, "Engineer", &dept.ID, nil)
	require.NotNil(t, role.DepartmentID)

	updated, err := env.roles.Update(role.ID, UpdateRoleInput{ClearDepartment: true})
	require.NoError(t, err)
	require.Nil(t, updated.DepartmentID)
}

func TestRoleService_AncestorsAndDescendants(t *testing.T) {
	env := setupServiceTestEnv(t)
	org := env.mustCreateOrg(t, "Acme", nil)

	ceo := env.mustCreateRole(t, org.ID, "CEO", nil, nil)
	cto := env.mustCreateRole(t, org.ID, "CTO", nil, &ceo.ID)
	lead := env.mustCreateRole(t, org.ID, "Lead", nil, &cto.ID)

	ancestors, err := env.roles.Ancestors(lead.ID)
	require.NoError(t, err)
	require.Len(t, ancestors, 3)
	require.Equal(t, lead.ID, ancestors[0].ID)
	require.Equal(t, ceo.ID, ancestors[2].ID)

	descendants, err := env.roles.Descendants(ceo.ID)
	require.NoError(t, err)
	ids := make([]uint64, len(descendants))
	for i, role := range descendants {
		ids[i] = role.ID
	}
	require.ElementsMatch(t, []uint64{cto.ID, lead.ID}, ids)
}

func TestRoleService_GetNotFound(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.roles.Get(404)
	require.True(t, errors.Is(err, ErrRoleNotFound))
}

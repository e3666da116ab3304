package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/org-management-api/internal/models"
	"github.com/yukikurage/org-management-api/internal/utils"
	"github.com/yukikurage/org-management-api/internal/validation"
)

func TestMemberService_CreateInvalidEmail(t *testing.T) {
	env := setupServiceTestEnv(t)
	org := env.mustCreateOrg(t, "Acme", nil)

	_, err := env.members.Create(CreateMemberInput{
		OrganizationID: org.ID,
		Email:          "not-an-email",
		Name:           enName("Alice"),
	})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	require.True(t, verrs.Has("email"))
}

func TestMemberService_EmailUniquePerOrganization(t *testing.T) {
	env := setupServiceTestEnv(t)
	orgA := env.mustCreateOrg(t, "Acme", nil)
	orgB := env.mustCreateOrg(t, "Globex", nil)

	env.mustCreateMember(t, orgA.ID, "alice@example.test", "Alice")

	// same email within the organization collides
	_, err := env.members.Create(CreateMemberInput{
		OrganizationID: orgA.ID,
		Email:          "alice@example.test",
		Name:           enName("Alice Again"),
	})
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	require.True(t, verrs.Has("email"))

	// but the same address is fine in another organization
	member := env.mustCreateMember(t, orgB.ID, "alice@example.test", "Alice")
	require.Equal(t, orgB.ID, member.OrganizationID)
}

func TestMemberService_UpdateKeepOwnEmail(t *testing.T) {
	env := setupServiceTestEnv(t)
	org := env.mustCreateOrg(t, "Acme", nil)
	alice := env.mustCreateMember(t, org.ID, "alice@acme.test", "Alice")

	// updating without changing the email must not trip the uniqueness check
	email := "alice@acme.test"
	updated, err := env.members.Update(alice.ID, UpdateMemberInput{
		Email: &email,
		Name:  enName("Alice B."),
	})
	require.NoError(t, err)
	require.Equal(t, "alice@acme.test", updated.Email)
	require.Equal(t, "Alice B.", updated.Name.Get("en", "en"))
}

func TestMemberService_UpdateStatus(t *testing.T) {
	env := setupServiceTestEnv(t)
	org := env.mustCreateOrg(t, "Acme", nil)
	alice := env.mustCreateMember(t, org.ID, "alice@acme.test", "Alice")
	require.Equal(t, models.MemberStatusActive, alice.Status)

	inactive := models.MemberStatusInactive
	updated, err := env.members.Update(alice.ID, UpdateMemberInput{Status: &inactive})
	require.NoError(t, err)
	require.Equal(t, models.MemberStatusInactive, updated.Status)
}

func TestMemberService_DepartmentsDerivedFromActiveRoles(t *testing.T) {
	env := setupServiceTestEnv(t)
	org := env.mustCreateOrg(t, "Acme", nil)

	eng, err := env.depts.Create(CreateDepartmentInput{
		OrganizationID: org.ID,
		Name:           enName("Engineering"),
	})
	require.NoError(t, err)

	engineer := env.mustCreateRole(t, org.ID, "Engineer", &eng.ID, nil)
	floater := env.mustCreateRole(t, org.ID, "Floater", nil, nil)
	alice := env.mustCreateMember(t, org.ID, "alice@acme.test", "Alice")

	_, err = env.assignments.Assign(engineer.ID, alice.ID, nil)
	require.NoError(t, err)
	_, err = env.assignments.Assign(floater.ID, alice.ID, nil)
	require.NoError(t, err)

	depts, err := env.members.Departments(alice.ID)
	require.NoError(t, err)
	require.Len(t, depts, 1)
	require.Equal(t, eng.ID, depts[0].ID)

	// closing the assignment removes the derived department
	require.NoError(t, env.assignments.Unassign(engineer.ID, nil))

	depts, err = env.members.Departments(alice.ID)
	require.NoError(t, err)
	require.Empty(t, depts)
}

func TestMemberService_ListByOrganizationPaginated(t *testing.T) {
	env := setupServiceTestEnv(t)
	org := env.mustCreateOrg(t, "Acme", nil)

	env.mustCreateMember(t, org.ID, "a@acme.test", "A")
	env.mustCreateMember(t, org.ID, "b@acme.test", "B")
	env.mustCreateMember(t, org.ID, "c@acme.test", "C")

	page1, total, err := env.members.ListByOrganization(org.ID, utils.PaginationParams{
		Page: 1, Limit: 2, Offset: 0,
	})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, page1, 2)

	page2, total, err := env.members.ListByOrganization(org.ID, utils.PaginationParams{
		Page: 2, Limit: 2, Offset: 2,
	})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, page2, 1)
	require.NotEqual(t, page1[0].ID, page2[0].ID)
}

func TestMemberService_GetNotFound(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.members.Get(404)
	require.True(t, errors.Is(err, ErrMemberNotFound))
}

package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/org-management-api/internal/validation"
)

func TestGroupService_OrganizationWideNameUniqueness(t *testing.T) {
	env := setupServiceTestEnv(t)
	org := env.mustCreateOrg(t, "Acme", nil)

	_, err := env.groups.Create(CreateGroupInput{
		OrganizationID: org.ID,
		Name:           enName("Oncall"),
	})
	require.NoError(t, err)

	_, err = env.groups.Create(CreateGroupInput{
		OrganizationID: org.ID,
		Name:           enName("Oncall"),
	})
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	require.True(t, verrs.Has("name"))
}

func TestGroupService_MembershipRoundTrip(t *testing.T) {
	env := setupServiceTestEnv(t)
	org := env.mustCreateOrg(t, "Acme", nil)

	group, err := env.groups.Create(CreateGroupInput{
		OrganizationID: org.ID,
		Name:           enName("Oncall"),
	})
	require.NoError(t, err)

	alice := env.mustCreateMember(t, org.ID, "alice@acme.test", "Alice")
	bob := env.mustCreateMember(t, org.ID, "bob@acme.test", "Bob")

	require.NoError(t, env.groups.AddMember(group.ID, alice.ID, nil))
	require.NoError(t, env.groups.AddMember(group.ID, bob.ID, nil))

	members, err := env.groups.ListMembers(group.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)

	require.NoError(t, env.groups.RemoveMember(group.ID, alice.ID, nil))

	members, err = env.groups.ListMembers(group.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, bob.ID, members[0].ID)

	groups, err := env.members.Groups(bob.ID)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, group.ID, groups[0].ID)
}

func TestGroupService_AddMemberTenantMismatch(t *testing.T) {
	env := setupServiceTestEnv(t)
	orgA := env.mustCreateOrg(t, "Acme", nil)
	orgB := env.mustCreateOrg(t, "Globex", nil)

	group, err := env.groups.Create(CreateGroupInput{
		OrganizationID: orgA.ID,
		Name:           enName("Oncall"),
	})
	require.NoError(t, err)

	outsider := env.mustCreateMember(t, orgB.ID, "eve@globex.test", "Eve")

	err = env.groups.AddMember(group.ID, outsider.ID, nil)
	require.True(t, errors.Is(err, ErrTenantMismatch))

	members, err := env.groups.ListMembers(group.ID)
	require.NoError(t, err)
	require.Empty(t, members)
}

func TestGroupService_Delete(t *testing.T) {
	env := setupServiceTestEnv(t)
	org := env.mustCreateOrg(t, "Acme", nil)

	group, err := env.groups.Create(CreateGroupInput{
		OrganizationID: org.ID,
		Name:           enName("Oncall"),
	})
	require.NoError(t, err)

	alice := env.mustCreateMember(t, org.ID, "alice@acme.test", "Alice")
	require.NoError(t, env.groups.AddMember(group.ID, alice.ID, nil))

	require.NoError(t, env.groups.Delete(group.ID, nil))

	_, err = env.groups.Get(group.ID)
	require.True(t, errors.Is(err, ErrGroupNotFound))

	// the member survives, only the membership is gone
	groups, err := env.members.Groups(alice.ID)
	require.NoError(t, err)
	require.Empty(t, groups)
}

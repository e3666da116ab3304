package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssignmentService_AssignAndReplace(t *testing.T) {
	env := setupServiceTestEnv(t)
	org := env.mustCreateOrg(t, "Acme", nil)
	role := env.mustCreateRole(t, org.ID, "CTO", nil, nil)
	alice := env.mustCreateMember(t, org.ID, "alice@acme.test", "Alice")
	bob := env.mustCreateMember(t, org.ID, "bob@acme.test", "Bob")

	first, err := env.assignments.Assign(role.ID, alice.ID, nil)
	require.NoError(t, err)
	require.Nil(t, first.FinishDate)

	// assigning Bob closes Alice's row and opens a new one
	second, err := env.assignments.Assign(role.ID, bob.ID, nil)
	require.NoError(t, err)
	require.Nil(t, second.FinishDate)

	assignee, err := env.assignments.ActiveAssignee(role.ID)
	require.NoError(t, err)
	require.NotNil(t, assignee)
	require.Equal(t, bob.ID, assignee.ID)

	history, err := env.assignments.History(role.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	var closed int
	for _, a := range history {
		if a.FinishDate != nil {
			closed++
			require.Equal(t, alice.ID, a.AssigneeID)
		}
	}
	require.Equal(t, 1, closed)
}

func TestAssignmentService_ReassignIncumbentAdvancesHistory(t *testing.T) {
	env := setupServiceTestEnv(t)
	org := env.mustCreateOrg(t, "Acme", nil)
	role := env.mustCreateRole(t, org.ID, "CTO", nil, nil)
	alice := env.mustCreateMember(t, org.ID, "alice@acme.test", "Alice")

	_, err := env.assignments.Assign(role.ID, alice.ID, nil)
	require.NoError(t, err)

	// re-assigning the incumbent is not a no-op: the old row closes
	_, err = env.assignments.Assign(role.ID, alice.ID, nil)
	require.NoError(t, err)

	history, err := env.assignments.History(role.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	active, err := env.assignments.ListForMember(alice.ID, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
}

func TestAssignmentService_CrossTenantWritesNothing(t *testing.T) {
	env := setupServiceTestEnv(t)
	orgA := env.mustCreateOrg(t, "Acme", nil)
	orgB := env.mustCreateOrg(t, "Globex", nil)
	role := env.mustCreateRole(t, orgA.ID, "CTO", nil, nil)
	outsider := env.mustCreateMember(t, orgB.ID, "eve@globex.test", "Eve")

	_, err := env.assignments.Assign(role.ID, outsider.ID, nil)
	require.True(t, errors.Is(err, ErrTenantMismatch))

	history, err := env.assignments.History(role.ID)
	require.NoError(t, err)
	require.Empty(t, history)
}

func TestAssignmentService_UnassignNoActiveIsNoop(t *testing.T) {
	env := setupServiceTestEnv(t)
	org := env.mustCreateOrg(t, "Acme", nil)
	role := env.mustCreateRole(t, org.ID, "CTO", nil, nil)

	require.NoError(t, env.assignments.Unassign(role.ID, nil))

	assignee, err := env.assignments.ActiveAssignee(role.ID)
	require.NoError(t, err)
	require.Nil(t, assignee)
}

func TestAssignmentService_Unassign(t *testing.T) {
	env := setupServiceTestEnv(t)
	org := env.mustCreateOrg(t, "Acme", nil)
	role := env.mustCreateRole(t, org.ID, "CTO", nil, nil)
	alice := env.mustCreateMember(t, org.ID, "alice@acme.test", "Alice")

	_, err := env.assignments.Assign(role.ID, alice.ID, nil)
	require.NoError(t, err)

	require.NoError(t, env.assignments.Unassign(role.ID, nil))

	assignee, err := env.assignments.ActiveAssignee(role.ID)
	require.NoError(t, err)
	require.Nil(t, assignee)

	// the closed row survives as history
	history, err := env.assignments.History(role.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.NotNil(t, history[0].FinishDate)
}

func TestAssignmentService_ListForMember(t *testing.T) {
	env := setupServiceTestEnv(t)
	org := env.mustCreateOrg(t, "Acme", nil)
	cto := env.mustCreateRole(t, org.ID, "CTO", nil, nil)
	lead := env.mustCreateRole(t, org.ID, "Lead", nil, nil)
	alice := env.mustCreateMember(t, org.ID, "alice@acme.test", "Alice")

	_, err := env.assignments.Assign(cto.ID, alice.ID, nil)
	require.NoError(t, err)
	_, err = env.assignments.Assign(lead.ID, alice.ID, nil)
	require.NoError(t, err)
	require.NoError(t, env.assignments.Unassign(lead.ID, nil))

	active, err := env.assignments.ListForMember(alice.ID, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, cto.ID, active[0].RoleID)

	closed, err := env.assignments.ListForMember(alice.ID, false)
	require.NoError(t, err)
	require.Len(t, closed, 1)
	require.Equal(t, lead.ID, closed[0].RoleID)
}

func TestAssignmentService_RoleNotFound(t *testing.T) {
	env := setupServiceTestEnv(t)
	org := env.mustCreateOrg(t, "Acme", nil)
	alice := env.mustCreateMember(t, org.ID, "alice@acme.test", "Alice")

	_, err := env.assignments.Assign(404, alice.ID, nil)
	require.True(t, errors.Is(err, ErrRoleNotFound))
}

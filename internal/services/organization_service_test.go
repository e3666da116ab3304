package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/org-management-api/internal/i18n"
	"github.com/yukikurage/org-management-api/internal/models"
	"github.com/yukikurage/org-management-api/internal/validation"
)

func TestOrganizationService_CreateEnrollsFounder(t *testing.T) {
	env := setupServiceTestEnv(t)

	userID := uint64(7)
	org, err := env.orgs.Create(CreateOrganizationInput{
		Name:          enName("Acme"),
		FounderUserID: &userID,
		FounderEmail:  "founder@acme.test",
		FounderName:   enName("Founder"),
	})
	require.NoError(t, err)

	var members []models.Member
	require.NoError(t, env.db.Where("organization_id = ?", org.ID).Find(&members).Error)
	require.Len(t, members, 1)
	require.NotNil(t, members[0].UserID)
	require.Equal(t, userID, *members[0].UserID)
	require.Equal(t, "founder@acme.test", members[0].Email)
	require.Equal(t, models.MemberStatusActive, members[0].Status)
}

func TestOrganizationService_CreateFounderEmailRequired(t *testing.T) {
	env := setupServiceTestEnv(t)

	userID := uint64(7)
	_, err := env.orgs.Create(CreateOrganizationInput{
		Name:          enName("Acme"),
		FounderUserID: &userID,
	})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	require.True(t, verrs.Has("founder_email"))

	// a rejected create writes nothing
	var count int64
	require.NoError(t, env.db.Model(&models.Organization{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestOrganizationService_CreateFounderEmailInvalid(t *testing.T) {
	env := setupServiceTestEnv(t)

	userID := uint64(7)
	_, err := env.orgs.Create(CreateOrganizationInput{
		Name:          enName("Acme"),
		FounderUserID: &userID,
		FounderEmail:  "not-an-email",
	})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	require.True(t, verrs.Has("founder_email"))
}

func TestOrganizationService_CreateRequiresName(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.orgs.Create(CreateOrganizationInput{})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	require.True(t, verrs.Has("name"))
	require.Equal(t, validation.CodeMissingTranslation, verrs[0].Code)
}

func TestOrganizationService_CreateBlankNameRejected(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.orgs.Create(CreateOrganizationInput{
		Name: i18n.TranslatedString{"en": "   "},
	})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	require.True(t, verrs.Has("name"))
}

func TestOrganizationService_SiblingNameUniqueness(t *testing.T) {
	env := setupServiceTestEnv(t)

	env.mustCreateOrg(t, "Acme", nil)

	// a second root with the same English name collides
	_, err := env.orgs.Create(CreateOrganizationInput{Name: enName("Acme")})
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	require.True(t, verrs.Has("name"))

	// the same name under a different parent is fine
	parent := env.mustCreateOrg(t, "Holding", nil)
	child, err := env.orgs.Create(CreateOrganizationInput{
		Name:     enName("Acme"),
		ParentID: &parent.ID,
	})
	require.NoError(t, err)
	require.Equal(t, parent.ID, *child.ParentID)
}

func TestOrganizationService_SiblingNamesCollideAcrossLocales(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.orgs.Create(CreateOrganizationInput{
		Name: i18n.TranslatedString{"en": "Sales", "fr": "Ventes"},
	})
	require.NoError(t, err)

	// clashing only in the French name still collides
	_, err = env.orgs.Create(CreateOrganizationInput{
		Name: i18n.TranslatedString{"en": "Commerce", "fr": "Ventes"},
	})
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	require.True(t, verrs.Has("name"))
}

func TestOrganizationService_CreateUnknownParent(t *testing.T) {
	env := setupServiceTestEnv(t)

	missing := uint64(9999)
	_, err := env.orgs.Create(CreateOrganizationInput{
		Name:     enName("Orphan"),
		ParentID: &missing,
	})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	require.True(t, verrs.Has("parent"))
}

func TestOrganizationService_UpdateRejectsCycle(t *testing.T) {
	env := setupServiceTestEnv(t)

	root := env.mustCreateOrg(t, "Root", nil)
	child := env.mustCreateOrg(t, "Child", &root.ID)
	grandchild := env.mustCreateOrg(t, "Grandchild", &child.ID)

	// moving the root under its own grandchild must fail
	_, err := env.orgs.Update(root.ID, UpdateOrganizationInput{
		ParentID: &grandchild.ID,
	})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	require.True(t, verrs.Has("parent"))

	// the rejected update left the stored parent untouched
	reloaded, err := env.orgs.Get(root.ID)
	require.NoError(t, err)
	require.Nil(t, reloaded.ParentID)
}

func TestOrganizationService_UpdateSelfParentRejected(t *testing.T) {
	env := setupServiceTestEnv(t)

	org := env.mustCreateOrg(t, "Solo", nil)

	_, err := env.orgs.Update(org.ID, UpdateOrganizationInput{
		ParentID: &org.ID,
	})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	require.True(t, verrs.Has("parent"))
}

func TestOrganizationService_UpdateClearParent(t *testing.T) {
	env := setupServiceTestEnv(t)

	root := env.mustCreateOrg(t, "Root", nil)
	child := env.mustCreateOrg(t, "Child", &root.ID)

	updated, err := env.orgs.Update(child.ID, UpdateOrganizationInput{
		ClearParent: true,
	})
	require.NoError(t, err)
	require.Nil(t, updated.ParentID)
}

func TestOrganizationService_UpdateNotFound(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.orgs.Update(12345, UpdateOrganizationInput{Name: enName("Ghost")})
	require.True(t, errors.Is(err, ErrOrganizationNotFound))
}

func TestOrganizationService_AncestorsAndDescendants(t *testing.T) {
	env := setupServiceTestEnv(t)

	root := env.mustCreateOrg(t, "Root", nil)
	child := env.mustCreateOrg(t, "Child", &root.ID)
	grandchild := env.mustCreateOrg(t, "Grandchild", &child.ID)
	sibling := env.mustCreateOrg(t, "Sibling", &root.ID)

	ancestors, err := env.orgs.Ancestors(grandchild.ID)
	require.NoError(t, err)
	require.Len(t, ancestors, 3)
	require.Equal(t, grandchild.ID, ancestors[0].ID)
	require.Equal(t, child.ID, ancestors[1].ID)
	require.Equal(t, root.ID, ancestors[2].ID)

	descendants, err := env.orgs.Descendants(root.ID)
	require.NoError(t, err)
	ids := make([]uint64, len(descendants))
	for i, org := range descendants {
		ids[i] = org.ID
	}
	require.ElementsMatch(t, []uint64{child.ID, grandchild.ID, sibling.ID}, ids)
}

func TestOrganizationService_LocaleFallbackOnRead(t *testing.T) {
	env := setupServiceTestEnv(t)

	org, err := env.orgs.Create(CreateOrganizationInput{
		Name: i18n.TranslatedString{"en": "Engineering"},
	})
	require.NoError(t, err)

	reloaded, err := env.orgs.Get(org.ID)
	require.NoError(t, err)
	require.Equal(t, "Engineering", reloaded.Name.Get("de", "en"))
	// fallback is read-time only; no German value was written
	_, hasGerman := reloaded.Name["de"]
	require.False(t, hasGerman)
}

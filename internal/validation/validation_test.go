package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrors_Collects(t *testing.T) {
	var verrs Errors
	require.NoError(t, verrs.ErrOrNil())

	verrs.Add("name", CodeMissingTranslation, "name must have at least one translation")
	verrs.Add("email", CodeInvalidEmail, "email is not a valid address")

	err := verrs.ErrOrNil()
	require.Error(t, err)
	require.Contains(t, err.Error(), "name")
	require.Contains(t, err.Error(), "email")

	require.True(t, verrs.Has("name"))
	require.True(t, verrs.Has("email"))
	require.False(t, verrs.Has("parent"))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"alice@example.com",
		"a.b+tag@sub.example.co.jp",
		"x_y@example.io",
	}
	for _, email := range valid {
		require.True(t, IsValidEmail(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"alice@",
		"alice@.com",
		"alice@example",
		"alice @example.com",
	}
	for _, email := range invalid {
		require.False(t, IsValidEmail(email), email)
	}
}

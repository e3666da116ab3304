package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranslatedString_Get(t *testing.T) {
	name := TranslatedString{"en": "Engineering", "fr": "Ingénierie"}

	require.Equal(t, "Engineering", name.Get("en", "en"))
	require.Equal(t, "Ingénierie", name.Get("fr", "en"))
}

func TestTranslatedString_GetFallsBackToDefaultLocale(t *testing.T) {
	name := TranslatedString{"en": "Engineering"}

	require.Equal(t, "Engineering", name.Get("de", "en"))
}

func TestTranslatedString_GetBlankValueFallsBack(t *testing.T) {
	name := TranslatedString{"fr": "   ", "en": "Engineering"}

	require.Equal(t, "Engineering", name.Get("fr", "en"))
}

func TestTranslatedString_GetNoTranslation(t *testing.T) {
	var name TranslatedString

	require.Equal(t, "", name.Get("en", "en"))
}

func TestTranslatedString_Set(t *testing.T) {
	var name TranslatedString
	name.Set("en", "Sales")
	name.Set("ja", "営業")

	require.Equal(t, "Sales", name.Get("en", "en"))
	require.Equal(t, "営業", name.Get("ja", "en"))
}

func TestTranslatedString_HasAnyTranslation(t *testing.T) {
	require.False(t, TranslatedString(nil).HasAnyTranslation())
	require.False(t, TranslatedString{"en": "  "}.HasAnyTranslation())
	require.True(t, TranslatedString{"en": "Sales"}.HasAnyTranslation())
}

func TestTranslatedString_ValueScanRoundTrip(t *testing.T) {
	name := TranslatedString{"en": "Engineering", "ja": "技術部"}

	value, err := name.Value()
	require.NoError(t, err)

	var decoded TranslatedString
	require.NoError(t, decoded.Scan(value))
	require.Equal(t, name, decoded)
}

func TestTranslatedString_ScanNull(t *testing.T) {
	var decoded TranslatedString
	require.NoError(t, decoded.Scan(nil))
	require.NotNil(t, decoded)
	require.Empty(t, decoded)
}

package i18n

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// TranslatedString maps a locale code (e.g. "en", "fr") to a value. It is
// persisted as a single JSON document, so presence and uniqueness checks on
// translated fields happen in the services, not as column constraints.
type TranslatedString map[string]string

// NewTranslatedString creates a TranslatedString with a single translation.
func NewTranslatedString(locale, value string) TranslatedString {
	return TranslatedString{locale: value}
}

// Get returns the value for locale. If the requested locale has no non-blank
// value it falls back to defaultLocale, then to "". Fallback happens at read
// time only; nothing is written back.
func (t TranslatedString) Get(locale, defaultLocale string) string {
	if v, ok := t[locale]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	if v, ok := t[defaultLocale]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return ""
}

// Set stores value under locale.
func (t *TranslatedString) Set(locale, value string) {
	if *t == nil {
		*t = TranslatedString{}
	}
	(*t)[locale] = value
}

// HasAnyTranslation reports whether at least one locale has a non-blank value.
func (t TranslatedString) HasAnyTranslation() bool {
	for _, v := range t {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// Locales returns every locale with a non-blank value.
func (t TranslatedString) Locales() []string {
	locales := make([]string, 0, len(t))
	for locale, v := range t {
		if strings.TrimSpace(v) != "" {
			locales = append(locales, locale)
		}
	}
	return locales
}

// Value implements driver.Valuer, serializing the map as JSON.
func (t TranslatedString) Value() (driver.Value, error) {
	if t == nil {
		t = TranslatedString{}
	}
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal translated string: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner. A NULL or empty column scans to an empty,
// usable map so reads never hit a nil map.
func (t *TranslatedString) Scan(value interface{}) error {
	*t = TranslatedString{}
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for translated string: %T", value)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, t); err != nil {
		return fmt.Errorf("failed to unmarshal translated string: %w", err)
	}
	return nil
}

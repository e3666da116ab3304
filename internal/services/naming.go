package services

import (
	"strings"

	"github.com/yukikurage/org-management-api/internal/i18n"
)

// duplicateNameLocales returns the locales for which name collides with any
// of the other names. A collision is the same non-blank value under the same
// locale; blank values never collide.
func duplicateNameLocales(name i18n.TranslatedString, others []i18n.TranslatedString) []string {
	var locales []string
	for locale, value := range name {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		for _, other := range others {
			if strings.TrimSpace(other[locale]) == trimmed {
				locales = append(locales, locale)
				break
			}
		}
	}
	return locales
}

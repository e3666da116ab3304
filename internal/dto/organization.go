package dto

import (
	"time"

	"github.com/yukikurage/org-management-api/internal/i18n"
	"github.com/yukikurage/org-management-api/internal/models"
)

// OrganizationDTO represents an organization in API responses. Name and
// Description are resolved for the requested locale; the full translation
// maps ride along so edit forms can show every locale.
type OrganizationDTO struct {
	ID           uint64                `json:"id"`
	Name         string                `json:"name"`
	Description  string                `json:"description,omitempty"`
	Translations i18n.TranslatedString `json:"name_translations"`
	ParentID     *uint64               `json:"parent_id"`
	ArchivedAt   *time.Time            `json:"archived_at,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

// ToOrganizationDTO converts an Organization model to OrganizationDTO
func ToOrganizationDTO(org models.Organization, locale, defaultLocale string) OrganizationDTO {
	return OrganizationDTO{
		ID:           org.ID,
		Name:         org.Name.Get(locale, defaultLocale),
		Description:  org.Description.Get(locale, defaultLocale),
		Translations: org.Name,
		ParentID:     org.ParentID,
		ArchivedAt:   org.ArchivedAt,
		CreatedAt:    org.CreatedAt,
	}
}

// ToOrganizationDTOs converts a slice of organizations
func ToOrganizationDTOs(orgs []models.Organization, locale, defaultLocale string) []OrganizationDTO {
	dtos := make([]OrganizationDTO, len(orgs))
	for i, org := range orgs {
		dtos[i] = ToOrganizationDTO(org, locale, defaultLocale)
	}
	return dtos
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/org-management-api/internal/dto"
	apierrors "github.com/yukikurage/org-management-api/internal/errors"
	"github.com/yukikurage/org-management-api/internal/i18n"
	"github.com/yukikurage/org-management-api/internal/middleware"
	"github.com/yukikurage/org-management-api/internal/services"
)

type OrganizationHandler struct {
	orgService    *services.OrganizationService
	defaultLocale string
}

func NewOrganizationHandler(orgService *services.OrganizationService, defaultLocale string) *OrganizationHandler {
	return &OrganizationHandler{
		orgService:    orgService,
		defaultLocale: defaultLocale,
	}
}

// CreateOrganization creates a new organization
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	type CreateOrgRequest struct {
		Name         map[string]string `json:"name" binding:"required"`
		Description  map[string]string `json:"description"`
		ParentID     *uint64           `json:"parent_id"`
		FounderEmail string            `json:"founder_email"`
		FounderName  map[string]string `json:"founder_name"`
	}

	var req CreateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	// The creator becomes the organization's first member, so the
	// organization-scoped routes accept them right away.
	org, err := h.orgService.Create(services.CreateOrganizationInput{
		Name:          i18n.TranslatedString(req.Name),
		Description:   i18n.TranslatedString(req.Description),
		ParentID:      req.ParentID,
		FounderUserID: middleware.ActorID(c),
		FounderEmail:  req.FounderEmail,
		FounderName:   i18n.TranslatedString(req.FounderName),
		ActorID:       middleware.ActorID(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusCreated, dto.ToOrganizationDTO(*org, locale, h.defaultLocale))
}

// ListOrganizations returns all organizations
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	orgs, err := h.orgService.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusOK, gin.H{
		"organizations": dto.ToOrganizationDTOs(orgs, locale, h.defaultLocale),
	})
}

// GetOrganization returns a single organization
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	org, err := h.orgService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*org, locale, h.defaultLocale))
}

// UpdateOrganization applies changes to an organization
func (h *OrganizationHandler) UpdateOrganization(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateOrgRequest struct {
		Name        map[string]string `json:"name"`
		Description map[string]string `json:"description"`
		ParentID    *uint64           `json:"parent_id"`
		ClearParent bool              `json:"clear_parent"`
	}

	var req UpdateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	org, err := h.orgService.Update(id, services.UpdateOrganizationInput{
		Name:        i18n.TranslatedString(req.Name),
		Description: i18n.TranslatedString(req.Description),
		ParentID:    req.ParentID,
		ClearParent: req.ClearParent,
		ActorID:     middleware.ActorID(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*org, locale, h.defaultLocale))
}

// GetOrganizationAncestors returns the chain from the organization up to its root
func (h *OrganizationHandler) GetOrganizationAncestors(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ancestors, err := h.orgService.Ancestors(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusOK, gin.H{
		"ancestors": dto.ToOrganizationDTOs(ancestors, locale, h.defaultLocale),
	})
}

// GetOrganizationDescendants returns the full subtree below the organization
func (h *OrganizationHandler) GetOrganizationDescendants(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	descendants, err := h.orgService.Descendants(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusOK, gin.H{
		"descendants": dto.ToOrganizationDTOs(descendants, locale, h.defaultLocale),
	})
}

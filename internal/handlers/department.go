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

type DepartmentHandler struct {
	deptService   *services.DepartmentService
	defaultLocale string
}

func NewDepartmentHandler(deptService *services.DepartmentService, defaultLocale string) *DepartmentHandler {
	return &DepartmentHandler{
		deptService:   deptService,
		defaultLocale: defaultLocale,
	}
}

// CreateDepartment creates a department in the organization from the route
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	orgID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type CreateDepartmentRequest struct {
		Name        map[string]string `json:"name" binding:"required"`
		Description map[string]string `json:"description"`
	}

	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	dept, err := h.deptService.Create(services.CreateDepartmentInput{
		OrganizationID: orgID,
		Name:           i18n.TranslatedString(req.Name),
		Description:    i18n.TranslatedString(req.Description),
		ActorID:        middleware.ActorID(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusCreated, dto.ToDepartmentDTO(*dept, locale, h.defaultLocale))
}

// ListDepartments returns every department in the organization
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	orgID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	depts, err := h.deptService.ListByOrganization(orgID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusOK, gin.H{
		"departments": dto.ToDepartmentDTOs(depts, locale, h.defaultLocale),
	})
}

// GetDepartment returns a single department
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	dept, err := h.deptService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusOK, dto.ToDepartmentDTO(*dept, locale, h.defaultLocale))
}

// UpdateDepartment applies changes to a department
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateDepartmentRequest struct {
		Name        map[string]string `json:"name"`
		Description map[string]string `json:"description"`
	}

	var req UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	dept, err := h.deptService.Update(id, services.UpdateDepartmentInput{
		Name:        i18n.TranslatedString(req.Name),
		Description: i18n.TranslatedString(req.Description),
		ActorID:     middleware.ActorID(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusOK, dto.ToDepartmentDTO(*dept, locale, h.defaultLocale))
}

// DeleteDepartment removes a department; roles referencing it are detached
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.deptService.Delete(id, middleware.ActorID(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Department deleted"})
}

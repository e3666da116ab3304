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

type RoleHandler struct {
	roleService       *services.RoleService
	assignmentService *services.AssignmentService
	defaultLocale     string
}

func NewRoleHandler(roleService *services.RoleService, assignmentService *services.AssignmentService, defaultLocale string) *RoleHandler {
	return &RoleHandler{
		roleService:       roleService,
		assignmentService: assignmentService,
		defaultLocale:     defaultLocale,
	}
}

// CreateRole creates a role in the organization from the route
func (h *RoleHandler) CreateRole(c *gin.Context) {
	orgID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type CreateRoleRequest struct {
		Name         map[string]string `json:"name" binding:"required"`
		Description  map[string]string `json:"description"`
		DepartmentID *uint64           `json:"department_id"`
		ParentID     *uint64           `json:"parent_id"`
	}

	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	role, err := h.roleService.Create(services.CreateRoleInput{
		OrganizationID: orgID,
		DepartmentID:   req.DepartmentID,
		ParentID:       req.ParentID,
		Name:           i18n.TranslatedString(req.Name),
		Description:    i18n.TranslatedString(req.Description),
		ActorID:        middleware.ActorID(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusCreated, dto.ToRoleDTO(*role, locale, h.defaultLocale))
}

// ListRoles returns every role in the organization
func (h *RoleHandler) ListRoles(c *gin.Context) {
	orgID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	roles, err := h.roleService.ListByOrganization(orgID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusOK, gin.H{
		"roles": dto.ToRoleDTOs(roles, locale, h.defaultLocale),
	})
}

// GetRole returns a single role
func (h *RoleHandler) GetRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	role, err := h.roleService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusOK, dto.ToRoleDTO(*role, locale, h.defaultLocale))
}

// UpdateRole applies changes to a role
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateRoleRequest struct {
		Name            map[string]string `json:"name"`
		Description     map[string]string `json:"description"`
		DepartmentID    *uint64           `json:"department_id"`
		ClearDepartment bool              `json:"clear_department"`
		ParentID        *uint64           `json:"parent_id"`
		ClearParent     bool              `json:"clear_parent"`
		Active          *bool             `json:"active"`
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	role, err := h.roleService.Update(id, services.UpdateRoleInput{
		Name:            i18n.TranslatedString(req.Name),
		Description:     i18n.TranslatedString(req.Description),
		DepartmentID:    req.DepartmentID,
		ClearDepartment: req.ClearDepartment,
		ParentID:        req.ParentID,
		ClearParent:     req.ClearParent,
		Active:          req.Active,
		ActorID:         middleware.ActorID(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusOK, dto.ToRoleDTO(*role, locale, h.defaultLocale))
}

// GetRoleAncestors returns the chain from the role up to its root
func (h *RoleHandler) GetRoleAncestors(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ancestors, err := h.roleService.Ancestors(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusOK, gin.H{
		"ancestors": dto.ToRoleDTOs(ancestors, locale, h.defaultLocale),
	})
}

// GetRoleDescendants returns the full subtree below the role
func (h *RoleHandler) GetRoleDescendants(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	descendants, err := h.roleService.Descendants(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusOK, gin.H{
		"descendants": dto.ToRoleDTOs(descendants, locale, h.defaultLocale),
	})
}

// AssignRole assigns a member to the role, ending any current assignment
func (h *RoleHandler) AssignRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type AssignRequest struct {
		MemberID uint64 `json:"member_id" binding:"required"`
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	assignment, err := h.assignmentService.Assign(id, req.MemberID, middleware.ActorID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRoleAssignmentDTO(*assignment))
}

// UnassignRole ends the active assignment on the role, if any
func (h *RoleHandler) UnassignRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.assignmentService.Unassign(id, middleware.ActorID(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role unassigned"})
}

// GetActiveAssignee returns the member currently assigned to the role
func (h *RoleHandler) GetActiveAssignee(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	member, err := h.assignmentService.ActiveAssignee(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if member == nil {
		c.JSON(http.StatusOK, gin.H{"assignee": nil})
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusOK, gin.H{
		"assignee": dto.ToMemberDTO(*member, locale, h.defaultLocale),
	})
}

// ListRoleAssignments returns the full assignment history for the role
func (h *RoleHandler) ListRoleAssignments(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	assignments, err := h.assignmentService.History(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assignments": dto.ToRoleAssignmentDTOs(assignments),
	})
}

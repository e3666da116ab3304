package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/org-management-api/internal/dto"
	apierrors "github.com/yukikurage/org-management-api/internal/errors"
	"github.com/yukikurage/org-management-api/internal/middleware"
	"github.com/yukikurage/org-management-api/internal/models"
	"github.com/yukikurage/org-management-api/internal/services"
)

type PermissionHandler struct {
	permissionService *services.PermissionService
}

func NewPermissionHandler(permissionService *services.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

// GrantPermission attaches a permission code to a grantee in the
// organization from the route
func (h *PermissionHandler) GrantPermission(c *gin.Context) {
	orgID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type GrantRequest struct {
		GranteeType models.GranteeType `json:"grantee_type" binding:"required"`
		GranteeID   uint64             `json:"grantee_id" binding:"required"`
		Code        string             `json:"code" binding:"required"`
	}

	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	perm, err := h.permissionService.Grant(services.GrantInput{
		OrganizationID: orgID,
		GranteeType:    req.GranteeType,
		GranteeID:      req.GranteeID,
		Code:           req.Code,
		ActorID:        middleware.ActorID(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPermissionDTO(*perm))
}

// RevokePermission removes a permission code from a grantee
func (h *PermissionHandler) RevokePermission(c *gin.Context) {
	granteeType, granteeID, ok := parseGrantee(c)
	if !ok {
		return
	}

	code := c.Query("code")
	if code == "" {
		apierrors.BadRequest(c, "Missing code parameter")
		return
	}

	if err := h.permissionService.Revoke(granteeType, granteeID, code, middleware.ActorID(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Permission revoked"})
}

// ListPermissions returns the direct grants held by a grantee
func (h *PermissionHandler) ListPermissions(c *gin.Context) {
	granteeType, granteeID, ok := parseGrantee(c)
	if !ok {
		return
	}

	perms, err := h.permissionService.ListForGrantee(granteeType, granteeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"permissions": dto.ToPermissionDTOs(perms),
	})
}

// parseGrantee reads the grantee_type and grantee_id query parameters.
func parseGrantee(c *gin.Context) (models.GranteeType, uint64, bool) {
	granteeType := models.GranteeType(c.Query("grantee_type"))
	if !granteeType.Valid() {
		apierrors.BadRequest(c, "Invalid grantee_type parameter")
		return "", 0, false
	}

	granteeID, err := strconv.ParseUint(c.Query("grantee_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid grantee_id parameter")
		return "", 0, false
	}

	return granteeType, granteeID, true
}

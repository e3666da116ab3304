package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/org-management-api/internal/dto"
	apierrors "github.com/yukikurage/org-management-api/internal/errors"
	"github.com/yukikurage/org-management-api/internal/i18n"
	"github.com/yukikurage/org-management-api/internal/middleware"
	"github.com/yukikurage/org-management-api/internal/models"
	"github.com/yukikurage/org-management-api/internal/services"
	"github.com/yukikurage/org-management-api/internal/utils"
)

type MemberHandler struct {
	memberService     *services.MemberService
	assignmentService *services.AssignmentService
	permissionService *services.PermissionService
	defaultLocale     string
}

func NewMemberHandler(
	memberService *services.MemberService,
	assignmentService *services.AssignmentService,
	permissionService *services.PermissionService,
	defaultLocale string,
) *MemberHandler {
	return &MemberHandler{
		memberService:     memberService,
		assignmentService: assignmentService,
		permissionService: permissionService,
		defaultLocale:     defaultLocale,
	}
}

// CreateMember creates a member in the organization from the route
func (h *MemberHandler) CreateMember(c *gin.Context) {
	orgID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type CreateMemberRequest struct {
		Email  string            `json:"email" binding:"required"`
		Name   map[string]string `json:"name"`
		UserID *uint64           `json:"user_id"`
	}

	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	member, err := h.memberService.Create(services.CreateMemberInput{
		OrganizationID: orgID,
		Email:          req.Email,
		Name:           i18n.TranslatedString(req.Name),
		UserID:         req.UserID,
		ActorID:        middleware.ActorID(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusCreated, dto.ToMemberDTO(*member, locale, h.defaultLocale))
}

// ListMembers returns one page of the organization's members
func (h *MemberHandler) ListMembers(c *gin.Context) {
	orgID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	members, total, err := h.memberService.ListByOrganization(orgID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusOK, gin.H{
		"members": dto.ToMemberDTOs(members, locale, h.defaultLocale),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetMember returns a single member
func (h *MemberHandler) GetMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	member, err := h.memberService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusOK, dto.ToMemberDTO(*member, locale, h.defaultLocale))
}

// UpdateMember applies changes to a member
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateMemberRequest struct {
		Email  *string              `json:"email"`
		Name   map[string]string    `json:"name"`
		Status *models.MemberStatus `json:"status"`
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	member, err := h.memberService.Update(id, services.UpdateMemberInput{
		Email:   req.Email,
		Name:    i18n.TranslatedString(req.Name),
		Status:  req.Status,
		ActorID: middleware.ActorID(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusOK, dto.ToMemberDTO(*member, locale, h.defaultLocale))
}

// ListMemberGroups returns the groups the member belongs to
func (h *MemberHandler) ListMemberGroups(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	groups, err := h.memberService.Groups(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusOK, gin.H{
		"groups": dto.ToGroupDTOs(groups, locale, h.defaultLocale),
	})
}

// ListMemberDepartments returns the departments the member reaches through
// active role assignments
func (h *MemberHandler) ListMemberDepartments(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	depts, err := h.memberService.Departments(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusOK, gin.H{
		"departments": dto.ToDepartmentDTOs(depts, locale, h.defaultLocale),
	})
}

// ListMemberAssignments returns the member's role assignments. Pass
// ?active=true to restrict to current assignments.
func (h *MemberHandler) ListMemberAssignments(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	activeOnly := c.Query("active") == "true"
	assignments, err := h.assignmentService.ListForMember(id, activeOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assignments": dto.ToRoleAssignmentDTOs(assignments),
	})
}

// GetEffectivePermissions returns the member's aggregated permission set
func (h *MemberHandler) GetEffectivePermissions(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	perms, err := h.permissionService.EffectivePermissions(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"permissions": dto.ToPermissionDTOs(perms),
	})
}

// CheckPermission reports whether the member holds a single permission code
func (h *MemberHandler) CheckPermission(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	code := c.Query("code")
	if code == "" {
		apierrors.BadRequest(c, "Missing code parameter")
		return
	}

	allowed, err := h.permissionService.HasPermission(id, code)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    code,
		"allowed": allowed,
	})
}

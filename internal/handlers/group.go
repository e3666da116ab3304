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

type GroupHandler struct {
	groupService  *services.GroupService
	defaultLocale string
}

func NewGroupHandler(groupService *services.GroupService, defaultLocale string) *GroupHandler {
	return &GroupHandler{
		groupService:  groupService,
		defaultLocale: defaultLocale,
	}
}

// CreateGroup creates a group in the organization from the route
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	orgID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type CreateGroupRequest struct {
		Name        map[string]string `json:"name" binding:"required"`
		Description map[string]string `json:"description"`
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	group, err := h.groupService.Create(services.CreateGroupInput{
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
	c.JSON(http.StatusCreated, dto.ToGroupDTO(*group, locale, h.defaultLocale))
}

// ListGroups returns every group in the organization
func (h *GroupHandler) ListGroups(c *gin.Context) {
	orgID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	groups, err := h.groupService.ListByOrganization(orgID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusOK, gin.H{
		"groups": dto.ToGroupDTOs(groups, locale, h.defaultLocale),
	})
}

// GetGroup returns a single group
func (h *GroupHandler) GetGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	group, err := h.groupService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusOK, dto.ToGroupDTO(*group, locale, h.defaultLocale))
}

// UpdateGroup applies changes to a group
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateGroupRequest struct {
		Name        map[string]string `json:"name"`
		Description map[string]string `json:"description"`
	}

	var req UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	group, err := h.groupService.Update(id, services.UpdateGroupInput{
		Name:        i18n.TranslatedString(req.Name),
		Description: i18n.TranslatedString(req.Description),
		ActorID:     middleware.ActorID(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusOK, dto.ToGroupDTO(*group, locale, h.defaultLocale))
}

// DeleteGroup removes a group and its memberships
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.groupService.Delete(id, middleware.ActorID(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Group deleted"})
}

// AddGroupMember adds a member of the same organization to the group
func (h *GroupHandler) AddGroupMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type AddMemberRequest struct {
		MemberID uint64 `json:"member_id" binding:"required"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	if err := h.groupService.AddMember(id, req.MemberID, middleware.ActorID(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Member added to group"})
}

// RemoveGroupMember removes a member from the group
func (h *GroupHandler) RemoveGroupMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	memberID, ok := parseIDParam(c, "memberId")
	if !ok {
		return
	}

	if err := h.groupService.RemoveMember(id, memberID, middleware.ActorID(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed from group"})
}

// ListGroupMembers returns the members of the group
func (h *GroupHandler) ListGroupMembers(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	members, err := h.groupService.ListMembers(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := requestLocale(c, h.defaultLocale)
	c.JSON(http.StatusOK, gin.H{
		"members": dto.ToMemberDTOs(members, locale, h.defaultLocale),
	})
}

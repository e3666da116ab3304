package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/org-management-api/internal/errors"
	"github.com/yukikurage/org-management-api/internal/services"
	"github.com/yukikurage/org-management-api/internal/validation"
)

// parseIDParam reads a numeric route parameter. On failure it writes a 400
// response and returns false.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}

// requestLocale resolves the display locale for the request, falling back to
// the configured default.
func requestLocale(c *gin.Context, defaultLocale string) string {
	if locale := c.Query("locale"); locale != "" {
		return locale
	}
	return defaultLocale
}

// respondServiceError translates service layer errors into API responses.
// Validation failures carry the full violation list in the details field.
func respondServiceError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		apierrors.BadRequestWithDetails(c, "Validation failed", verrs)
		return
	}

	switch {
	case errors.Is(err, services.ErrOrganizationNotFound),
		errors.Is(err, services.ErrDepartmentNotFound),
		errors.Is(err, services.ErrRoleNotFound),
		errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrPermissionNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTenantMismatch):
		apierrors.RespondWithError(c, http.StatusUnprocessableEntity,
			apierrors.NewAPIError(apierrors.ErrCodeInvalidOperation, err.Error()))
	case errors.Is(err, services.ErrConcurrencyConflict):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stayops/housekeeping-app/services"
	"github.com/stayops/housekeeping-app/utils"
)

var ErrNoPermission = errors.New("you don't have permission to perform this action")

// currentUserID reads the authenticated user id set by the auth
// middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func currentTenantID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("tenant_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// respondServiceError maps service errors onto HTTP statuses:
// precondition failures become 409 so the client refreshes and
// re-renders instead of retrying the same mutation.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskUnavailable),
		errors.Is(err, services.ErrWorkerBusy),
		errors.Is(err, services.ErrInvalidTaskState),
		errors.Is(err, services.ErrSettlementExists),
		errors.Is(err, services.ErrNoUnsettledTasks),
		errors.Is(err, services.ErrInvalidSettlementState),
		errors.Is(err, services.ErrCheckoutAlreadyReported),
		errors.Is(err, services.ErrCheckoutNotReported):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrReviewNotesTooShort),
		errors.Is(err, services.ErrInvalidPaymentAmount),
		errors.Is(err, services.ErrRateMissing):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stayops/housekeeping-app/models"
	"github.com/stayops/housekeeping-app/utils"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetAllNotifications -> tenant scoped, newest first
func (nc *NotificationController) GetAllNotifications(c *gin.Context) {
	tenantID, ok := currentTenantID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant id not found in context"))
		return
	}

	var notifs []models.Notification
	query := nc.DB.Where("tenant_id = ?", tenantID)
	if event := c.Query("event"); event != "" {
		query = query.Where("event = ?", event)
	}
	if err := query.Order("created_at DESC").Find(&notifs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All notifications", notifs)
}

// GetNotificationByID
func (nc *NotificationController) GetNotificationByID(c *gin.Context) {
	tenantID, ok := currentTenantID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant id not found in context"))
		return
	}

	idStr := c.Param("notif_id")
	id, _ := strconv.Atoi(idStr)

	var notif models.Notification
	if err := nc.DB.Where("id = ? AND tenant_id = ?", id, tenantID).First(&notif).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification detail", notif)
}

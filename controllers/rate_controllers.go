package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stayops/housekeeping-app/models"
	"github.com/stayops/housekeeping-app/utils"
)

type RateController struct {
	DB *gorm.DB
}

func NewRateController(db *gorm.DB) *RateController {
	return &RateController{DB: db}
}

// GetRates lists the tenant's rate table.
func (rc *RateController) GetRates(c *gin.Context) {
	tenantID, ok := currentTenantID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant id not found in context"))
		return
	}

	var rates []models.CleaningRate
	if err := rc.DB.Preload("PropertyType").
		Where("tenant_id = ?", tenantID).Find(&rates).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All cleaning rates", rates)
}

// UpsertRate creates or replaces the rate for one (property type,
// task type) pair. Existing settlement items keep their snapshotted
// rate; only future builds see the change.
func (rc *RateController) UpsertRate(c *gin.Context) {
	tenantID, ok := currentTenantID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant id not found in context"))
		return
	}

	type reqBody struct {
		PropertyTypeID uint    `json:"property_type_id" binding:"required"`
		TaskType       string  `json:"task_type" binding:"required,oneof=check_out stay_over deep_cleaning"`
		Rate           float64 `json:"rate" binding:"required,min=0"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var propertyType models.PropertyType
	if err := rc.DB.Where("id = ? AND tenant_id = ?", body.PropertyTypeID, tenantID).
		First(&propertyType).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown property type"))
		return
	}

	var rate models.CleaningRate
	err := rc.DB.Where("tenant_id = ? AND property_type_id = ? AND task_type = ?",
		tenantID, body.PropertyTypeID, body.TaskType).First(&rate).Error
	switch {
	case err == nil:
		rate.Rate = body.Rate
		if err := rc.DB.Save(&rate).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Cleaning rate updated", rate)
	case errors.Is(err, gorm.ErrRecordNotFound):
		rate = models.CleaningRate{
			TenantID:       tenantID,
			PropertyTypeID: body.PropertyTypeID,
			TaskType:       body.TaskType,
			Rate:           body.Rate,
		}
		if err := rc.DB.Create(&rate).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondJSON(c, http.StatusCreated, "Cleaning rate created", rate)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stayops/housekeeping-app/models"
	"github.com/stayops/housekeeping-app/utils"
)

type TenantController struct {
	DB *gorm.DB
}

func NewTenantController(db *gorm.DB) *TenantController {
	return &TenantController{DB: db}
}

// CreateTenant requires both cleaning intervals explicitly; there is
// no silent default for deep_cleaning_interval.
func (tc *TenantController) CreateTenant(c *gin.Context) {
	type reqBody struct {
		Name                 string `json:"name" binding:"required"`
		Timezone             string `json:"timezone"`
		StayOverInterval     int    `json:"stay_over_interval" binding:"required,min=1"`
		DeepCleaningInterval int    `json:"deep_cleaning_interval" binding:"required,min=1"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tenant := models.Tenant{
		Name:                 body.Name,
		Timezone:             "UTC",
		StayOverInterval:     body.StayOverInterval,
		DeepCleaningInterval: body.DeepCleaningInterval,
	}
	if body.Timezone != "" {
		tenant.Timezone = body.Timezone
	}

	if err := tc.DB.Create(&tenant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Tenant created", tenant)
}

// GetTenant returns the caller's own tenant.
func (tc *TenantController) GetTenant(c *gin.Context) {
	tenantID, ok := currentTenantID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant id not found in context"))
		return
	}

	var tenant models.Tenant
	if err := tc.DB.First(&tenant, tenantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Tenant detail", tenant)
}

// UpdateSettings adjusts the cleaning intervals. Existing tasks are
// untouched; the new values apply to future generation only.
func (tc *TenantController) UpdateSettings(c *gin.Context) {
	tenantID, ok := currentTenantID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant id not found in context"))
		return
	}

	type reqBody struct {
		Timezone             *string `json:"timezone"`
		StayOverInterval     *int    `json:"stay_over_interval"`
		DeepCleaningInterval *int    `json:"deep_cleaning_interval"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var tenant models.Tenant
	if err := tc.DB.First(&tenant, tenantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Timezone != nil {
		tenant.Timezone = *body.Timezone
	}
	if body.StayOverInterval != nil {
		if *body.StayOverInterval < 1 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("stay_over_interval must be at least 1"))
			return
		}
		tenant.StayOverInterval = *body.StayOverInterval
	}
	if body.DeepCleaningInterval != nil {
		if *body.DeepCleaningInterval < 1 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("deep_cleaning_interval must be at least 1"))
			return
		}
		tenant.DeepCleaningInterval = *body.DeepCleaningInterval
	}

	if err := tc.DB.Save(&tenant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Tenant settings updated", tenant)
}

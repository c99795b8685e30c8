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

type PropertyController struct {
	DB *gorm.DB
}

func NewPropertyController(db *gorm.DB) *PropertyController {
	return &PropertyController{DB: db}
}

// CreatePropertyType
func (pc *PropertyController) CreatePropertyType(c *gin.Context) {
	tenantID, ok := currentTenantID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant id not found in context"))
		return
	}

	type reqBody struct {
		Name string `json:"name" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	propertyType := models.PropertyType{
		TenantID: tenantID,
		Name:     body.Name,
	}
	if err := pc.DB.Create(&propertyType).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Property type created", propertyType)
}

// GetPropertyTypes
func (pc *PropertyController) GetPropertyTypes(c *gin.Context) {
	tenantID, ok := currentTenantID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant id not found in context"))
		return
	}

	var types []models.PropertyType
	if err := pc.DB.Where("tenant_id = ?", tenantID).Find(&types).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All property types", types)
}

// CreateProperty
func (pc *PropertyController) CreateProperty(c *gin.Context) {
	tenantID, ok := currentTenantID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant id not found in context"))
		return
	}

	type reqBody struct {
		PropertyTypeID uint   `json:"property_type_id" binding:"required"`
		Name           string `json:"name" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var propertyType models.PropertyType
	if err := pc.DB.Where("id = ? AND tenant_id = ?", body.PropertyTypeID, tenantID).
		First(&propertyType).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown property type"))
		return
	}

	property := models.Property{
		TenantID:       tenantID,
		PropertyTypeID: body.PropertyTypeID,
		Name:           body.Name,
	}
	if err := pc.DB.Create(&property).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Property created", property)
}

// GetProperties
func (pc *PropertyController) GetProperties(c *gin.Context) {
	tenantID, ok := currentTenantID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant id not found in context"))
		return
	}

	var properties []models.Property
	if err := pc.DB.Preload("PropertyType").
		Where("tenant_id = ?", tenantID).Find(&properties).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All properties", properties)
}

// GetPropertyByID
func (pc *PropertyController) GetPropertyByID(c *gin.Context) {
	tenantID, ok := currentTenantID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant id not found in context"))
		return
	}

	idStr := c.Param("property_id")
	id, _ := strconv.Atoi(idStr)

	var property models.Property
	if err := pc.DB.Preload("PropertyType").
		Where("id = ? AND tenant_id = ?", id, tenantID).First(&property).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Property detail", property)
}

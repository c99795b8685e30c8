package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stayops/housekeeping-app/models"
	"github.com/stayops/housekeeping-app/services"
	"github.com/stayops/housekeeping-app/utils"
)

type SettlementController struct {
	DB          *gorm.DB
	settlements *services.SettlementService
}

func NewSettlementController(db *gorm.DB, settlements *services.SettlementService) *SettlementController {
	return &SettlementController{DB: db, settlements: settlements}
}

// BuildSettlement aggregates the caller's completed tasks for the
// given day (default: today) into a submitted settlement.
func (sc *SettlementController) BuildSettlement(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	type reqBody struct {
		Date string `json:"date"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil && c.Request.ContentLength > 0 {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var day time.Time
	if body.Date != "" {
		parsed, err := time.Parse(dateLayout, body.Date)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("date must be YYYY-MM-DD"))
			return
		}
		day = parsed
	}

	settlement, err := sc.settlements.Build(userID, day)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Settlement created", settlement)
}

// GetAllSettlements -> managers see the tenant's settlements,
// cleaners only their own.
func (sc *SettlementController) GetAllSettlements(c *gin.Context) {
	tenantID, ok := currentTenantID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant id not found in context"))
		return
	}

	query := sc.DB.Preload("Items").Preload("User").Where("tenant_id = ?", tenantID)

	role, _ := c.Get("role")
	if role == "cleaner" {
		userID, _ := currentUserID(c)
		query = query.Where("user_id = ?", userID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var settlements []models.CleaningSettlement
	if err := query.Order("settlement_date DESC").Find(&settlements).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All settlements", settlements)
}

// GetSettlementByID. Cleaners can only read their own settlements.
func (sc *SettlementController) GetSettlementByID(c *gin.Context) {
	settlement, ok := sc.settlementParam(c)
	if !ok {
		return
	}

	role, _ := c.Get("role")
	if role == "cleaner" {
		userID, _ := currentUserID(c)
		if settlement.UserID != userID {
			utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Settlement detail", settlement)
}

// ApproveSettlement
func (sc *SettlementController) ApproveSettlement(c *gin.Context) {
	settlement, ok := sc.settlementParam(c)
	if !ok {
		return
	}
	reviewerID, _ := currentUserID(c)

	updated, err := sc.settlements.Approve(settlement.ID, reviewerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Settlement approved", updated)
}

// RejectSettlement requires a reason of minimum length.
func (sc *SettlementController) RejectSettlement(c *gin.Context) {
	settlement, ok := sc.settlementParam(c)
	if !ok {
		return
	}
	reviewerID, _ := currentUserID(c)

	type reqBody struct {
		Reason string `json:"reason" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updated, err := sc.settlements.Reject(settlement.ID, reviewerID, body.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Settlement rejected", updated)
}

// RecordPayment inserts a payment against an approved settlement.
func (sc *SettlementController) RecordPayment(c *gin.Context) {
	settlement, ok := sc.settlementParam(c)
	if !ok {
		return
	}
	paidBy, _ := currentUserID(c)

	type reqBody struct {
		Amount        float64 `json:"amount" binding:"required,gt=0"`
		PaymentMethod string  `json:"payment_method" binding:"omitempty,oneof=cash bank_transfer"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	payment, err := sc.settlements.RecordPayment(settlement.ID, body.Amount, body.PaymentMethod, paidBy)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Payment recorded", payment)
}

// GetPayments lists the ledger of one settlement.
func (sc *SettlementController) GetPayments(c *gin.Context) {
	settlement, ok := sc.settlementParam(c)
	if !ok {
		return
	}

	var payments []models.CleaningPayment
	if err := sc.DB.Where("settlement_id = ?", settlement.ID).
		Order("payment_date").Find(&payments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Settlement payments", payments)
}

// settlementParam resolves :settlement_id within the caller's tenant.
func (sc *SettlementController) settlementParam(c *gin.Context) (*models.CleaningSettlement, bool) {
	tenantID, ok := currentTenantID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant id not found in context"))
		return nil, false
	}

	idStr := c.Param("settlement_id")
	id, _ := strconv.Atoi(idStr)

	var settlement models.CleaningSettlement
	if err := sc.DB.Preload("Items").Preload("User").
		Where("id = ? AND tenant_id = ?", id, tenantID).First(&settlement).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return nil, false
	}

	return &settlement, true
}

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

type ReservationController struct {
	DB        *gorm.DB
	generator *services.TaskGenerator
	reports   *services.ReportService
}

func NewReservationController(db *gorm.DB, generator *services.TaskGenerator, reports *services.ReportService) *ReservationController {
	return &ReservationController{DB: db, generator: generator, reports: reports}
}

const dateLayout = "2006-01-02"

// CreateReservation inserts the reservation and its derived cleaning
// tasks in one transaction.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	tenantID, ok := currentTenantID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant id not found in context"))
		return
	}

	type reqBody struct {
		PropertyID   uint   `json:"property_id" binding:"required"`
		CheckInDate  string `json:"check_in_date" binding:"required"`
		CheckOutDate string `json:"check_out_date" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	checkIn, err := time.Parse(dateLayout, body.CheckInDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("check_in_date must be YYYY-MM-DD"))
		return
	}
	checkOut, err := time.Parse(dateLayout, body.CheckOutDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("check_out_date must be YYYY-MM-DD"))
		return
	}
	if !checkOut.After(checkIn) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("check_out_date must be after check_in_date"))
		return
	}

	reservation := models.Reservation{
		TenantID:     tenantID,
		PropertyID:   body.PropertyID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Status:       models.ReservationStatusActive,
	}

	tasks, err := rc.generator.CreateReservationWithTasks(&reservation)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Reservation created", gin.H{
		"reservation": reservation,
		"tasks":       tasks,
	})
}

// GetReservationByID
func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	tenantID, ok := currentTenantID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant id not found in context"))
		return
	}

	idStr := c.Param("reservation_id")
	id, _ := strconv.Atoi(idStr)

	var reservation models.Reservation
	if err := rc.DB.Preload("Property").
		Where("id = ? AND tenant_id = ?", id, tenantID).First(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation detail", reservation)
}

// GetAllReservations
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	tenantID, ok := currentTenantID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("tenant id not found in context"))
		return
	}

	var reservations []models.Reservation
	if err := rc.DB.Preload("Property").
		Where("tenant_id = ?", tenantID).Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// ReportCheckout marks the guest as actually checked out and makes
// the checkout task workable.
func (rc *ReservationController) ReportCheckout(c *gin.Context) {
	id, err := rc.reservationParam(c)
	if err != nil {
		return
	}

	reservation, err := rc.reports.ReportCheckout(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Checkout reported", reservation)
}

// ClearCheckout reverts a reported checkout.
func (rc *ReservationController) ClearCheckout(c *gin.Context) {
	id, err := rc.reservationParam(c)
	if err != nil {
		return
	}

	reservation, err := rc.reports.ClearCheckout(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Checkout cleared", reservation)
}

// ReportCheckin records the actual checkin; notification only.
func (rc *ReservationController) ReportCheckin(c *gin.Context) {
	id, err := rc.reservationParam(c)
	if err != nil {
		return
	}

	reservation, err := rc.reports.ReportCheckin(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Checkin reported", reservation)
}

// reservationParam resolves :reservation_id and checks it belongs to
// the caller's tenant.
func (rc *ReservationController) reservationParam(c *gin.Context) (uint, error) {
	tenantID, ok := currentTenantID(c)
	if !ok {
		err := errors.New("tenant id not found in context")
		utils.RespondError(c, http.StatusUnauthorized, err)
		return 0, err
	}

	idStr := c.Param("reservation_id")
	id, _ := strconv.Atoi(idStr)

	var reservation models.Reservation
	if err := rc.DB.Select("id").
		Where("id = ? AND tenant_id = ?", id, tenantID).First(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return 0, err
	}

	return reservation.ID, nil
}

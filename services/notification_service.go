package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/stayops/housekeeping-app/events"
	"github.com/stayops/housekeeping-app/models"
	"github.com/stayops/housekeeping-app/utils"
)

// NotificationService persists every emitted event as a Notification
// row and pushes it to the websocket hub. The rows are what lets a
// downstream messenger catch up after a disconnect.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (ns *NotificationService) emit(tenantID uint, userID *uint, event, title, message string) {
	notif := models.Notification{
		TenantID: tenantID,
		UserID:   userID,
		Event:    event,
		Title:    &title,
		Message:  message,
	}
	if err := ns.db.Create(&notif).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to store %s notification: %v", event, err)
		return
	}
	events.BroadcastNotification(notif)
}

// CheckoutReported announces that a guest has actually checked out and
// the property is workable.
func (ns *NotificationService) CheckoutReported(res *models.Reservation, property *models.Property) {
	ns.emit(res.TenantID, nil, events.EventCheckoutReported,
		"Checkout reported",
		fmt.Sprintf("Guest checked out of %s, cleaning can start (reservation #%d)", property.Name, res.ID))
}

// CheckinReported announces an actual checkin; no task is touched.
func (ns *NotificationService) CheckinReported(res *models.Reservation, property *models.Property) {
	ns.emit(res.TenantID, nil, events.EventCheckinReported,
		"Checkin reported",
		fmt.Sprintf("Guest checked in to %s (reservation #%d)", property.Name, res.ID))
}

func (ns *NotificationService) SettlementSubmitted(stl *models.CleaningSettlement) {
	ns.emit(stl.TenantID, nil, events.EventSettlementSubmitted,
		"Settlement submitted",
		fmt.Sprintf("Worker %d submitted settlement %s: %d tasks, total %s",
			stl.UserID, stl.Reference, stl.TotalTasks, utils.FormatCurrency(stl.TotalAmount)))
}

func (ns *NotificationService) SettlementApproved(stl *models.CleaningSettlement) {
	ns.emit(stl.TenantID, &stl.UserID, events.EventSettlementApproved,
		"Settlement approved",
		fmt.Sprintf("Settlement %s approved: %s payable",
			stl.Reference, utils.FormatCurrency(stl.TotalAmount)))
}

func (ns *NotificationService) SettlementRejected(stl *models.CleaningSettlement, reason string) {
	ns.emit(stl.TenantID, &stl.UserID, events.EventSettlementRejected,
		"Settlement rejected",
		fmt.Sprintf("Settlement %s rejected: %s", stl.Reference, reason))
}

func (ns *NotificationService) PaymentRecorded(stl *models.CleaningSettlement, payment *models.CleaningPayment, outstanding float64) {
	ns.emit(stl.TenantID, &stl.UserID, events.EventPaymentRecorded,
		"Payment recorded",
		fmt.Sprintf("Payment of %s recorded for settlement %s, outstanding %s",
			utils.FormatCurrency(payment.Amount), stl.Reference, utils.FormatCurrency(outstanding)))
}

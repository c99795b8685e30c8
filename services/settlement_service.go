package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stayops/housekeeping-app/models"
	"github.com/stayops/housekeeping-app/utils"
)

// Settlement statuses
const (
	SettlementStatusSubmitted = "submitted"
	SettlementStatusApproved  = "approved"
	SettlementStatusRejected  = "rejected"
	SettlementStatusPaid      = "paid"
)

// MinReviewNotesLen is the shortest acceptable rejection reason.
const MinReviewNotesLen = 5

var (
	ErrSettlementExists       = errors.New("a settlement already exists for this worker and day")
	ErrNoUnsettledTasks       = errors.New("no unsettled completed tasks for this day")
	ErrInvalidSettlementState = errors.New("settlement is not in a state allowing this operation")
	ErrReviewNotesTooShort    = errors.New("rejection reason is too short")
	ErrRateMissing            = errors.New("no cleaning rate configured for property type and task type")
	ErrInvalidPaymentAmount   = errors.New("payment amount must be positive")
)

// SettlementService builds settlements from completed tasks and
// drives them through submitted -> approved -> paid (or rejected).
type SettlementService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewSettlementService(db *gorm.DB, notifier *NotificationService) *SettlementService {
	return &SettlementService{db: db, notifier: notifier}
}

// Build aggregates the worker's completed, unsettled tasks for the
// given day into an immutable settlement. A zero day means today in
// the tenant's local calendar. Steps run in one transaction; partial
// insertion cannot occur.
func (s *SettlementService) Build(userID uint, day time.Time) (*models.CleaningSettlement, error) {
	var settlement models.CleaningSettlement

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}

		var tenant models.Tenant
		if err := tx.First(&tenant, user.TenantID).Error; err != nil {
			return err
		}

		loc, err := time.LoadLocation(tenant.Timezone)
		if err != nil {
			loc = time.UTC
		}
		if day.IsZero() {
			day = time.Now().In(loc)
		}
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
		dayEnd := dayStart.AddDate(0, 0, 1)

		// Rejected settlements do not block a rebuild for the same
		// day; they also free their tasks below.
		var existing int64
		if err := tx.Model(&models.CleaningSettlement{}).
			Where("user_id = ? AND settlement_date = ? AND status <> ?",
				userID, dayStart, SettlementStatusRejected).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrSettlementExists
		}

		// Tasks referenced by an item of any non-rejected settlement
		// are excluded, even across days: a task finished after
		// midnight must not settle twice. Rejected settlements free
		// their tasks for the next build.
		settledTaskIDs := tx.Model(&models.CleaningSettlementItem{}).
			Select("cleaning_settlement_items.cleaning_task_id").
			Joins("JOIN cleaning_settlements ON cleaning_settlements.id = cleaning_settlement_items.settlement_id").
			Where("cleaning_settlements.status <> ?", SettlementStatusRejected)

		var tasks []models.CleaningTask
		if err := tx.Preload("Property").Preload("Property.PropertyType").
			Where("completed_by = ? AND status = ?", userID, TaskStatusCompleted).
			Where("completed_at >= ? AND completed_at < ?", dayStart, dayEnd).
			Where("id NOT IN (?)", settledTaskIDs).
			Find(&tasks).Error; err != nil {
			return err
		}
		if len(tasks) == 0 {
			return ErrNoUnsettledTasks
		}

		settlement = models.CleaningSettlement{
			Reference:      uuid.NewString(),
			TenantID:       user.TenantID,
			UserID:         userID,
			SettlementDate: dayStart,
			Status:         SettlementStatusSubmitted,
			SubmittedAt:    time.Now(),
		}
		if err := tx.Create(&settlement).Error; err != nil {
			return err
		}

		var total float64
		for _, task := range tasks {
			var rate models.CleaningRate
			if err := tx.Where("tenant_id = ? AND property_type_id = ? AND task_type = ?",
				task.TenantID, task.Property.PropertyTypeID, task.TaskType).
				First(&rate).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: property type %d, task type %s",
						ErrRateMissing, task.Property.PropertyTypeID, task.TaskType)
				}
				return err
			}

			item := models.CleaningSettlementItem{
				SettlementID:        settlement.ID,
				CleaningTaskID:      task.ID,
				Rate:                rate.Rate,
				WorkDurationMinutes: workDuration(task),
				PropertyName:        task.Property.Name,
				PropertyTypeName:    task.Property.PropertyType.Name,
				TaskType:            task.TaskType,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			total += rate.Rate
		}

		settlement.TotalTasks = len(tasks)
		settlement.TotalAmount = total
		return tx.Model(&settlement).Updates(map[string]interface{}{
			"total_tasks":  settlement.TotalTasks,
			"total_amount": settlement.TotalAmount,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Settlement %s built for worker %d: %d tasks, total %.2f",
		settlement.Reference, userID, settlement.TotalTasks, settlement.TotalAmount)
	s.notifier.SettlementSubmitted(&settlement)
	return s.reload(settlement.ID)
}

// Approve moves a submitted settlement to approved.
func (s *SettlementService) Approve(settlementID, reviewerID uint) (*models.CleaningSettlement, error) {
	result := s.db.Model(&models.CleaningSettlement{}).
		Where("id = ? AND status = ?", settlementID, SettlementStatusSubmitted).
		Updates(map[string]interface{}{
			"status":      SettlementStatusApproved,
			"reviewed_by": reviewerID,
			"reviewed_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrInvalidSettlementState
	}

	stl, err := s.reload(settlementID)
	if err != nil {
		return nil, err
	}
	s.notifier.SettlementApproved(stl)
	return stl, nil
}

// Reject is terminal for the settlement; the underlying tasks become
// settleable again on the next build. The reason is required.
func (s *SettlementService) Reject(settlementID, reviewerID uint, reason string) (*models.CleaningSettlement, error) {
	if len(strings.TrimSpace(reason)) < MinReviewNotesLen {
		return nil, ErrReviewNotesTooShort
	}

	result := s.db.Model(&models.CleaningSettlement{}).
		Where("id = ? AND status = ?", settlementID, SettlementStatusSubmitted).
		Updates(map[string]interface{}{
			"status":       SettlementStatusRejected,
			"reviewed_by":  reviewerID,
			"reviewed_at":  time.Now(),
			"review_notes": reason,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrInvalidSettlementState
	}

	stl, err := s.reload(settlementID)
	if err != nil {
		return nil, err
	}
	s.notifier.SettlementRejected(stl, reason)
	return stl, nil
}

// RecordPayment inserts a ledger entry for up to the outstanding
// balance of an approved settlement and flips it to paid once the
// cumulative payments reach the total.
func (s *SettlementService) RecordPayment(settlementID uint, amount float64, method string, paidBy uint) (*models.CleaningPayment, error) {
	if amount <= 0 {
		return nil, ErrInvalidPaymentAmount
	}
	if method == "" {
		method = "cash"
	}

	var payment models.CleaningPayment
	var settlement models.CleaningSettlement
	var outstanding float64

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&settlement, settlementID).Error; err != nil {
			return err
		}
		if settlement.Status != SettlementStatusApproved {
			return ErrInvalidSettlementState
		}

		var paid float64
		if err := tx.Model(&models.CleaningPayment{}).
			Where("settlement_id = ?", settlementID).
			Select("COALESCE(SUM(amount), 0)").Scan(&paid).Error; err != nil {
			return err
		}

		outstanding = settlement.TotalAmount - paid
		if outstanding <= 0 {
			return ErrInvalidSettlementState
		}
		if amount > outstanding {
			amount = outstanding
		}

		payment = models.CleaningPayment{
			SettlementID:  settlementID,
			Amount:        amount,
			PaymentDate:   time.Now(),
			PaymentMethod: method,
			PaidBy:        paidBy,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		outstanding -= amount
		if outstanding <= 0 {
			result := tx.Model(&models.CleaningSettlement{}).
				Where("id = ? AND status = ?", settlementID, SettlementStatusApproved).
				Update("status", SettlementStatusPaid)
			if result.Error != nil {
				return result.Error
			}
			settlement.Status = SettlementStatusPaid
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Payment of %.2f recorded for settlement %d (outstanding %.2f)",
		payment.Amount, settlementID, outstanding)
	s.notifier.PaymentRecorded(&settlement, &payment, outstanding)
	return &payment, nil
}

// workDuration is the started-to-completed span in whole minutes,
// zero when either timestamp is missing.
func workDuration(task models.CleaningTask) int {
	if task.StartedAt == nil || task.CompletedAt == nil {
		return 0
	}
	return int(task.CompletedAt.Sub(*task.StartedAt).Minutes())
}

func (s *SettlementService) reload(id uint) (*models.CleaningSettlement, error) {
	var stl models.CleaningSettlement
	if err := s.db.Preload("Items").Preload("User").First(&stl, id).Error; err != nil {
		return nil, err
	}
	return &stl, nil
}

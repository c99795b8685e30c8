package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/stayops/housekeeping-app/models"
	"github.com/stayops/housekeeping-app/utils"
)

var (
	ErrCheckoutAlreadyReported = errors.New("checkout already reported for this reservation")
	ErrCheckoutNotReported     = errors.New("no reported checkout to clear")
)

// ReportService reacts to the actual checkout/checkin timestamps of a
// reservation being set or cleared. The reservation update and the
// task mutation happen in one transaction.
type ReportService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewReportService(db *gorm.DB, notifier *NotificationService) *ReportService {
	return &ReportService{db: db, notifier: notifier}
}

// ReportCheckout handles the null -> set transition of
// actual_checkout_time. The checkout task is reset to pending and
// stamped as reported (its assignment, if any, stays in place so the
// task is immediately workable), or created if the generator's task
// is missing.
func (s *ReportService) ReportCheckout(reservationID uint) (*models.Reservation, error) {
	var res models.Reservation

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Property").First(&res, reservationID).Error; err != nil {
			return err
		}
		if res.ActualCheckoutTime != nil {
			return ErrCheckoutAlreadyReported
		}

		now := time.Now()

		task, err := findCheckoutTask(tx, res.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if task != nil {
			if err := tx.Model(task).Updates(map[string]interface{}{
				"status":               TaskStatusPending,
				"is_priority":          true,
				"checkout_reported_at": now,
			}).Error; err != nil {
				return err
			}
		} else {
			task = &models.CleaningTask{
				TenantID:           res.TenantID,
				PropertyID:         res.PropertyID,
				ReservationID:      &res.ID,
				TaskType:           TaskTypeCheckOut,
				ScheduledDate:      now,
				Status:             TaskStatusPending,
				IsPriority:         true,
				CheckoutReportedAt: &now,
			}
			if err := tx.Create(task).Error; err != nil {
				return err
			}
		}

		res.ActualCheckoutTime = &now
		res.Status = models.ReservationStatusCheckedOut
		return tx.Save(&res).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifier.CheckoutReported(&res, &res.Property)
	return &res, nil
}

// ClearCheckout handles the set -> null transition, e.g. when a guest
// status is reverted. A never-started checkout task is deleted
// outright; a started one is reset to pending with its assignment
// cleared instead, so in-flight work is not silently discarded.
func (s *ReportService) ClearCheckout(reservationID uint) (*models.Reservation, error) {
	var res models.Reservation

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&res, reservationID).Error; err != nil {
			return err
		}
		if res.ActualCheckoutTime == nil {
			return ErrCheckoutNotReported
		}

		task, err := findCheckoutTask(tx, res.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if task != nil {
			if task.StartedAt == nil && task.Status == TaskStatusPending {
				if err := tx.Delete(task).Error; err != nil {
					return err
				}
				utils.InfoLogger.Printf("Deleted unstarted checkout task %d for reservation %d", task.ID, res.ID)
			} else {
				if err := tx.Model(task).Updates(map[string]interface{}{
					"status":               TaskStatusPending,
					"is_priority":          false,
					"assigned_to":          nil,
					"assigned_at":          nil,
					"started_at":           nil,
					"checkout_reported_at": nil,
				}).Error; err != nil {
					return err
				}
				utils.InfoLogger.Printf("Reset checkout task %d for reservation %d", task.ID, res.ID)
			}
		}

		res.ActualCheckoutTime = nil
		if res.ActualCheckinTime != nil {
			res.Status = models.ReservationStatusCheckedIn
		} else {
			res.Status = models.ReservationStatusActive
		}
		return tx.Save(&res).Error
	})
	if err != nil {
		return nil, err
	}

	return &res, nil
}

// ReportCheckin records the actual checkin time. No task is touched;
// only the notification goes out.
func (s *ReportService) ReportCheckin(reservationID uint) (*models.Reservation, error) {
	var res models.Reservation

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Property").First(&res, reservationID).Error; err != nil {
			return err
		}

		now := time.Now()
		res.ActualCheckinTime = &now
		res.Status = models.ReservationStatusCheckedIn
		return tx.Save(&res).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifier.CheckinReported(&res, &res.Property)
	return &res, nil
}

// findCheckoutTask returns the reservation's checkout-type task. The
// generator may have typed it deep_cleaning when the counter was due,
// so both types qualify.
func findCheckoutTask(tx *gorm.DB, reservationID uint) (*models.CleaningTask, error) {
	var task models.CleaningTask
	err := tx.Where("reservation_id = ? AND task_type IN (?)",
		reservationID, []string{TaskTypeCheckOut, TaskTypeDeepCleaning}).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

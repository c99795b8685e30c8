package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/stayops/housekeeping-app/models"
	"github.com/stayops/housekeeping-app/utils"
)

// Task types
const (
	TaskTypeCheckOut     = "check_out"
	TaskTypeStayOver     = "stay_over"
	TaskTypeDeepCleaning = "deep_cleaning"
)

// Task statuses
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusCancelled  = "cancelled"
)

// TaskGenerator derives cleaning tasks from a new reservation. It
// runs exactly once, inside the reservation-create transaction;
// later reservation edits go through ReportService instead.
type TaskGenerator struct {
	db *gorm.DB
}

func NewTaskGenerator(db *gorm.DB) *TaskGenerator {
	return &TaskGenerator{db: db}
}

// CreateReservationWithTasks inserts the reservation and all derived
// tasks atomically; a failed task insert rolls the reservation back.
func (g *TaskGenerator) CreateReservationWithTasks(res *models.Reservation) ([]models.CleaningTask, error) {
	var tasks []models.CleaningTask

	err := g.db.Transaction(func(tx *gorm.DB) error {
		var tenant models.Tenant
		if err := tx.First(&tenant, res.TenantID).Error; err != nil {
			return fmt.Errorf("tenant lookup failed: %w", err)
		}

		var property models.Property
		if err := tx.Where("id = ? AND tenant_id = ?", res.PropertyID, res.TenantID).
			First(&property).Error; err != nil {
			return fmt.Errorf("property lookup failed: %w", err)
		}

		if err := tx.Create(res).Error; err != nil {
			return err
		}

		tasks = GenerateTasks(res, &tenant, property.CleaningCount)
		for i := range tasks {
			if err := tx.Create(&tasks[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Reservation %d created with %d cleaning tasks", res.ID, len(tasks))
	return tasks, nil
}

// GenerateTasks computes the task set for a reservation: one
// checkout-type task on the checkout date (typed deep_cleaning when
// the property's counter is about to reach the tenant threshold) and
// one stay_over task per interval multiple strictly before checkout.
func GenerateTasks(res *models.Reservation, tenant *models.Tenant, cleaningCount int) []models.CleaningTask {
	checkoutType := TaskTypeCheckOut
	if tenant.DeepCleaningInterval > 0 && cleaningCount+1 >= tenant.DeepCleaningInterval {
		checkoutType = TaskTypeDeepCleaning
	}

	tasks := []models.CleaningTask{{
		TenantID:      res.TenantID,
		PropertyID:    res.PropertyID,
		ReservationID: &res.ID,
		TaskType:      checkoutType,
		ScheduledDate: res.CheckOutDate,
		Status:        TaskStatusPending,
	}}

	interval := tenant.StayOverInterval
	if interval <= 0 {
		return tasks
	}

	nights := stayNights(res.CheckInDate, res.CheckOutDate)
	if nights <= interval {
		return tasks
	}

	for day := interval; ; day += interval {
		date := res.CheckInDate.AddDate(0, 0, day)
		if !date.Before(res.CheckOutDate) {
			break
		}
		tasks = append(tasks, models.CleaningTask{
			TenantID:      res.TenantID,
			PropertyID:    res.PropertyID,
			ReservationID: &res.ID,
			TaskType:      TaskTypeStayOver,
			ScheduledDate: date,
			Status:        TaskStatusPending,
		})
	}

	return tasks
}

// stayNights counts whole days between two calendar dates.
func stayNights(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	return int(out.Sub(in).Hours() / 24)
}

package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/stayops/housekeeping-app/models"
	"github.com/stayops/housekeeping-app/utils"
)

// Precondition failures. These are benign "refresh and re-view"
// signals, not faults: the caller re-queries instead of retrying the
// same mutation.
var (
	ErrTaskUnavailable  = errors.New("task is no longer available")
	ErrWorkerBusy       = errors.New("worker already has an active task")
	ErrInvalidTaskState = errors.New("task is not in a state allowing this operation")
)

// TaskLifecycle drives a task through pending -> in_progress ->
// completed. Every transition is a single guarded UPDATE; zero
// affected rows means another caller won the race.
type TaskLifecycle struct {
	db *gorm.DB
}

func NewTaskLifecycle(db *gorm.DB) *TaskLifecycle {
	return &TaskLifecycle{db: db}
}

// Take assigns a pending, unassigned task to a worker.
func (s *TaskLifecycle) Take(taskID, workerID uint) (*models.CleaningTask, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureNoActiveTask(tx, workerID, 0); err != nil {
			return err
		}

		result := tx.Model(&models.CleaningTask{}).
			Where("id = ? AND assigned_to IS NULL AND status = ?", taskID, TaskStatusPending).
			Updates(map[string]interface{}{
				"assigned_to": workerID,
				"assigned_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTaskUnavailable
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.reload(taskID)
}

// Start moves the worker's own pending task to in_progress.
func (s *TaskLifecycle) Start(taskID, workerID uint) (*models.CleaningTask, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// The task being started is itself pending and assigned to the
		// worker, so it is excluded from the active-task check.
		if err := ensureNoActiveTask(tx, workerID, taskID); err != nil {
			return err
		}

		result := tx.Model(&models.CleaningTask{}).
			Where("id = ? AND assigned_to = ? AND status = ?", taskID, workerID, TaskStatusPending).
			Updates(map[string]interface{}{
				"status":     TaskStatusInProgress,
				"started_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInvalidTaskState
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.reload(taskID)
}

// Complete finishes the worker's in_progress task and updates the
// property's rolling counter in the same transaction: check_out
// increments it, deep_cleaning resets it to zero, stay_over never
// touches it.
func (s *TaskLifecycle) Complete(taskID, workerID uint) (*models.CleaningTask, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var task models.CleaningTask
		if err := tx.First(&task, taskID).Error; err != nil {
			return err
		}

		result := tx.Model(&models.CleaningTask{}).
			Where("id = ? AND assigned_to = ? AND status = ?", taskID, workerID, TaskStatusInProgress).
			Updates(map[string]interface{}{
				"status":       TaskStatusCompleted,
				"completed_at": time.Now(),
				"completed_by": workerID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInvalidTaskState
		}

		switch task.TaskType {
		case TaskTypeCheckOut:
			if err := tx.Model(&models.Property{}).
				Where("id = ?", task.PropertyID).
				UpdateColumn("cleaning_count", gorm.Expr("cleaning_count + 1")).Error; err != nil {
				return err
			}
		case TaskTypeDeepCleaning:
			if err := tx.Model(&models.Property{}).
				Where("id = ?", task.PropertyID).
				UpdateColumn("cleaning_count", 0).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Task %d completed by worker %d", taskID, workerID)
	return s.reload(taskID)
}

// Cancel is an administrative action, allowed only while the task is
// still pending. Started tasks are reset, never cancelled.
func (s *TaskLifecycle) Cancel(taskID uint) (*models.CleaningTask, error) {
	result := s.db.Model(&models.CleaningTask{}).
		Where("id = ? AND status = ?", taskID, TaskStatusPending).
		Update("status", TaskStatusCancelled)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrInvalidTaskState
	}

	return s.reload(taskID)
}

func (s *TaskLifecycle) reload(taskID uint) (*models.CleaningTask, error) {
	var task models.CleaningTask
	if err := s.db.Preload("Property").First(&task, taskID).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ensureNoActiveTask rejects a take/start while the worker already
// holds another pending or in_progress task. On Postgres the partial
// unique index in database/ backs this check; elsewhere it is the
// only enforcement.
func ensureNoActiveTask(tx *gorm.DB, workerID, excludeTaskID uint) error {
	var count int64
	query := tx.Model(&models.CleaningTask{}).
		Where("assigned_to = ? AND status IN (?)", workerID,
			[]string{TaskStatusPending, TaskStatusInProgress})
	if excludeTaskID != 0 {
		query = query.Where("id <> ?", excludeTaskID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrWorkerBusy
	}
	return nil
}

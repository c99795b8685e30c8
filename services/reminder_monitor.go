package services

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/stayops/housekeeping-app/events"
	"github.com/stayops/housekeeping-app/models"
	"github.com/stayops/housekeeping-app/utils"
)

// TaskReminderMonitor periodically broadcasts a staff notification
// for tasks that have been sitting unclaimed past their scheduled
// date. It never mutates tasks.
type TaskReminderMonitor struct {
	db       *gorm.DB
	Interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewTaskReminderMonitor(db *gorm.DB) *TaskReminderMonitor {
	return &TaskReminderMonitor{
		db:       db,
		Interval: 15 * time.Minute,
		stopChan: make(chan struct{}),
	}
}

// Start launches the checker goroutine.
func (m *TaskReminderMonitor) Start() {
	go m.run()
	utils.InfoLogger.Println("Task reminder monitor started")
}

// Stop terminates the checker goroutine.
func (m *TaskReminderMonitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
	})
}

func (m *TaskReminderMonitor) run() {
	ticker := time.NewTicker(m.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CheckStaleTasks()
		case <-m.stopChan:
			return
		}
	}
}

// CheckStaleTasks finds pending, unassigned tasks whose scheduled
// date has passed and announces them.
func (m *TaskReminderMonitor) CheckStaleTasks() {
	var tasks []models.CleaningTask

	today := time.Now()
	cutoff := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	err := m.db.Preload("Property").
		Where("status = ? AND assigned_to IS NULL AND scheduled_date < ?", TaskStatusPending, cutoff).
		Find(&tasks).Error
	if err != nil {
		utils.ErrorLogger.Printf("Error checking stale tasks: %v", err)
		return
	}

	for _, task := range tasks {
		events.BroadcastStaffNotification(fmt.Sprintf(
			"Task #%d (%s at %s) is overdue since %s and still unclaimed",
			task.ID, task.TaskType, task.Property.Name,
			task.ScheduledDate.Format("2006-01-02")))
	}

	if len(tasks) > 0 {
		utils.InfoLogger.Printf("Reminder sent for %d overdue tasks", len(tasks))
	}
}

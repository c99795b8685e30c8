package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stayops/housekeeping-app/models"
)

func TestReportCheckoutResetsExistingTask(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTenant(t, db)
	notifier := NewNotificationService(db)
	reports := NewReportService(db, notifier)
	generator := NewTaskGenerator(db)
	lifecycle := NewTaskLifecycle(db)

	res := models.Reservation{
		TenantID:     fx.Tenant.ID,
		PropertyID:   fx.Property.ID,
		CheckInDate:  date(2024, time.January, 1),
		CheckOutDate: date(2024, time.January, 3),
		Status:       models.ReservationStatusActive,
	}
	tasks, err := generator.CreateReservationWithTasks(&res)
	assert.NoError(t, err)
	assert.Len(t, tasks, 1)

	// A worker already holds the task; reporting must not clear the
	// assignment.
	_, err = lifecycle.Take(tasks[0].ID, fx.Worker.ID)
	assert.NoError(t, err)

	updated, err := reports.ReportCheckout(res.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCheckedOut, updated.Status)
	assert.NotNil(t, updated.ActualCheckoutTime)

	var task models.CleaningTask
	db.First(&task, tasks[0].ID)
	assert.Equal(t, TaskStatusPending, task.Status)
	assert.True(t, task.IsPriority)
	assert.NotNil(t, task.CheckoutReportedAt)
	assert.NotNil(t, task.AssignedTo)
	assert.Equal(t, fx.Worker.ID, *task.AssignedTo)

	// Reporting twice is a precondition failure.
	_, err = reports.ReportCheckout(res.ID)
	assert.ErrorIs(t, err, ErrCheckoutAlreadyReported)

	// A checkout notification was emitted.
	var notifs int64
	db.Model(&models.Notification{}).Where("event = ?", "checkout_reported").Count(&notifs)
	assert.EqualValues(t, 1, notifs)
}

func TestReportCheckoutCreatesMissingTask(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTenant(t, db)
	reports := NewReportService(db, NewNotificationService(db))

	res := models.Reservation{
		TenantID:     fx.Tenant.ID,
		PropertyID:   fx.Property.ID,
		CheckInDate:  date(2024, time.January, 1),
		CheckOutDate: date(2024, time.January, 3),
		Status:       models.ReservationStatusActive,
	}
	assert.NoError(t, db.Create(&res).Error)

	_, err := reports.ReportCheckout(res.ID)
	assert.NoError(t, err)

	var task models.CleaningTask
	err = db.Where("reservation_id = ?", res.ID).First(&task).Error
	assert.NoError(t, err)
	assert.Equal(t, TaskTypeCheckOut, task.TaskType)
	assert.Equal(t, TaskStatusPending, task.Status)
	assert.True(t, task.IsPriority)
	assert.NotNil(t, task.CheckoutReportedAt)
}

func TestClearCheckoutDeletesUnstartedTask(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTenant(t, db)
	reports := NewReportService(db, NewNotificationService(db))
	generator := NewTaskGenerator(db)

	res := models.Reservation{
		TenantID:     fx.Tenant.ID,
		PropertyID:   fx.Property.ID,
		CheckInDate:  date(2024, time.January, 1),
		CheckOutDate: date(2024, time.January, 3),
		Status:       models.ReservationStatusActive,
	}
	tasks, err := generator.CreateReservationWithTasks(&res)
	assert.NoError(t, err)

	_, err = reports.ReportCheckout(res.ID)
	assert.NoError(t, err)

	updated, err := reports.ClearCheckout(res.ID)
	assert.NoError(t, err)
	assert.Nil(t, updated.ActualCheckoutTime)
	assert.Equal(t, models.ReservationStatusActive, updated.Status)

	// Never started: the task row is gone entirely.
	var count int64
	db.Model(&models.CleaningTask{}).Where("id = ?", tasks[0].ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestClearCheckoutResetsStartedTask(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTenant(t, db)
	reports := NewReportService(db, NewNotificationService(db))
	generator := NewTaskGenerator(db)
	lifecycle := NewTaskLifecycle(db)

	res := models.Reservation{
		TenantID:     fx.Tenant.ID,
		PropertyID:   fx.Property.ID,
		CheckInDate:  date(2024, time.January, 1),
		CheckOutDate: date(2024, time.January, 3),
		Status:       models.ReservationStatusActive,
	}
	tasks, err := generator.CreateReservationWithTasks(&res)
	assert.NoError(t, err)

	_, err = reports.ReportCheckout(res.ID)
	assert.NoError(t, err)

	// Work starts before the checkout is reverted.
	_, err = lifecycle.Take(tasks[0].ID, fx.Worker.ID)
	assert.NoError(t, err)
	_, err = lifecycle.Start(tasks[0].ID, fx.Worker.ID)
	assert.NoError(t, err)

	_, err = reports.ClearCheckout(res.ID)
	assert.NoError(t, err)

	// In-flight work is not discarded: the row survives, reset to
	// pending with assignment cleared.
	var task models.CleaningTask
	assert.NoError(t, db.First(&task, tasks[0].ID).Error)
	assert.Equal(t, TaskStatusPending, task.Status)
	assert.False(t, task.IsPriority)
	assert.Nil(t, task.AssignedTo)
	assert.Nil(t, task.AssignedAt)
	assert.Nil(t, task.StartedAt)
	assert.Nil(t, task.CheckoutReportedAt)
}

func TestClearCheckoutWithoutReport(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTenant(t, db)
	reports := NewReportService(db, NewNotificationService(db))

	res := models.Reservation{
		TenantID:     fx.Tenant.ID,
		PropertyID:   fx.Property.ID,
		CheckInDate:  date(2024, time.January, 1),
		CheckOutDate: date(2024, time.January, 3),
		Status:       models.ReservationStatusActive,
	}
	assert.NoError(t, db.Create(&res).Error)

	_, err := reports.ClearCheckout(res.ID)
	assert.ErrorIs(t, err, ErrCheckoutNotReported)
}

func TestReportCheckinTouchesNoTasks(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTenant(t, db)
	reports := NewReportService(db, NewNotificationService(db))
	generator := NewTaskGenerator(db)

	res := models.Reservation{
		TenantID:     fx.Tenant.ID,
		PropertyID:   fx.Property.ID,
		CheckInDate:  date(2024, time.January, 1),
		CheckOutDate: date(2024, time.January, 10),
		Status:       models.ReservationStatusActive,
	}
	tasks, err := generator.CreateReservationWithTasks(&res)
	assert.NoError(t, err)

	updated, err := reports.ReportCheckin(res.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCheckedIn, updated.Status)
	assert.NotNil(t, updated.ActualCheckinTime)

	var count int64
	db.Model(&models.CleaningTask{}).Where("reservation_id = ?", res.ID).Count(&count)
	assert.EqualValues(t, len(tasks), count)

	var notifs int64
	db.Model(&models.Notification{}).Where("event = ?", "checkin_reported").Count(&notifs)
	assert.EqualValues(t, 1, notifs)
}

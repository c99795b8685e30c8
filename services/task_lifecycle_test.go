package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stayops/housekeeping-app/models"
)

func TestTakeTask(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTenant(t, db)
	lifecycle := NewTaskLifecycle(db)
	task := seedPendingTask(t, db, fx, TaskTypeCheckOut)

	taken, err := lifecycle.Take(task.ID, fx.Worker.ID)
	assert.NoError(t, err)
	assert.Equal(t, fx.Worker.ID, *taken.AssignedTo)
	assert.NotNil(t, taken.AssignedAt)

	// Second worker loses the race: zero rows affected.
	_, err = lifecycle.Take(task.ID, fx.Worker2.ID)
	assert.ErrorIs(t, err, ErrTaskUnavailable)
}

func TestTakeWhileHoldingActiveTask(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTenant(t, db)
	lifecycle := NewTaskLifecycle(db)

	first := seedPendingTask(t, db, fx, TaskTypeCheckOut)
	second := seedPendingTask(t, db, fx, TaskTypeStayOver)

	_, err := lifecycle.Take(first.ID, fx.Worker.ID)
	assert.NoError(t, err)

	_, err = lifecycle.Take(second.ID, fx.Worker.ID)
	assert.ErrorIs(t, err, ErrWorkerBusy)
}

func TestStartRequiresOwnPendingTask(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTenant(t, db)
	lifecycle := NewTaskLifecycle(db)
	task := seedPendingTask(t, db, fx, TaskTypeCheckOut)

	// Unassigned task cannot be started.
	_, err := lifecycle.Start(task.ID, fx.Worker.ID)
	assert.ErrorIs(t, err, ErrInvalidTaskState)

	_, err = lifecycle.Take(task.ID, fx.Worker.ID)
	assert.NoError(t, err)

	// Someone else's task cannot be started either.
	_, err = lifecycle.Start(task.ID, fx.Worker2.ID)
	assert.ErrorIs(t, err, ErrInvalidTaskState)

	started, err := lifecycle.Start(task.ID, fx.Worker.ID)
	assert.NoError(t, err)
	assert.Equal(t, TaskStatusInProgress, started.Status)
	assert.NotNil(t, started.StartedAt)
}

func TestCompleteIncrementsCleaningCount(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTenant(t, db)
	lifecycle := NewTaskLifecycle(db)
	task := seedPendingTask(t, db, fx, TaskTypeCheckOut)

	_, err := lifecycle.Take(task.ID, fx.Worker.ID)
	assert.NoError(t, err)
	_, err = lifecycle.Start(task.ID, fx.Worker.ID)
	assert.NoError(t, err)

	completed, err := lifecycle.Complete(task.ID, fx.Worker.ID)
	assert.NoError(t, err)
	assert.Equal(t, TaskStatusCompleted, completed.Status)
	assert.Equal(t, fx.Worker.ID, *completed.CompletedBy)

	var property models.Property
	db.First(&property, fx.Property.ID)
	assert.Equal(t, 1, property.CleaningCount)

	// Completing twice is a precondition failure.
	_, err = lifecycle.Complete(task.ID, fx.Worker.ID)
	assert.ErrorIs(t, err, ErrInvalidTaskState)
}

func TestCompleteRequiresInProgress(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTenant(t, db)
	lifecycle := NewTaskLifecycle(db)
	task := seedPendingTask(t, db, fx, TaskTypeCheckOut)

	_, err := lifecycle.Take(task.ID, fx.Worker.ID)
	assert.NoError(t, err)

	// Still pending: cannot complete.
	_, err = lifecycle.Complete(task.ID, fx.Worker.ID)
	assert.ErrorIs(t, err, ErrInvalidTaskState)
}

func TestDeepCleaningResetsCounter(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTenant(t, db)
	lifecycle := NewTaskLifecycle(db)

	db.Model(&models.Property{}).Where("id = ?", fx.Property.ID).
		UpdateColumn("cleaning_count", 10)

	task := seedPendingTask(t, db, fx, TaskTypeDeepCleaning)
	_, err := lifecycle.Take(task.ID, fx.Worker.ID)
	assert.NoError(t, err)
	_, err = lifecycle.Start(task.ID, fx.Worker.ID)
	assert.NoError(t, err)
	_, err = lifecycle.Complete(task.ID, fx.Worker.ID)
	assert.NoError(t, err)

	var property models.Property
	db.First(&property, fx.Property.ID)
	assert.Equal(t, 0, property.CleaningCount)
}

func TestStayOverLeavesCounterAlone(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTenant(t, db)
	lifecycle := NewTaskLifecycle(db)

	db.Model(&models.Property{}).Where("id = ?", fx.Property.ID).
		UpdateColumn("cleaning_count", 4)

	task := seedPendingTask(t, db, fx, TaskTypeStayOver)
	_, err := lifecycle.Take(task.ID, fx.Worker.ID)
	assert.NoError(t, err)
	_, err = lifecycle.Start(task.ID, fx.Worker.ID)
	assert.NoError(t, err)
	_, err = lifecycle.Complete(task.ID, fx.Worker.ID)
	assert.NoError(t, err)

	var property models.Property
	db.First(&property, fx.Property.ID)
	assert.Equal(t, 4, property.CleaningCount)
}

func TestCancelOnlyPendingTasks(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTenant(t, db)
	lifecycle := NewTaskLifecycle(db)

	task := seedPendingTask(t, db, fx, TaskTypeCheckOut)
	cancelled, err := lifecycle.Cancel(task.ID)
	assert.NoError(t, err)
	assert.Equal(t, TaskStatusCancelled, cancelled.Status)

	inProgress := seedPendingTask(t, db, fx, TaskTypeStayOver)
	_, err = lifecycle.Take(inProgress.ID, fx.Worker.ID)
	assert.NoError(t, err)
	_, err = lifecycle.Start(inProgress.ID, fx.Worker.ID)
	assert.NoError(t, err)

	_, err = lifecycle.Cancel(inProgress.ID)
	assert.ErrorIs(t, err, ErrInvalidTaskState)
}

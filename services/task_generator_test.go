package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stayops/housekeeping-app/models"
)

func TestGenerateTasksStayOverSchedule(t *testing.T) {
	tenant := &models.Tenant{StayOverInterval: 3, DeepCleaningInterval: 30}
	res := &models.Reservation{
		ID:           1,
		TenantID:     1,
		PropertyID:   1,
		CheckInDate:  date(2024, time.January, 1),
		CheckOutDate: date(2024, time.January, 10),
	}

	tasks := GenerateTasks(res, tenant, 0)

	assert.Len(t, tasks, 3)
	assert.Equal(t, TaskTypeCheckOut, tasks[0].TaskType)
	assert.Equal(t, date(2024, time.January, 10), tasks[0].ScheduledDate)

	assert.Equal(t, TaskTypeStayOver, tasks[1].TaskType)
	assert.Equal(t, date(2024, time.January, 4), tasks[1].ScheduledDate)
	assert.Equal(t, TaskTypeStayOver, tasks[2].TaskType)
	assert.Equal(t, date(2024, time.January, 7), tasks[2].ScheduledDate)
}

func TestGenerateTasksShortStay(t *testing.T) {
	tenant := &models.Tenant{StayOverInterval: 3, DeepCleaningInterval: 30}
	res := &models.Reservation{
		ID:           1,
		CheckInDate:  date(2024, time.March, 1),
		CheckOutDate: date(2024, time.March, 3),
	}

	tasks := GenerateTasks(res, tenant, 0)

	assert.Len(t, tasks, 1)
	assert.Equal(t, TaskTypeCheckOut, tasks[0].TaskType)
}

func TestGenerateTasksExactIntervalStay(t *testing.T) {
	// A stay of exactly the interval length gets no stay_over task.
	tenant := &models.Tenant{StayOverInterval: 3, DeepCleaningInterval: 30}
	res := &models.Reservation{
		ID:           1,
		CheckInDate:  date(2024, time.March, 1),
		CheckOutDate: date(2024, time.March, 4),
	}

	tasks := GenerateTasks(res, tenant, 0)
	assert.Len(t, tasks, 1)
}

func TestGenerateTasksDeepCleaningThreshold(t *testing.T) {
	tenant := &models.Tenant{StayOverInterval: 3, DeepCleaningInterval: 11}
	res := &models.Reservation{
		ID:           1,
		CheckInDate:  date(2024, time.May, 1),
		CheckOutDate: date(2024, time.May, 2),
	}

	// Counter one short of the threshold: the next checkout is a deep clean.
	tasks := GenerateTasks(res, tenant, 10)
	assert.Equal(t, TaskTypeDeepCleaning, tasks[0].TaskType)

	// Below the threshold it stays a regular checkout.
	tasks = GenerateTasks(res, tenant, 9)
	assert.Equal(t, TaskTypeCheckOut, tasks[0].TaskType)
}

func TestGenerateTasksStayOverCount(t *testing.T) {
	tenant := &models.Tenant{StayOverInterval: 3, DeepCleaningInterval: 30}

	for nights := 1; nights <= 15; nights++ {
		res := &models.Reservation{
			ID:           1,
			CheckInDate:  date(2024, time.June, 1),
			CheckOutDate: date(2024, time.June, 1).AddDate(0, 0, nights),
		}
		tasks := GenerateTasks(res, tenant, 0)

		want := 0
		if nights > tenant.StayOverInterval {
			want = (nights - 1) / tenant.StayOverInterval
		}

		stayOvers := 0
		for _, task := range tasks {
			if task.TaskType == TaskTypeStayOver {
				stayOvers++
				assert.True(t, task.ScheduledDate.Before(res.CheckOutDate),
					"stay_over on or after checkout for %d nights", nights)
			}
		}
		assert.Equal(t, want, stayOvers, "stay_over count for %d nights", nights)
	}
}

func TestCreateReservationWithTasks(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTenant(t, db)
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
	assert.NotZero(t, res.ID)
	assert.Len(t, tasks, 3)

	var count int64
	db.Model(&models.CleaningTask{}).Where("reservation_id = ?", res.ID).Count(&count)
	assert.EqualValues(t, 3, count)
}

func TestCreateReservationRollsBackOnFailure(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTenant(t, db)
	generator := NewTaskGenerator(db)

	res := models.Reservation{
		TenantID:     fx.Tenant.ID,
		PropertyID:   9999, // no such property
		CheckInDate:  date(2024, time.January, 1),
		CheckOutDate: date(2024, time.January, 5),
	}

	_, err := generator.CreateReservationWithTasks(&res)
	assert.Error(t, err)

	var reservations int64
	db.Model(&models.Reservation{}).Count(&reservations)
	assert.EqualValues(t, 0, reservations)
}

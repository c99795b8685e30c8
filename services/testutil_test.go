package services

import (
	"os"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stayops/housekeeping-app/models"
	"github.com/stayops/housekeeping-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.PropertyType{},
		&models.Property{},
		&models.Reservation{},
		&models.CleaningTask{},
		&models.CleaningRate{},
		&models.CleaningSettlement{},
		&models.CleaningSettlementItem{},
		&models.CleaningPayment{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// seedTenant creates a tenant with a property type, one property and
// two cleaner users, returning the created rows.
type fixture struct {
	Tenant   models.Tenant
	PType    models.PropertyType
	Property models.Property
	Worker   models.User
	Worker2  models.User
}

func seedTenant(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	tenant := models.Tenant{
		Name:                 "Coastal Rentals",
		Timezone:             "UTC",
		StayOverInterval:     3,
		DeepCleaningInterval: 11,
	}
	if err := db.Create(&tenant).Error; err != nil {
		t.Fatalf("seed tenant: %v", err)
	}

	ptype := models.PropertyType{TenantID: tenant.ID, Name: "Apartment"}
	if err := db.Create(&ptype).Error; err != nil {
		t.Fatalf("seed property type: %v", err)
	}

	property := models.Property{
		TenantID:       tenant.ID,
		PropertyTypeID: ptype.ID,
		Name:           "Seaview 12",
	}
	if err := db.Create(&property).Error; err != nil {
		t.Fatalf("seed property: %v", err)
	}

	worker := models.User{
		TenantID: tenant.ID,
		Name:     "Cleaner1",
		Email:    "cleaner1@example.com",
		Password: "secret",
		Role:     "cleaner",
	}
	if err := db.Create(&worker).Error; err != nil {
		t.Fatalf("seed worker: %v", err)
	}

	worker2 := models.User{
		TenantID: tenant.ID,
		Name:     "Cleaner2",
		Email:    "cleaner2@example.com",
		Password: "secret",
		Role:     "cleaner",
	}
	if err := db.Create(&worker2).Error; err != nil {
		t.Fatalf("seed worker2: %v", err)
	}

	return fixture{
		Tenant:   tenant,
		PType:    ptype,
		Property: property,
		Worker:   worker,
		Worker2:  worker2,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seedPendingTask inserts a pending, unassigned task.
func seedPendingTask(t *testing.T, db *gorm.DB, fx fixture, taskType string) models.CleaningTask {
	t.Helper()

	task := models.CleaningTask{
		TenantID:      fx.Tenant.ID,
		PropertyID:    fx.Property.ID,
		TaskType:      taskType,
		ScheduledDate: date(2024, 1, 10),
		Status:        TaskStatusPending,
	}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}

// seedCompletedTask inserts a task already completed by the worker at
// the given time.
func seedCompletedTask(t *testing.T, db *gorm.DB, fx fixture, taskType string, worker models.User, completedAt time.Time) models.CleaningTask {
	t.Helper()

	started := completedAt.Add(-45 * time.Minute)
	assigned := completedAt.Add(-1 * time.Hour)
	task := models.CleaningTask{
		TenantID:      fx.Tenant.ID,
		PropertyID:    fx.Property.ID,
		TaskType:      taskType,
		ScheduledDate: completedAt,
		Status:        TaskStatusCompleted,
		AssignedTo:    &worker.ID,
		AssignedAt:    &assigned,
		StartedAt:     &started,
		CompletedAt:   &completedAt,
		CompletedBy:   &worker.ID,
	}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("seed completed task: %v", err)
	}
	return task
}

// seedRate configures the rate for one task type on the fixture's
// property type.
func seedRate(t *testing.T, db *gorm.DB, fx fixture, taskType string, rate float64) {
	t.Helper()

	r := models.CleaningRate{
		TenantID:       fx.Tenant.ID,
		PropertyTypeID: fx.PType.ID,
		TaskType:       taskType,
		Rate:           rate,
	}
	if err := db.Create(&r).Error; err != nil {
		t.Fatalf("seed rate: %v", err)
	}
}

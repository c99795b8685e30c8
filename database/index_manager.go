package database

import (
	"fmt"

	"gorm.io/gorm"
)

// ApplyIndexes executes the raw DDL that AutoMigrate cannot express.
// The partial unique index makes "one active task per worker" a hard
// constraint instead of an application-level check; it only exists on
// Postgres, so other dialects (sqlite in tests) fall back to the
// application check alone.
func ApplyIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_one_active_task_per_worker
			ON cleaning_tasks (assigned_to)
			WHERE status IN ('pending', 'in_progress') AND assigned_to IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_cleaning_tasks_completed
			ON cleaning_tasks (completed_by, completed_at)
			WHERE status = 'completed'`,
		`CREATE INDEX IF NOT EXISTS idx_settlements_user_date
			ON cleaning_settlements (user_id, settlement_date)`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to apply index: %w", err)
		}
	}

	return nil
}

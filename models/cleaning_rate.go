package models

import (
	"time"
)

// CleaningRate maps (tenant, property type, task type) to the amount
// paid per completed task. Read-only to the engine; settlements
// resolve rates at build time.
type CleaningRate struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	TenantID       uint         `gorm:"not null;uniqueIndex:idx_rate_key" json:"tenant_id"`
	PropertyTypeID uint         `gorm:"not null;uniqueIndex:idx_rate_key" json:"property_type_id"`
	PropertyType   PropertyType `gorm:"foreignKey:PropertyTypeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	TaskType       string       `gorm:"type:varchar(20);not null;uniqueIndex:idx_rate_key" json:"task_type"`
	Rate           float64      `gorm:"type:decimal(10,2);not null" json:"rate"`
	CreatedAt      time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null" json:"updated_at"`
}

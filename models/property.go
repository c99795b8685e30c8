package models

import (
	"time"
)

type PropertyType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TenantID  uint      `gorm:"not null;index" json:"tenant_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// Property is a rentable unit. CleaningCount counts completed
// check_out tasks since the last deep clean; it is mutated only
// inside the task-completion transaction.
type Property struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	TenantID       uint         `gorm:"not null;index" json:"tenant_id"`
	Tenant         Tenant       `gorm:"foreignKey:TenantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	PropertyTypeID uint         `gorm:"not null" json:"property_type_id"`
	PropertyType   PropertyType `gorm:"foreignKey:PropertyTypeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"property_type"`
	Name           string       `gorm:"type:varchar(255);not null" json:"name"`
	CleaningCount  int          `gorm:"not null;default:0" json:"cleaning_count"`
	CreatedAt      time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null" json:"updated_at"`
}

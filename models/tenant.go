package models

import (
	"time"
)

// Tenant is one property-management operation. All other rows hang off
// a tenant and queries are always tenant scoped.
//
// DeepCleaningInterval has no default on purpose: the threshold is a
// business decision and must be chosen explicitly when the tenant is
// created.
type Tenant struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	Name                 string    `gorm:"type:varchar(255);not null" json:"name"`
	Timezone             string    `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	StayOverInterval     int       `gorm:"not null;default:3" json:"stay_over_interval"`
	DeepCleaningInterval int       `gorm:"not null" json:"deep_cleaning_interval"`
	CreatedAt            time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt            time.Time `gorm:"not null" json:"updated_at"`
}

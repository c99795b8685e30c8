package models

import (
	"time"
)

// CleaningTask is the unit of housekeeping work. ReservationID is nil
// for manual tasks. A task is never deleted once StartedAt is set.
type CleaningTask struct {
	ID                 uint         `gorm:"primaryKey" json:"id"`
	TenantID           uint         `gorm:"not null;index" json:"tenant_id"`
	PropertyID         uint         `gorm:"not null;index" json:"property_id"`
	Property           Property     `gorm:"foreignKey:PropertyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"property"`
	ReservationID      *uint        `gorm:"index" json:"reservation_id,omitempty"`
	Reservation        *Reservation `gorm:"foreignKey:ReservationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"reservation,omitempty"`
	TaskType           string       `gorm:"type:varchar(20);not null" json:"task_type"` // check_out, stay_over, deep_cleaning
	ScheduledDate      time.Time    `gorm:"type:date;not null" json:"scheduled_date"`
	Status             string       `gorm:"type:varchar(15);not null;default:'pending'" json:"status"`
	IsPriority         bool         `gorm:"not null;default:false" json:"is_priority"`
	AssignedTo         *uint        `gorm:"index" json:"assigned_to,omitempty"`
	Assignee           *User        `gorm:"foreignKey:AssignedTo;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"assignee,omitempty"`
	AssignedAt         *time.Time   `json:"assigned_at,omitempty"`
	StartedAt          *time.Time   `json:"started_at,omitempty"`
	CompletedAt        *time.Time   `json:"completed_at,omitempty"`
	CompletedBy        *uint        `json:"completed_by,omitempty"`
	CheckoutReportedAt *time.Time   `json:"checkout_reported_at,omitempty"`
	CreatedAt          time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time    `gorm:"not null" json:"updated_at"`
}

package models

import (
	"time"
)

// CleaningSettlement aggregates one worker's completed tasks for one
// day into a reviewable, payable claim. The item set is immutable
// once the settlement exists.
type CleaningSettlement struct {
	ID             uint                     `gorm:"primaryKey" json:"id"`
	Reference      string                   `gorm:"type:varchar(64);not null;uniqueIndex" json:"reference"`
	TenantID       uint                     `gorm:"not null;index" json:"tenant_id"`
	UserID         uint                     `gorm:"not null;index" json:"user_id"`
	User           User                     `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"user"`
	SettlementDate time.Time                `gorm:"type:date;not null" json:"settlement_date"`
	TotalTasks     int                      `gorm:"not null" json:"total_tasks"`
	TotalAmount    float64                  `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Status         string                   `gorm:"type:varchar(15);not null;default:'submitted'" json:"status"`
	SubmittedAt    time.Time                `gorm:"not null" json:"submitted_at"`
	ReviewedBy     *uint                    `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time               `json:"reviewed_at,omitempty"`
	ReviewNotes    string                   `gorm:"type:text" json:"review_notes,omitempty"`
	Items          []CleaningSettlementItem `gorm:"foreignKey:SettlementID" json:"items"`
	CreatedAt      time.Time                `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time                `gorm:"not null" json:"updated_at"`
}

// CleaningSettlementItem snapshots one settled task: the rate in
// effect at build time, the work duration, and enough property
// metadata to render the line without further queries.
type CleaningSettlementItem struct {
	ID                  uint         `gorm:"primaryKey" json:"id"`
	SettlementID        uint         `gorm:"not null;index" json:"settlement_id"`
	CleaningTaskID      uint         `gorm:"not null;index" json:"cleaning_task_id"`
	CleaningTask        CleaningTask `gorm:"foreignKey:CleaningTaskID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Rate                float64      `gorm:"type:decimal(10,2);not null" json:"rate"`
	WorkDurationMinutes int          `gorm:"not null;default:0" json:"work_duration_minutes"`
	PropertyName        string       `gorm:"type:varchar(255);not null" json:"property_name"`
	PropertyTypeName    string       `gorm:"type:varchar(100);not null" json:"property_type_name"`
	TaskType            string       `gorm:"type:varchar(20);not null" json:"task_type"`
	CreatedAt           time.Time    `gorm:"not null" json:"created_at"`
}

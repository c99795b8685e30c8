package models

import (
	"time"
)

const (
	ReservationStatusActive     = "active"
	ReservationStatusCheckedIn  = "checked_in"
	ReservationStatusCheckedOut = "checked_out"
	ReservationStatusCancelled  = "cancelled"
)

// Reservation is created by the booking flow; this core only reacts
// to its creation and to the actual checkin/checkout timestamps.
type Reservation struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	TenantID           uint       `gorm:"not null;index" json:"tenant_id"`
	PropertyID         uint       `gorm:"not null;index" json:"property_id"`
	Property           Property   `gorm:"foreignKey:PropertyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"property"`
	CheckInDate        time.Time  `gorm:"type:date;not null" json:"check_in_date"`
	CheckOutDate       time.Time  `gorm:"type:date;not null" json:"check_out_date"`
	Status             string     `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	ActualCheckinTime  *time.Time `json:"actual_checkin_time,omitempty"`
	ActualCheckoutTime *time.Time `json:"actual_checkout_time,omitempty"`
	CreatedAt          time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"not null" json:"updated_at"`
}

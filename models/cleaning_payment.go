package models

import (
	"time"
)

// CleaningPayment is one ledger entry against a settlement. Several
// partial payments may apply to the same settlement; it flips to
// 'paid' once the cumulative amount reaches the total.
type CleaningPayment struct {
	ID            uint               `gorm:"primaryKey" json:"id"`
	SettlementID  uint               `gorm:"not null;index" json:"settlement_id"`
	Settlement    CleaningSettlement `gorm:"foreignKey:SettlementID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Amount        float64            `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentDate   time.Time          `gorm:"not null" json:"payment_date"`
	PaymentMethod string             `gorm:"type:varchar(20);not null;default:'cash'" json:"payment_method"` // cash, bank_transfer
	PaidBy        uint               `gorm:"not null" json:"paid_by"`
	CreatedAt     time.Time          `gorm:"not null" json:"created_at"`
}

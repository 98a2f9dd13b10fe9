package models

import "gorm.io/gorm"

// Payment states. Transitions are one-directional: new payments either
// complete directly, pass through pending_3ds, or are deleted on failure.
const (
	PaymentStateNew               = "new"
	PaymentStatePending3DS        = "pending_3ds"
	PaymentStateCompleted         = "completed"
	PaymentStateRefunded          = "refunded"
	PaymentStatePartiallyRefunded = "partially_refunded"
)

// Payment is a charge attempt against a stored card for an order.
type Payment struct {
	gorm.Model
	OrderID         uint           `gorm:"not null;index"`
	PaymentMethodID uint           `gorm:"not null;index"`
	PaymentMethod   *PaymentMethod `gorm:"foreignKey:PaymentMethodID"`
	Amount          float64        `gorm:"not null"`
	CurrencyCode    string         `gorm:"not null"`
	State           string         `gorm:"not null;default:'new'"`
	RemoteID        string         `gorm:"index"` // processor pay-in id
	RefundedAmount  float64        `gorm:"default:0"`
}

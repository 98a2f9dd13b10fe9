package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentMethod is a tokenized card reference. The full card number and
// security code never reach this system; only the processor's card id, the
// last four digits and descriptor metadata are stored.
type PaymentMethod struct {
	gorm.Model
	UserID         *uint  `gorm:"index"` // nil for anonymous checkouts
	RemoteCardID   string `gorm:"not null;uniqueIndex"`
	RemoteUserID   string `gorm:"not null"`
	RemoteWalletID string `gorm:"not null"`
	CardType       string `gorm:"not null"`
	LastFour       string `gorm:"not null"`
	ExpiryMonth    string `gorm:"not null"`
	ExpiryYear     string `gorm:"not null"`
	CurrencyCode   string `gorm:"not null"`
	ExpiresAt      time.Time
}

// IsExpired reports whether the card's expiration month has passed.
func (m *PaymentMethod) IsExpired() bool {
	return !m.ExpiresAt.IsZero() && m.ExpiresAt.Before(time.Now())
}

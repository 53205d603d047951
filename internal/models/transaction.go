package models

import (
	"gorm.io/gorm"
)

// Transaction records a completed credit purchase. Rows are written once by
// the payment webhook and never mutated afterwards.
type Transaction struct {
	gorm.Model
	StripeID string  `gorm:"uniqueIndex;not null" json:"stripe_id"`
	Plan     string  `gorm:"not null" json:"plan"`
	Credits  int     `gorm:"not null" json:"credits"`
	Amount   float64 `gorm:"not null" json:"amount"`
	BuyerID  uint    `gorm:"not null;index" json:"buyer_id"`
	Buyer    User    `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
}

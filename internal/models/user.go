package models

import (
	"gorm.io/gorm"
)

// DefaultCreditBalance is granted to every user on first sign-in.
const DefaultCreditBalance = 10

type User struct {
	gorm.Model
	ClerkID       string        `gorm:"uniqueIndex;not null" json:"clerk_id"`
	Email         string        `gorm:"uniqueIndex;not null" json:"email"`
	Username      string        `gorm:"uniqueIndex;not null" json:"username"`
	Photo         string        `gorm:"" json:"photo,omitempty"`
	FirstName     string        `gorm:"" json:"first_name,omitempty"`
	LastName      string        `gorm:"" json:"last_name,omitempty"`
	Plan          string        `gorm:"default:'free'" json:"plan"`
	CreditBalance int           `gorm:"not null;default:10" json:"credit_balance"`
	Transactions  []Transaction `gorm:"foreignKey:BuyerID" json:"-"`
	Images        []Image       `gorm:"foreignKey:AuthorID" json:"-"`
	APITokens     []APIToken    `gorm:"foreignKey:UserID" json:"-"`
}

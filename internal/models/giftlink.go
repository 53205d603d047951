package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// GiftLink is a redeemable code that carries credits from one user to
// another. The credits are escrowed from the sender's balance when the link
// is created and granted to the redeemer on redemption.
type GiftLink struct {
	gorm.Model
	Code         string     `gorm:"uniqueIndex;not null;size:64" json:"code"`
	FromUserID   uint       `gorm:"not null;index" json:"from_user_id"`
	FromUser     User       `gorm:"foreignKey:FromUserID" json:"-"`
	Credits      int        `gorm:"not null" json:"credits"`
	Message      string     `gorm:"type:text" json:"message"`
	ExpiresAt    *time.Time `gorm:"index" json:"expires_at"`
	RedeemedAt   *time.Time `json:"redeemed_at"`
	RedeemedByID *uint      `gorm:"index" json:"redeemed_by_id"`
	RedeemedBy   *User      `gorm:"foreignKey:RedeemedByID" json:"-"`
	Active       bool       `gorm:"default:true;index" json:"active"`
}

func (g GiftLink) MarshalJSON() ([]byte, error) {
	var redeemedByUsername *string
	if g.RedeemedBy != nil {
		redeemedByUsername = &g.RedeemedBy.Username
	}

	return json.Marshal(&struct {
		ID           uint       `json:"id"`
		CreatedAt    time.Time  `json:"created_at"`
		Code         string     `json:"code"`
		FromUserID   uint       `json:"from_user_id"`
		FromUsername string     `json:"from_username"`
		Credits      int        `json:"credits"`
		Message      string     `json:"message"`
		ExpiresAt    *time.Time `json:"expires_at"`
		RedeemedAt   *time.Time `json:"redeemed_at"`
		RedeemedBy   *string    `json:"redeemed_by,omitempty"`
		Active       bool       `json:"active"`
	}{
		ID:           g.ID,
		CreatedAt:    g.CreatedAt,
		Code:         g.Code,
		FromUserID:   g.FromUserID,
		FromUsername: g.FromUser.Username,
		Credits:      g.Credits,
		Message:      g.Message,
		ExpiresAt:    g.ExpiresAt,
		RedeemedAt:   g.RedeemedAt,
		RedeemedBy:   redeemedByUsername,
		Active:       g.Active,
	})
}

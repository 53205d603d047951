package models

import (
	"gorm.io/gorm"

	"github.com/arpanp11/imaginify-saas/internal/transform"
)

// Image is a persisted transformation result. The Config column holds the
// committed transformation configuration; pending (staged) configuration
// never reaches the store.
type Image struct {
	gorm.Model
	Title              string           `gorm:"not null" json:"title"`
	PublicID           string           `gorm:"not null;index" json:"public_id"`
	TransformationType string           `gorm:"not null;index" json:"transformation_type"`
	Width              int              `gorm:"not null" json:"width"`
	Height             int              `gorm:"not null" json:"height"`
	Config             transform.Config `gorm:"type:text" json:"config"`
	SecureURL          string           `gorm:"not null" json:"secure_url"`
	TransformationURL  string           `gorm:"" json:"transformation_url,omitempty"`
	AspectRatio        string           `gorm:"" json:"aspect_ratio,omitempty"`
	Prompt             string           `gorm:"" json:"prompt,omitempty"`
	Color              string           `gorm:"" json:"color,omitempty"`
	AuthorID           uint             `gorm:"not null;index" json:"author_id"`
	Author             User             `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

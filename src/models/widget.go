package models

import (
	"venuebook/src/types"

	"github.com/google/uuid"
)

type Widget struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	VenueID      uint      `json:"venue_id,omitempty"`
	Name         string    `json:"name,omitempty"`
	WidgetKey    uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"widget_key,omitempty"`
	Theme        string    `gorm:"default:'light'" json:"theme,omitempty"`
	PrimaryColor string    `json:"primary_color,omitempty"`
	EmbedSnippet string    `json:"embed_snippet,omitempty"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`

	Venue *Venue `gorm:"foreignKey:venue_id" json:"-"`

	types.Timestamps
}

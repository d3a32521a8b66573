package models

import (
	"time"
	"venuebook/src/types"
)

// AnalyticsRecord is a write-only audit row. Nothing on the request path reads
// these back; they exist for reporting queries against the warehouse.
type AnalyticsRecord struct {
	ID      uint      `gorm:"primarykey" json:"id"`
	VenueID uint      `gorm:"index" json:"venue_id,omitempty"`
	Metric  string    `json:"metric,omitempty"`
	Value   float64   `json:"value,omitempty"`
	Date    time.Time `json:"date,omitempty"`

	types.Timestamps
}

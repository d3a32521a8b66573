package models

import (
	"time"
	"venuebook/src/types"
)

type Booking struct {
	ID            uint                `gorm:"primarykey" json:"id"`
	VenueID       uint                `json:"venue_id,omitempty"`
	TableID       *uint               `json:"table_id,omitempty"`
	CustomerName  string              `json:"customer_name,omitempty"`
	CustomerEmail string              `gorm:"index" json:"customer_email,omitempty"`
	CustomerPhone string              `gorm:"index" json:"customer_phone,omitempty"`
	Date          time.Time           `json:"date,omitempty"`
	PartySize     uint                `json:"party_size,omitempty"`
	ServiceType   string              `gorm:"default:'dinner'" json:"service_type,omitempty"`
	Status        types.BookingStatus `gorm:"default:'pending'" json:"status,omitempty"`
	IsPaid        bool                `gorm:"default:false" json:"is_paid"`

	Venue    *Venue      `gorm:"foreignKey:venue_id" json:"venue,omitempty"`
	Table    *VenueTable `gorm:"foreignKey:table_id" json:"table,omitempty"`
	Payments []Payment   `gorm:"foreignKey:booking_id" json:"payments,omitempty"`

	types.Timestamps
}

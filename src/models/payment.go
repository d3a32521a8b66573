package models

import (
	"venuebook/src/types"

	"github.com/google/uuid"
)

// Payment rows are created when a charge is initiated and mutated only by
// webhook reconciliation. They are never deleted.
type Payment struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	BookingID         *uint               `json:"booking_id,omitempty"`
	ProviderPaymentID string              `gorm:"uniqueIndex" json:"provider_payment_id,omitempty"`
	Amount            float64             `json:"amount,omitempty"`
	Currency          string              `json:"currency,omitempty"`
	Status            types.PaymentStatus `gorm:"default:'pending'" json:"status,omitempty"`
	Metadata          types.JSONB         `gorm:"type:jsonb" json:"metadata,omitempty"`

	Booking *Booking `gorm:"foreignKey:booking_id" json:"booking,omitempty"`

	types.Timestamps
}

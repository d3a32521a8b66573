package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type Role string

const (
	ROLE_CUSTOMER    Role = "CUSTOMER"
	ROLE_VENUE_OWNER Role = "VENUE_OWNER"
	ROLE_ADMIN       Role = "ADMIN"
	ROLE_SUPER_ADMIN Role = "SUPER_ADMIN"
)

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "pending"
	BOOKING_CONFIRMED BookingStatus = "confirmed"
	BOOKING_CANCELLED BookingStatus = "cancelled"
	BOOKING_COMPLETED BookingStatus = "completed"
)

type PaymentStatus string

const (
	PAYMENT_PENDING   PaymentStatus = "pending"
	PAYMENT_COMPLETED PaymentStatus = "completed"
	PAYMENT_FAILED    PaymentStatus = "failed"
)

// Terminal reports whether no further transition is allowed out of s.
func (s PaymentStatus) Terminal() bool {
	return s == PAYMENT_COMPLETED || s == PAYMENT_FAILED
}

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type RegisterUserRequestBody struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone,omitempty"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateBookingRequestBody struct {
	VenueID       uint   `json:"venueId" binding:"required"`
	TableID       *uint  `json:"tableId,omitempty"`
	CustomerName  string `json:"customerName" binding:"required"`
	CustomerEmail string `json:"customerEmail" binding:"required,email"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	Date          string `json:"date" binding:"required,bookabledate" time_format:"2006-01-02 15:04:05 -07:00"`
	PartySize     uint   `json:"partySize" binding:"required,min=1"`
	ServiceType   string `json:"serviceType,omitempty"`
}

type UpdateBookingStatusRequestBody struct {
	Status BookingStatus `json:"status" binding:"required,oneof=pending confirmed cancelled completed"`
}

type CheckoutRequestBody struct {
	BookingID uint    `json:"bookingId" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Currency  string  `json:"currency" binding:"required,len=3"`
}

type CreateWidgetRequestBody struct {
	VenueID      uint   `json:"venueId" binding:"required"`
	Name         string `json:"name" binding:"required,min=2,max=64"`
	Theme        string `json:"theme,omitempty" binding:"omitempty,oneof=light dark"`
	PrimaryColor string `json:"primaryColor,omitempty" binding:"omitempty,hexcolor"`
}

type ToggleUserStatusRequestBody struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type VenueQueryFilters struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=12"`
	Search    string `form:"search"`
	City      string `form:"city,default=all"`
	VenueType string `form:"venueType,default=all"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

package models

import (
	"fmt"
	"venuebook/src/types"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type Venue struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `json:"name,omitempty"`
	Slug        string `gorm:"uniqueIndex" json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Cuisine     string `json:"cuisine,omitempty"`
	City        string `json:"city,omitempty"`
	VenueType   string `gorm:"default:'restaurant'" json:"venue_type,omitempty"`
	Capacity    uint   `json:"capacity,omitempty"`
	BrandColor  string `json:"brand_color,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
	OwnerID     uint   `json:"owner_id,omitempty"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
	Featured    bool   `gorm:"default:false" json:"featured"`

	Owner    *User        `gorm:"foreignKey:owner_id" json:"-"`
	Tables   []VenueTable `gorm:"foreignKey:venue_id" json:"tables,omitempty"`
	Images   []VenueImage `gorm:"foreignKey:venue_id" json:"images,omitempty"`
	Bookings []Booking    `gorm:"foreignKey:venue_id" json:"bookings,omitempty"`
	Widgets  []Widget     `gorm:"foreignKey:venue_id" json:"widgets,omitempty"`

	types.Timestamps
}

// BeforeCreate derives a URL-safe slug from the venue name, suffixing it on
// conflict so the unique index holds.
func (v *Venue) BeforeCreate(tx *gorm.DB) error {
	if v.Slug == "" {
		v.Slug = slug.Make(v.Name)
	}
	// Unscoped: a soft-deleted venue still occupies the slug in the unique
	// index, so the conflict check must see it.
	var count int64
	if err := tx.Unscoped().Model(&Venue{}).Where("slug = ?", v.Slug).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		var max uint
		tx.Unscoped().Model(&Venue{}).Select("COALESCE(MAX(id), 0)").Scan(&max)
		v.Slug = fmt.Sprintf("%s-%d", v.Slug, max+1)
	}
	return nil
}

type VenueTable struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	VenueID  uint   `json:"venue_id,omitempty"`
	Name     string `json:"name,omitempty"`
	Seats    uint   `json:"seats,omitempty"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	Venue *Venue `gorm:"foreignKey:venue_id" json:"-"`

	types.Timestamps
}

type VenueImage struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	VenueID  uint   `json:"venue_id,omitempty"`
	URL      string `json:"url,omitempty"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	Venue *Venue `gorm:"foreignKey:venue_id" json:"-"`

	types.Timestamps
}

package models

import "venuebook/src/types"

type Notification struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	UserID uint   `json:"user_id,omitempty"`
	Title  string `json:"title,omitempty"`
	Body   string `json:"body,omitempty"`
	Read   bool   `gorm:"default:false" json:"read"`

	User *User `gorm:"foreignKey:user_id" json:"-"`

	types.Timestamps
}

package models

import "venuebook/src/types"

type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	Name         string     `json:"name,omitempty"`
	Email        string     `gorm:"uniqueIndex" json:"email,omitempty"`
	PasswordHash string     `json:"-"`
	Phone        string     `json:"phone,omitempty"`
	Role         types.Role `gorm:"default:'CUSTOMER'" json:"role,omitempty"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`

	Venues        []Venue        `gorm:"foreignKey:owner_id" json:"venues,omitempty"`
	Notifications []Notification `gorm:"foreignKey:user_id" json:"notifications,omitempty"`

	types.Timestamps
}

package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"unique;not null" json:"email"`
	Password     *string   `json:"-"` // nil for Google-only accounts
	College      string    `json:"college"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'student'" json:"role"`
	Bio          string    `json:"bio"`
	ProfilePhoto string    `json:"profile_photo"`
	GoogleID     *string   `gorm:"uniqueIndex" json:"-"`
	Points       int       `gorm:"not null;default:0" json:"points"`
	Badges       []Badge   `json:"badges" gorm:"foreignKey:UserID"`
}

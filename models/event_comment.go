package models

import "time"

type EventComment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	EventID   uint      `gorm:"not null;index" json:"event_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	Comment   string    `gorm:"not null" json:"comment"`
}

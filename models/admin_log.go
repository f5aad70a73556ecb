package models

import "time"

type AdminLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Action    string    `gorm:"not null" json:"action"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
}

package models

import "time"

const (
	ActivityRegister = "register"
	ActivityBookmark = "bookmark"
)

// UserActivity is an append-only log consumed by the category-based
// recommendation query.
type UserActivity struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	EventID      uint      `gorm:"not null" json:"event_id"`
	ActivityType string    `gorm:"not null;type:varchar(50)" json:"activity_type"`
}

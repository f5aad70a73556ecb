package models

import "time"

type Feedback struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"timestamp"`
	EventID   uint      `gorm:"not null;uniqueIndex:idx_event_user_feedback" json:"event_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_event_user_feedback" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"` // 1..5, validated at the handler
	Comments  string    `json:"comments"`
}

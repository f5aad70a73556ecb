package models

import "time"

type Bookmark struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_event_bookmark" json:"user_id"`
	EventID   uint      `gorm:"not null;uniqueIndex:idx_user_event_bookmark" json:"event_id"`
}

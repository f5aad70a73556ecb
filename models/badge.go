package models

import "time"

// Badge rows are unique per (user, name); awarding the same badge twice
// is a no-op at the storage layer.
type Badge struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_user_badge" json:"-"`
	Name        string    `gorm:"not null;type:varchar(100);uniqueIndex:idx_user_badge" json:"name"`
	Description string    `json:"description"`
	EarnedAt    time.Time `gorm:"not null" json:"earned_at"`
}

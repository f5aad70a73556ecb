package models

import "time"

// Notification captures a single broadcast. The event name is snapshotted so
// the notification still renders after the event is edited or deleted.
type Notification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	EventID   *uint     `json:"event_id"`
	EventName *string   `json:"event_name"`
	Title     string    `gorm:"not null" json:"title"`
	Message   string    `gorm:"not null" json:"message"`
	Type      string    `gorm:"not null;type:varchar(50);default:'general'" json:"type"`
	CreatedBy uint      `gorm:"not null;index" json:"created_by"`
}

// ReceivedNotification is the per-recipient delivery row a broadcast fans
// out into. Each row is independently markable read/unread.
type ReceivedNotification struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	NotificationID uint       `gorm:"not null;index" json:"notification_id"`
	UserID         uint       `gorm:"not null;index" json:"user_id"`
	UserName       string     `json:"user_name"`
	EventID        *uint      `json:"event_id"`
	EventName      *string    `json:"event_name"`
	Title          string     `gorm:"not null" json:"title"`
	Message        string     `gorm:"not null" json:"message"`
	Type           string     `gorm:"not null;type:varchar(50);default:'general'" json:"type"`
	CreatedBy      uint       `gorm:"not null" json:"created_by"`
	IsRead         bool       `gorm:"not null;default:false" json:"is_read"`
	ReadAt         *time.Time `json:"read_at"`
}

package models

import "time"

const (
	RegistrationPending  = "pending"
	RegistrationApproved = "approved"
	RegistrationRejected = "rejected"
)

// Registration is unique per (event, user). The unique index is what makes
// the duplicate check hold under concurrent requests.
type Registration struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"timestamp"`
	EventID   uint      `gorm:"not null;uniqueIndex:idx_event_user" json:"event_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_event_user" json:"user_id"`
	Status    string    `gorm:"not null;type:varchar(20);default:'pending'" json:"status"`
}

func ValidRegistrationStatus(status string) bool {
	switch status {
	case RegistrationPending, RegistrationApproved, RegistrationRejected:
		return true
	}
	return false
}

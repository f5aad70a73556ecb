package models

import (
	"time"

	"github.com/lib/pq"
)

type Event struct {
	ID                uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	CollegeID         uint           `gorm:"not null;index" json:"college_id"` // id of the admin account that owns the event
	Title             string         `gorm:"not null" json:"title"`
	Description       string         `json:"description"`
	Category          string         `gorm:"not null;type:varchar(100)" json:"category"`
	Tags              pq.StringArray `gorm:"type:text[]" json:"tags"`
	Location          string         `gorm:"not null" json:"location"`
	StartDate         time.Time      `gorm:"not null" json:"start_date"`
	EndDate           time.Time      `gorm:"not null" json:"end_date"`
	ImageURL          *string        `json:"image_url"`
	RegistrationCount int            `gorm:"not null;default:0" json:"registration_count"` // denormalized, authoritative set is Registrations
}

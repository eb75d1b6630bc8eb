package models

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	EventType       string    `gorm:"size:50;not null" json:"event_type"`
	StartTime       time.Time `gorm:"not null" json:"start_time"`
	EndTime         time.Time `gorm:"not null" json:"end_time"`
	Location        string    `gorm:"size:255;not null" json:"location"`
	MaxParticipants int       `gorm:"not null" json:"max_participants"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type EventRegistration struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	EventID uuid.UUID `gorm:"not null" json:"event_id"`
	UserID  uuid.UUID `gorm:"not null" json:"user_id"`
	Status  string    `gorm:"size:20;not null;default:'registered'" json:"status"` // registered | waitlisted | cancelled

	Event Event `gorm:"foreignkey:EventID" json:"event,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

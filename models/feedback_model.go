package models

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID `gorm:"not null" json:"user_id"`
	Category    string    `gorm:"size:50;not null" json:"category"`
	Subject     string    `gorm:"size:255;not null" json:"subject"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Rating      int       `gorm:"not null" json:"rating"`
	Status      string    `gorm:"size:20;not null;default:'pending'" json:"status"` // pending | in_progress | resolved

	ResolvedAt *time.Time `json:"resolved_at"`

	User User `gorm:"foreignkey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

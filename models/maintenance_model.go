package models

import (
	"time"

	"github.com/google/uuid"
)

type MaintenanceRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RoomID      uuid.UUID `gorm:"not null" json:"room_id"`
	ReportedBy  uuid.UUID `gorm:"not null" json:"reported_by"`
	Type        string    `gorm:"size:20;not null" json:"type"` // repair | cleaning | general
	Description string    `gorm:"type:text;not null" json:"description"`
	Status      string    `gorm:"size:20;not null;default:'pending'" json:"status"`  // pending | in_progress | completed
	Priority    string    `gorm:"size:10;not null;default:'medium'" json:"priority"` // low | medium | high

	PhotoURL *string `gorm:"size:255" json:"photo_url"`

	Room     Room `gorm:"foreignkey:RoomID" json:"room,omitempty"`
	Reporter User `gorm:"foreignkey:ReportedBy" json:"reporter,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type Room struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RoomNumber       string    `gorm:"size:20;not null;unique" json:"room_number"`
	FloorNumber      int       `gorm:"not null" json:"floor_number"`
	RoomType         string    `gorm:"size:20;not null" json:"room_type"` // single | double | triple | quad
	Capacity         int       `gorm:"not null" json:"capacity"`
	CurrentOccupancy int       `gorm:"default:0" json:"current_occupancy"`
	PricePerSemester float64   `gorm:"type:numeric(10,2);not null" json:"price_per_semester"`
	Status           string    `gorm:"size:20;not null;default:'available'" json:"status"` // available | occupied | maintenance | reserved

	// Comma separated amenity list, e.g. "wifi,desk,balcony".
	Facilities  string `gorm:"type:text" json:"facilities"`
	Description string `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

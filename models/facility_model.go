package models

import (
	"time"

	"github.com/google/uuid"
)

type Facility struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Type        string    `gorm:"size:50;not null" json:"type"` // gym | study_room | laundry | common_room | sports
	Capacity    int       `gorm:"not null" json:"capacity"`
	Description string    `gorm:"type:text" json:"description"`
	OpenTime    string    `gorm:"size:5;not null" json:"open_time"` // HH:MM
	CloseTime   string    `gorm:"size:5;not null" json:"close_time"`
	IsAvailable bool      `gorm:"default:true" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type FacilityBooking struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FacilityID  uuid.UUID `gorm:"not null" json:"facility_id"`
	UserID      uuid.UUID `gorm:"not null" json:"user_id"`
	BookingDate time.Time `gorm:"not null" json:"booking_date"`
	StartTime   string    `gorm:"size:5;not null" json:"start_time"` // HH:MM
	EndTime     string    `gorm:"size:5;not null" json:"end_time"`
	Status      string    `gorm:"size:20;not null;default:'confirmed'" json:"status"` // confirmed | cancelled

	Facility Facility `gorm:"foreignkey:FacilityID" json:"facility,omitempty"`
	User     User     `gorm:"foreignkey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

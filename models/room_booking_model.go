package models

import (
	"time"

	"github.com/google/uuid"
)

type RoomBooking struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RoomID        uuid.UUID `gorm:"not null" json:"room_id"`
	StudentID     uuid.UUID `gorm:"not null" json:"student_id"`
	CheckInDate   time.Time `gorm:"not null" json:"check_in_date"`
	CheckOutDate  time.Time `gorm:"not null" json:"check_out_date"`
	Semester      string    `gorm:"size:50;not null" json:"semester"`
	Status        string    `gorm:"size:20;not null;default:'pending'" json:"status"` // pending | approved | rejected | cancelled
	TotalAmount   float64   `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	PaymentStatus string    `gorm:"size:20;not null;default:'pending'" json:"payment_status"` // pending | paid | refunded

	SpecialRequests *string `gorm:"type:text" json:"special_requests"`

	Room    Room `gorm:"foreignkey:RoomID" json:"room,omitempty"`
	Student User `gorm:"foreignkey:StudentID" json:"student,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

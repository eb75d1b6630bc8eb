package models

import (
	"time"

	"github.com/google/uuid"
)

type HealthRecord struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID        uuid.UUID `gorm:"not null;unique" json:"student_id"`
	BloodGroup       string    `gorm:"size:5" json:"blood_group"`
	EmergencyContact string    `gorm:"size:100" json:"emergency_contact"`

	// Comma separated lists.
	MedicalConditions string `gorm:"type:text" json:"medical_conditions"`
	Medications       string `gorm:"type:text" json:"medications"`

	LastCheckupDate *time.Time `json:"last_checkup_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

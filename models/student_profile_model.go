package models

import (
	"time"

	"github.com/google/uuid"
)

type StudentProfile struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID `gorm:"not null;unique" json:"user_id"`
	StudentID   string    `gorm:"size:50;not null;unique" json:"student_id"`
	Department  string    `gorm:"size:100;not null" json:"department"`
	YearOfStudy int       `gorm:"not null" json:"year_of_study"`

	User User `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

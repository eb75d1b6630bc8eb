package models

import (
	"time"

	"github.com/google/uuid"
)

type Meal struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Type         string    `gorm:"size:20;not null" json:"type"` // breakfast | lunch | dinner | snack
	DayOfWeek    string    `gorm:"size:10;not null" json:"day_of_week"`
	StartTime    string    `gorm:"size:5;not null" json:"start_time"` // HH:MM
	EndTime      string    `gorm:"size:5;not null" json:"end_time"`
	Price        float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	IsVegetarian bool      `gorm:"default:false" json:"is_vegetarian"`
	IsVegan      bool      `gorm:"default:false" json:"is_vegan"`
	IsHalal      bool      `gorm:"default:false" json:"is_halal"`
	Calories     int       `gorm:"default:0" json:"calories"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MealPlan struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StudentMealPlan struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID  uuid.UUID `gorm:"not null" json:"student_id"`
	MealPlanID uuid.UUID `gorm:"not null" json:"meal_plan_id"`
	Status     string    `gorm:"size:20;not null;default:'active'" json:"status"` // active | cancelled

	MealPlan MealPlan `gorm:"foreignkey:MealPlanID" json:"meal_plan,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MealPreference struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID uuid.UUID `gorm:"not null;unique" json:"student_id"`

	// Comma separated lists.
	DietaryRestrictions string `gorm:"type:text" json:"dietary_restrictions"`
	Allergies           string `gorm:"type:text" json:"allergies"`
	PreferredCuisines   string `gorm:"type:text" json:"preferred_cuisines"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

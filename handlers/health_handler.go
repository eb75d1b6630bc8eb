package handlers

import (
	"errors"
	"time"

	"github.com/antoniodasilva12/hostelmng/database"
	"github.com/antoniodasilva12/hostelmng/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HealthRecordRequest struct {
	BloodGroup        string  `json:"blood_group"`
	EmergencyContact  string  `json:"emergency_contact" validate:"required"`
	MedicalConditions string  `json:"medical_conditions"`
	Medications       string  `json:"medications"`
	LastCheckupDate   *string `json:"last_checkup_date,omitempty"`
}

func GetMyHealthRecord(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID := claims["user_id"].(string)

	var record models.HealthRecord
	if err := database.DB.Where("student_id = ?", studentID).First(&record).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No health record on file"})
	}

	return c.JSON(record)
}

func UpsertHealthRecord(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID, _ := uuid.Parse(claims["user_id"].(string))

	var req HealthRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var lastCheckup *time.Time
	if req.LastCheckupDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.LastCheckupDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "last_checkup_date must be YYYY-MM-DD"})
		}
		lastCheckup = &parsed
	}

	var record models.HealthRecord
	err := database.DB.Where("student_id = ?", studentID).First(&record).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
		}
		record = models.HealthRecord{StudentID: studentID}
	}

	record.BloodGroup = req.BloodGroup
	record.EmergencyContact = req.EmergencyContact
	record.MedicalConditions = req.MedicalConditions
	record.Medications = req.Medications
	record.LastCheckupDate = lastCheckup

	if err := database.DB.Save(&record).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save health record"})
	}

	return c.JSON(record)
}

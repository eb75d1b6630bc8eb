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
	"gorm.io/gorm/clause"
)

func ListEvents(c *fiber.Ctx) error {
	var events []models.Event
	if err := database.DB.Where("end_time > ?", time.Now()).Order("start_time asc").Find(&events).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch events"})
	}

	return c.JSON(events)
}

type EventRequest struct {
	Title           string    `json:"title" validate:"required"`
	Description     string    `json:"description"`
	EventType       string    `json:"event_type" validate:"required"`
	StartTime       time.Time `json:"start_time" validate:"required"`
	EndTime         time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	Location        string    `json:"location" validate:"required"`
	MaxParticipants int       `json:"max_participants" validate:"required,min=1"`
}

func CreateEvent(c *fiber.Ctx) error {
	var req EventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	event := models.Event{
		Title:           req.Title,
		Description:     req.Description,
		EventType:       req.EventType,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Location:        req.Location,
		MaxParticipants: req.MaxParticipants,
	}
	if err := database.DB.Create(&event).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create event"})
	}

	return c.Status(fiber.StatusCreated).JSON(event)
}

func UpdateEvent(c *fiber.Ctx) error {
	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid event ID format"})
	}

	var event models.Event
	if err := database.DB.First(&event, "id = ?", eventID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Event not found"})
	}

	var req EventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	event.Title = req.Title
	event.Description = req.Description
	event.EventType = req.EventType
	event.StartTime = req.StartTime
	event.EndTime = req.EndTime
	event.Location = req.Location
	event.MaxParticipants = req.MaxParticipants

	if err := database.DB.Save(&event).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update event"})
	}

	return c.JSON(event)
}

func DeleteEvent(c *fiber.Ctx) error {
	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid event ID format"})
	}

	result := database.DB.Delete(&models.Event{}, "id = ?", eventID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete event"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Event not found"})
	}

	return c.JSON(fiber.Map{"message": "Event deleted"})
}

// RegisterForEvent registers the caller, waitlisting them once the event is
// at capacity. The event row is locked so concurrent registrations cannot
// both take the last confirmed spot.
func RegisterForEvent(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid event ID format"})
	}

	var registration models.EventRegistration
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, "id = ?", eventID).Error; err != nil {
			return errors.New("event not found")
		}

		var existing models.EventRegistration
		err := tx.Where("event_id = ? AND user_id = ? AND status != ?", event.ID, userID, "cancelled").First(&existing).Error
		if err == nil {
			return errors.New("already registered for this event")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var registered int64
		if err := tx.Model(&models.EventRegistration{}).
			Where("event_id = ? AND status = ?", event.ID, "registered").
			Count(&registered).Error; err != nil {
			return err
		}

		status := "registered"
		if registered >= int64(event.MaxParticipants) {
			status = "waitlisted"
		}

		registration = models.EventRegistration{
			EventID: event.ID,
			UserID:  userID,
			Status:  status,
		}
		return tx.Create(&registration).Error
	})
	if err != nil {
		if err.Error() == "event not found" {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(registration)
}

func CancelEventRegistration(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid event ID format"})
	}

	var registration models.EventRegistration
	if err := database.DB.Where("event_id = ? AND user_id = ? AND status != ?", eventID, userID, "cancelled").
		First(&registration).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Registration not found"})
	}

	registration.Status = "cancelled"
	if err := database.DB.Save(&registration).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel registration"})
	}

	// Promote the oldest waitlisted registration, if any.
	var waitlisted models.EventRegistration
	if err := database.DB.Where("event_id = ? AND status = ?", eventID, "waitlisted").
		Order("created_at asc").First(&waitlisted).Error; err == nil {
		waitlisted.Status = "registered"
		database.DB.Save(&waitlisted)
		go NotifyUser(waitlisted.UserID, "Event spot available",
			"A spot opened up and your event registration has been confirmed.", "success")
	}

	return c.JSON(fiber.Map{"message": "Registration cancelled"})
}

func ListMyEventRegistrations(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var registrations []models.EventRegistration
	if err := database.DB.Preload("Event").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&registrations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch registrations"})
	}

	return c.JSON(registrations)
}

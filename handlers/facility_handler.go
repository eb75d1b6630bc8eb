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

func ListFacilities(c *fiber.Ctx) error {
	var facilities []models.Facility
	if err := database.DB.Where("is_available = ?", true).Order("name asc").Find(&facilities).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch facilities"})
	}

	return c.JSON(facilities)
}

type FacilityRequest struct {
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type" validate:"required"`
	Capacity    int    `json:"capacity" validate:"required,min=1"`
	Description string `json:"description"`
	OpenTime    string `json:"open_time" validate:"required"`
	CloseTime   string `json:"close_time" validate:"required"`
}

func CreateFacility(c *fiber.Ctx) error {
	var req FacilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	facility := models.Facility{
		Name:        req.Name,
		Type:        req.Type,
		Capacity:    req.Capacity,
		Description: req.Description,
		OpenTime:    req.OpenTime,
		CloseTime:   req.CloseTime,
		IsAvailable: true,
	}
	if err := database.DB.Create(&facility).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create facility"})
	}

	return c.Status(fiber.StatusCreated).JSON(facility)
}

func UpdateFacility(c *fiber.Ctx) error {
	facilityID := c.Params("id")
	if _, err := uuid.Parse(facilityID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid facility ID format"})
	}

	var facility models.Facility
	if err := database.DB.First(&facility, "id = ?", facilityID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Facility not found"})
	}

	var req FacilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	facility.Name = req.Name
	facility.Type = req.Type
	facility.Capacity = req.Capacity
	facility.Description = req.Description
	facility.OpenTime = req.OpenTime
	facility.CloseTime = req.CloseTime

	if err := database.DB.Save(&facility).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update facility"})
	}

	return c.JSON(facility)
}

func DeleteFacility(c *fiber.Ctx) error {
	facilityID := c.Params("id")
	if _, err := uuid.Parse(facilityID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid facility ID format"})
	}

	result := database.DB.Model(&models.Facility{}).Where("id = ?", facilityID).Update("is_available", false)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to remove facility"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Facility not found"})
	}

	return c.JSON(fiber.Map{"message": "Facility removed"})
}

type FacilityBookingRequest struct {
	FacilityID  string `json:"facility_id" validate:"required,uuid"`
	BookingDate string `json:"booking_date" validate:"required"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
}

// countOverlappingSlots counts confirmed bookings that overlap the requested
// window. HH:MM strings compare lexicographically, so overlap is a plain
// range check.
func countOverlappingSlots(bookings []models.FacilityBooking, startTime, endTime string) int {
	count := 0
	for _, booking := range bookings {
		if booking.StartTime < endTime && booking.EndTime > startTime {
			count++
		}
	}
	return count
}

// BookFacility reserves a slot, locking the facility row so two concurrent
// requests cannot both take the last spot in a window.
func BookFacility(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req FacilityBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	bookingDate, err := time.Parse("2006-01-02", req.BookingDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "booking_date must be YYYY-MM-DD"})
	}
	if req.EndTime <= req.StartTime {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end_time must be after start_time"})
	}

	facilityID, _ := uuid.Parse(req.FacilityID)

	var booking models.FacilityBooking
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var facility models.Facility
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND is_available = ?", facilityID, true).
			First(&facility).Error; err != nil {
			return errors.New("facility not found")
		}

		if req.StartTime < facility.OpenTime || req.EndTime > facility.CloseTime {
			return errors.New("requested slot is outside the facility's operating hours")
		}

		var confirmed []models.FacilityBooking
		if err := tx.Where("facility_id = ? AND booking_date = ? AND status = ?",
			facilityID, bookingDate, "confirmed").Find(&confirmed).Error; err != nil {
			return err
		}
		if countOverlappingSlots(confirmed, req.StartTime, req.EndTime) >= facility.Capacity {
			return errors.New("facility is fully booked for that slot")
		}

		booking = models.FacilityBooking{
			FacilityID:  facilityID,
			UserID:      userID,
			BookingDate: bookingDate,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			Status:      "confirmed",
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		switch err.Error() {
		case "facility not found":
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Facility not found"})
		case "requested slot is outside the facility's operating hours":
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Requested slot is outside the facility's operating hours"})
		case "facility is fully booked for that slot":
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Facility is fully booked for that slot"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to book facility"})
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

func ListMyFacilityBookings(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var bookings []models.FacilityBooking
	if err := database.DB.Preload("Facility").
		Where("user_id = ?", userID).
		Order("booking_date desc, start_time desc").
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch facility bookings"})
	}

	return c.JSON(bookings)
}

func CancelFacilityBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	bookingID := c.Params("id")
	if _, err := uuid.Parse(bookingID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID format"})
	}

	var booking models.FacilityBooking
	if err := database.DB.Where("id = ? AND user_id = ?", bookingID, userID).First(&booking).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Facility booking not found"})
	}

	booking.Status = "cancelled"
	if err := database.DB.Save(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel facility booking"})
	}

	return c.JSON(fiber.Map{"message": "Facility booking cancelled"})
}

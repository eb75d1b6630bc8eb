package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/antoniodasilva12/hostelmng/database"
	"github.com/antoniodasilva12/hostelmng/models"
	"github.com/antoniodasilva12/hostelmng/notifications"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateBookingRequest struct {
	RoomID          string  `json:"room_id" validate:"required,uuid"`
	CheckInDate     string  `json:"check_in_date" validate:"required"`
	CheckOutDate    string  `json:"check_out_date" validate:"required"`
	Semester        string  `json:"semester" validate:"required"`
	SpecialRequests *string `json:"special_requests,omitempty"`
}

func CreateRoomBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	checkIn, err := time.Parse("2006-01-02", req.CheckInDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "check_in_date must be YYYY-MM-DD"})
	}
	checkOut, err := time.Parse("2006-01-02", req.CheckOutDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "check_out_date must be YYYY-MM-DD"})
	}
	if !checkOut.After(checkIn) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "check_out_date must be after check_in_date"})
	}

	roomID, _ := uuid.Parse(req.RoomID)

	var existing int64
	database.DB.Model(&models.RoomBooking{}).
		Where("student_id = ? AND semester = ? AND status IN ?", studentID, req.Semester, []string{"pending", "approved"}).
		Count(&existing)
	if existing > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You already have a booking for this semester"})
	}

	var booking models.RoomBooking
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, "id = ?", roomID).Error; err != nil {
			return errors.New("room not found")
		}
		if room.Status != "available" || room.CurrentOccupancy >= room.Capacity {
			return errors.New("this room is not available for booking")
		}

		booking = models.RoomBooking{
			RoomID:          room.ID,
			StudentID:       studentID,
			CheckInDate:     checkIn,
			CheckOutDate:    checkOut,
			Semester:        req.Semester,
			Status:          "pending",
			TotalAmount:     room.PricePerSemester,
			PaymentStatus:   "pending",
			SpecialRequests: req.SpecialRequests,
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Booking submitted and awaiting approval.",
		"booking": booking,
	})
}

func ListMyBookings(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID := claims["user_id"].(string)

	var bookings []models.RoomBooking
	if err := database.DB.Preload("Room").
		Where("student_id = ?", studentID).
		Order("created_at desc").
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bookings"})
	}

	return c.JSON(bookings)
}

func CancelRoomBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID := claims["user_id"].(string)

	bookingID := c.Params("id")
	if _, err := uuid.Parse(bookingID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID format"})
	}

	var booking models.RoomBooking
	if err := database.DB.Where("id = ? AND student_id = ?", bookingID, studentID).First(&booking).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	if booking.Status != "pending" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only pending bookings can be cancelled"})
	}

	booking.Status = "cancelled"
	if err := database.DB.Save(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel booking"})
	}

	return c.JSON(fiber.Map{"message": "Booking cancelled", "booking": booking})
}

func ListAllBookings(c *fiber.Ctx) error {
	query := database.DB.Preload("Room").Preload("Student").Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.RoomBooking
	if err := query.Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bookings"})
	}

	return c.JSON(bookings)
}

// DecideBooking approves or rejects a pending booking. Approval claims a bed
// in the room inside the same transaction so two approvals cannot oversell it.
func DecideBooking(c *fiber.Ctx) error {
	bookingID := c.Params("id")
	if _, err := uuid.Parse(bookingID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID format"})
	}

	type DecisionRequest struct {
		Decision string `json:"decision" validate:"required,oneof=approved rejected"`
	}
	var req DecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var booking models.RoomBooking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Student").First(&booking, "id = ?", bookingID).Error; err != nil {
			return errors.New("booking not found")
		}
		if booking.Status != "pending" {
			return errors.New("booking has already been decided")
		}

		booking.Status = req.Decision
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}

		if req.Decision != "approved" {
			return nil
		}

		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, "id = ?", booking.RoomID).Error; err != nil {
			return err
		}
		if room.CurrentOccupancy >= room.Capacity {
			return errors.New("room is already at full capacity")
		}
		room.CurrentOccupancy++
		if room.CurrentOccupancy >= room.Capacity {
			room.Status = "occupied"
		}
		return tx.Save(&room).Error
	})
	if err != nil {
		if err.Error() == "booking not found" {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		log.Printf("🔥 Failed to decide booking %s: %v", bookingID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Decision == "approved" {
		go notifications.SendEmail(booking.Student.FullName, booking.Student.Email, "Your Room Booking is Approved!",
			fmt.Sprintf("<h1>Booking Approved</h1><p>Your room booking for %s has been approved. Please complete the payment of KES %.2f to secure your room.</p>", booking.Semester, booking.TotalAmount))
		go NotifyUser(booking.StudentID, "Booking approved",
			fmt.Sprintf("Your room booking for %s was approved. Amount due: KES %.2f.", booking.Semester, booking.TotalAmount), "success")
	} else {
		go notifications.SendEmail(booking.Student.FullName, booking.Student.Email, "Your Room Booking was Rejected",
			"<h1>Booking Rejected</h1><p>Unfortunately your room booking could not be approved. Please contact the hostel office or try another room.</p>")
		go NotifyUser(booking.StudentID, "Booking rejected",
			"Your room booking was rejected. Please contact the hostel office.", "warning")
	}

	return c.JSON(fiber.Map{"message": "Booking " + req.Decision, "booking": booking})
}

package handlers

import (
	"errors"
	"log"

	"github.com/antoniodasilva12/hostelmng/database"
	"github.com/antoniodasilva12/hostelmng/models"
	"github.com/antoniodasilva12/hostelmng/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoomRequest struct {
	RoomNumber       string  `json:"room_number" validate:"required"`
	FloorNumber      int     `json:"floor_number" validate:"required,min=0"`
	RoomType         string  `json:"room_type" validate:"required,oneof=single double triple quad"`
	Capacity         int     `json:"capacity" validate:"required,min=1"`
	PricePerSemester float64 `json:"price_per_semester" validate:"required,gt=0"`
	Facilities       string  `json:"facilities"`
	Description      string  `json:"description"`
}

func ListRooms(c *fiber.Ctx) error {
	query := database.DB.Order("room_number asc")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if roomType := c.Query("type"); roomType != "" {
		query = query.Where("room_type = ?", roomType)
	}

	var rooms []models.Room
	if err := query.Find(&rooms).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch rooms"})
	}

	return c.JSON(rooms)
}

func GetRoom(c *fiber.Ctx) error {
	roomID := c.Params("id")
	if _, err := uuid.Parse(roomID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid room ID format"})
	}

	var room models.Room
	if err := database.DB.First(&room, "id = ?", roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Room not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(room)
}

func CreateRoom(c *fiber.Ctx) error {
	var req RoomRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	room := models.Room{
		RoomNumber:       req.RoomNumber,
		FloorNumber:      req.FloorNumber,
		RoomType:         req.RoomType,
		Capacity:         req.Capacity,
		PricePerSemester: req.PricePerSemester,
		Status:           "available",
		Facilities:       req.Facilities,
		Description:      req.Description,
	}

	if err := database.DB.Create(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Room number already exists"})
		}
		log.Printf("🔥 Failed to create room: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create room"})
	}

	return c.Status(fiber.StatusCreated).JSON(room)
}

func UpdateRoom(c *fiber.Ctx) error {
	roomID := c.Params("id")
	if _, err := uuid.Parse(roomID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid room ID format"})
	}

	var room models.Room
	if err := database.DB.First(&room, "id = ?", roomID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Room not found"})
	}

	type UpdateRoomRequest struct {
		PricePerSemester *float64 `json:"price_per_semester"`
		Status           *string  `json:"status" validate:"omitempty,oneof=available occupied maintenance reserved"`
		Facilities       *string  `json:"facilities"`
		Description      *string  `json:"description"`
	}
	var req UpdateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.PricePerSemester != nil {
		room.PricePerSemester = *req.PricePerSemester
	}
	if req.Status != nil {
		room.Status = *req.Status
	}
	if req.Facilities != nil {
		room.Facilities = *req.Facilities
	}
	if req.Description != nil {
		room.Description = *req.Description
	}

	if err := database.DB.Save(&room).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update room"})
	}

	return c.JSON(room)
}

func DeleteRoom(c *fiber.Ctx) error {
	roomID := c.Params("id")
	if _, err := uuid.Parse(roomID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid room ID format"})
	}

	var activeBookings int64
	database.DB.Model(&models.RoomBooking{}).
		Where("room_id = ? AND status IN ?", roomID, []string{"pending", "approved"}).
		Count(&activeBookings)
	if activeBookings > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Room has active bookings and cannot be deleted"})
	}

	if err := database.DB.Delete(&models.Room{}, "id = ?", roomID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete room"})
	}

	return c.JSON(fiber.Map{"message": "Room deleted successfully"})
}

// SuggestRoom runs the preference-based matcher and returns the best
// available room for the caller.
func SuggestRoom(c *fiber.Ctx) error {
	var prefs services.RoomPreference
	if err := c.BodyParser(&prefs); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(prefs); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	match, err := services.FindOptimalRoom(prefs)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(match)
}

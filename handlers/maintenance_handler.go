package handlers

import (
	"fmt"

	"github.com/antoniodasilva12/hostelmng/database"
	"github.com/antoniodasilva12/hostelmng/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type MaintenanceRequestInput struct {
	RoomID      string  `json:"room_id" validate:"required,uuid"`
	Type        string  `json:"type" validate:"required,oneof=repair cleaning general"`
	Description string  `json:"description" validate:"required,min=10"`
	Priority    string  `json:"priority" validate:"omitempty,oneof=low medium high"`
	PhotoURL    *string `json:"photo_url,omitempty"`
}

func CreateMaintenanceRequest(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req MaintenanceRequestInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	roomID, _ := uuid.Parse(req.RoomID)

	var room models.Room
	if err := database.DB.First(&room, "id = ?", roomID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Room not found"})
	}

	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}

	request := models.MaintenanceRequest{
		RoomID:      roomID,
		ReportedBy:  userID,
		Type:        req.Type,
		Description: req.Description,
		Status:      "pending",
		Priority:    priority,
		PhotoURL:    req.PhotoURL,
	}
	if err := database.DB.Create(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create maintenance request"})
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

func ListMyMaintenanceRequests(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var requests []models.MaintenanceRequest
	if err := database.DB.Preload("Room").
		Where("reported_by = ?", userID).
		Order("created_at desc").
		Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch maintenance requests"})
	}

	return c.JSON(requests)
}

func ListAllMaintenanceRequests(c *fiber.Ctx) error {
	query := database.DB.Preload("Room").Preload("Reporter").Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if priority := c.Query("priority"); priority != "" {
		query = query.Where("priority = ?", priority)
	}

	var requests []models.MaintenanceRequest
	if err := query.Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch maintenance requests"})
	}

	return c.JSON(requests)
}

func UpdateMaintenanceStatus(c *fiber.Ctx) error {
	requestID := c.Params("id")
	if _, err := uuid.Parse(requestID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request ID format"})
	}

	type StatusRequest struct {
		Status string `json:"status" validate:"required,oneof=pending in_progress completed"`
	}
	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var request models.MaintenanceRequest
	if err := database.DB.First(&request, "id = ?", requestID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Maintenance request not found"})
	}

	request.Status = req.Status
	if err := database.DB.Save(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update maintenance request"})
	}

	go NotifyUser(request.ReportedBy, "Maintenance update",
		fmt.Sprintf("Your %s request is now %s.", request.Type, request.Status), "info")

	return c.JSON(request)
}

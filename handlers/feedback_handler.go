package handlers

import (
	"time"

	"github.com/antoniodasilva12/hostelmng/database"
	"github.com/antoniodasilva12/hostelmng/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type FeedbackRequest struct {
	Category    string `json:"category" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	Description string `json:"description" validate:"required,min=10"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
}

func SubmitFeedback(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	feedback := models.Feedback{
		UserID:      userID,
		Category:    req.Category,
		Subject:     req.Subject,
		Description: req.Description,
		Rating:      req.Rating,
		Status:      "pending",
	}
	if err := database.DB.Create(&feedback).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit feedback"})
	}

	return c.Status(fiber.StatusCreated).JSON(feedback)
}

func ListMyFeedback(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var feedbackList []models.Feedback
	if err := database.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&feedbackList).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch feedback"})
	}

	return c.JSON(feedbackList)
}

func ListAllFeedback(c *fiber.Ctx) error {
	query := database.DB.Preload("User").Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var feedbackList []models.Feedback
	if err := query.Find(&feedbackList).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch feedback"})
	}

	return c.JSON(feedbackList)
}

func ResolveFeedback(c *fiber.Ctx) error {
	feedbackID := c.Params("id")
	if _, err := uuid.Parse(feedbackID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid feedback ID format"})
	}

	type ResolveRequest struct {
		Status string `json:"status" validate:"required,oneof=in_progress resolved"`
	}
	var req ResolveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var feedback models.Feedback
	if err := database.DB.First(&feedback, "id = ?", feedbackID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Feedback not found"})
	}

	feedback.Status = req.Status
	if req.Status == "resolved" {
		now := time.Now()
		feedback.ResolvedAt = &now
	}
	if err := database.DB.Save(&feedback).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update feedback"})
	}

	go NotifyUser(feedback.UserID, "Feedback update",
		"Your feedback '"+feedback.Subject+"' is now "+feedback.Status+".", "info")

	return c.JSON(feedback)
}

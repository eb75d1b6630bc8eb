package handlers

import (
	"github.com/antoniodasilva12/hostelmng/database"
	"github.com/antoniodasilva12/hostelmng/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type UpdateProfileRequest struct {
	FullName          *string `json:"full_name"`
	ProfilePictureURL *string `json:"profile_picture_url"`
	PhoneNumber       *string `json:"phone_number"`
	Department        *string `json:"department"`
	YearOfStudy       *int    `json:"year_of_study"`
}

func GetProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var studentProfile models.StudentProfile
	if err := database.DB.Where("user_id = ?", userID).First(&studentProfile).Error; err != nil {
		return c.JSON(fiber.Map{"user": user})
	}

	return c.JSON(fiber.Map{"user": user, "student_profile": studentProfile})
}

func UpdateProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.ProfilePictureURL != nil {
		user.ProfilePictureURL = req.ProfilePictureURL
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = req.PhoneNumber
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	if req.Department != nil || req.YearOfStudy != nil {
		var studentProfile models.StudentProfile
		if err := database.DB.Where("user_id = ?", userID).First(&studentProfile).Error; err == nil {
			if req.Department != nil {
				studentProfile.Department = *req.Department
			}
			if req.YearOfStudy != nil {
				studentProfile.YearOfStudy = *req.YearOfStudy
			}
			if err := database.DB.Save(&studentProfile).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update student profile"})
			}
		}
	}

	return c.JSON(user)
}

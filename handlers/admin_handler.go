package handlers

import (
	"log"

	"github.com/antoniodasilva12/hostelmng/database"
	"github.com/antoniodasilva12/hostelmng/models"
	"github.com/antoniodasilva12/hostelmng/services"
	"github.com/gofiber/fiber/v2"
)

// GetDashboardStats backs the admin analytics view: occupancy, revenue and
// open-request counts in one response.
func GetDashboardStats(c *fiber.Ctx) error {
	var totalRooms, occupiedRooms int64
	database.DB.Model(&models.Room{}).Count(&totalRooms)
	database.DB.Model(&models.Room{}).Where("status = ?", "occupied").Count(&occupiedRooms)

	var totalStudents int64
	database.DB.Model(&models.User{}).Where("role = ?", "student").Count(&totalStudents)

	var pendingBookings, pendingMaintenance, pendingFeedback int64
	database.DB.Model(&models.RoomBooking{}).Where("status = ?", "pending").Count(&pendingBookings)
	database.DB.Model(&models.MaintenanceRequest{}).Where("status = ?", "pending").Count(&pendingMaintenance)
	database.DB.Model(&models.Feedback{}).Where("status = ?", "pending").Count(&pendingFeedback)

	var revenueKES float64
	database.DB.Model(&models.Payment{}).
		Where("status = ?", "completed").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&revenueKES)

	stats := fiber.Map{
		"total_rooms":         totalRooms,
		"occupied_rooms":      occupiedRooms,
		"total_students":      totalStudents,
		"pending_bookings":    pendingBookings,
		"pending_maintenance": pendingMaintenance,
		"pending_feedback":    pendingFeedback,
		"revenue_kes":         revenueKES,
	}

	revenueUSD, err := services.ConvertKESToUSD(revenueKES)
	if err != nil {
		log.Printf("Currency conversion unavailable for dashboard stats: %v", err)
	} else {
		stats["revenue_usd"] = revenueUSD
	}

	return c.JSON(stats)
}

func ListStudents(c *fiber.Ctx) error {
	var profiles []models.StudentProfile
	query := database.DB.Preload("User").Order("student_id asc")
	if department := c.Query("department"); department != "" {
		query = query.Where("department = ?", department)
	}
	if err := query.Find(&profiles).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	return c.JSON(profiles)
}

func DeactivateUser(c *fiber.Ctx) error {
	userID := c.Params("id")

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	if user.Role == "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Admin accounts cannot be deactivated"})
	}

	user.IsActive = false
	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deactivate user"})
	}

	return c.JSON(fiber.Map{"message": "User deactivated"})
}

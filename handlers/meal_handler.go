package handlers

import (
	"errors"

	"github.com/antoniodasilva12/hostelmng/database"
	"github.com/antoniodasilva12/hostelmng/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MealRequest struct {
	Name         string  `json:"name" validate:"required"`
	Description  string  `json:"description"`
	Type         string  `json:"type" validate:"required,oneof=breakfast lunch dinner snack"`
	DayOfWeek    string  `json:"day_of_week" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime    string  `json:"start_time" validate:"required"`
	EndTime      string  `json:"end_time" validate:"required"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	IsVegetarian bool    `json:"is_vegetarian"`
	IsVegan      bool    `json:"is_vegan"`
	IsHalal      bool    `json:"is_halal"`
	Calories     int     `json:"calories"`
}

func ListWeeklyMenu(c *fiber.Ctx) error {
	query := database.DB.Order("day_of_week asc, start_time asc")
	if day := c.Query("day"); day != "" {
		query = query.Where("day_of_week = ?", day)
	}
	if mealType := c.Query("type"); mealType != "" {
		query = query.Where("type = ?", mealType)
	}

	var meals []models.Meal
	if err := query.Find(&meals).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch meals"})
	}

	return c.JSON(meals)
}

func CreateMeal(c *fiber.Ctx) error {
	var req MealRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	meal := models.Meal{
		Name:         req.Name,
		Description:  req.Description,
		Type:         req.Type,
		DayOfWeek:    req.DayOfWeek,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Price:        req.Price,
		IsVegetarian: req.IsVegetarian,
		IsVegan:      req.IsVegan,
		IsHalal:      req.IsHalal,
		Calories:     req.Calories,
	}
	if err := database.DB.Create(&meal).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create meal"})
	}

	return c.Status(fiber.StatusCreated).JSON(meal)
}

func UpdateMeal(c *fiber.Ctx) error {
	mealID := c.Params("id")
	if _, err := uuid.Parse(mealID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid meal ID format"})
	}

	var meal models.Meal
	if err := database.DB.First(&meal, "id = ?", mealID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Meal not found"})
	}

	var req MealRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	meal.Name = req.Name
	meal.Description = req.Description
	meal.Type = req.Type
	meal.DayOfWeek = req.DayOfWeek
	meal.StartTime = req.StartTime
	meal.EndTime = req.EndTime
	meal.Price = req.Price
	meal.IsVegetarian = req.IsVegetarian
	meal.IsVegan = req.IsVegan
	meal.IsHalal = req.IsHalal
	meal.Calories = req.Calories

	if err := database.DB.Save(&meal).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update meal"})
	}

	return c.JSON(meal)
}

func DeleteMeal(c *fiber.Ctx) error {
	mealID := c.Params("id")
	if _, err := uuid.Parse(mealID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid meal ID format"})
	}

	if err := database.DB.Delete(&models.Meal{}, "id = ?", mealID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete meal"})
	}

	return c.JSON(fiber.Map{"message": "Meal deleted successfully"})
}

func ListMealPlans(c *fiber.Ctx) error {
	var plans []models.MealPlan
	if err := database.DB.Where("is_active = ?", true).Order("price asc").Find(&plans).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch meal plans"})
	}

	return c.JSON(plans)
}

type MealPlanRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

func CreateMealPlan(c *fiber.Ctx) error {
	var req MealPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	plan := models.MealPlan{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsActive:    true,
	}
	if err := database.DB.Create(&plan).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create meal plan"})
	}

	return c.Status(fiber.StatusCreated).JSON(plan)
}

func SubscribeToMealPlan(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID, _ := uuid.Parse(claims["user_id"].(string))

	type SubscribeRequest struct {
		MealPlanID string `json:"meal_plan_id" validate:"required,uuid"`
	}
	var req SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	planID, _ := uuid.Parse(req.MealPlanID)

	var plan models.MealPlan
	if err := database.DB.Where("id = ? AND is_active = ?", planID, true).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Meal plan not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	var active int64
	database.DB.Model(&models.StudentMealPlan{}).
		Where("student_id = ? AND status = ?", studentID, "active").
		Count(&active)
	if active > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You already have an active meal plan subscription"})
	}

	subscription := models.StudentMealPlan{
		StudentID:  studentID,
		MealPlanID: plan.ID,
		Status:     "active",
	}
	if err := database.DB.Create(&subscription).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to subscribe to meal plan"})
	}

	return c.Status(fiber.StatusCreated).JSON(subscription)
}

func GetMyMealSubscription(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID := claims["user_id"].(string)

	var subscription models.StudentMealPlan
	if err := database.DB.Preload("MealPlan").
		Where("student_id = ? AND status = ?", studentID, "active").
		First(&subscription).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No active meal plan subscription"})
	}

	return c.JSON(subscription)
}

type MealPreferenceRequest struct {
	DietaryRestrictions string `json:"dietary_restrictions"`
	Allergies           string `json:"allergies"`
	PreferredCuisines   string `json:"preferred_cuisines"`
}

// UpsertMealPreferences creates or replaces the caller's dietary preferences.
func UpsertMealPreferences(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID, _ := uuid.Parse(claims["user_id"].(string))

	var req MealPreferenceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	var preference models.MealPreference
	err := database.DB.Where("student_id = ?", studentID).First(&preference).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
		}
		preference = models.MealPreference{StudentID: studentID}
	}

	preference.DietaryRestrictions = req.DietaryRestrictions
	preference.Allergies = req.Allergies
	preference.PreferredCuisines = req.PreferredCuisines

	if err := database.DB.Save(&preference).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save meal preferences"})
	}

	return c.JSON(preference)
}

func GetMyMealPreferences(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID := claims["user_id"].(string)

	var preference models.MealPreference
	if err := database.DB.Where("student_id = ?", studentID).First(&preference).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No meal preferences set"})
	}

	return c.JSON(preference)
}

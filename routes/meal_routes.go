package routes

import (
	"github.com/antoniodasilva12/hostelmng/handlers"
	"github.com/antoniodasilva12/hostelmng/middleware"
	"github.com/gofiber/fiber/v2"
)

func MealRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	meals := api.Group("/meals")
	meals.Get("", handlers.ListWeeklyMenu)
	meals.Post("", middleware.Protected(), middleware.AdminRequired(), handlers.CreateMeal)
	meals.Put("/:id", middleware.Protected(), middleware.AdminRequired(), handlers.UpdateMeal)
	meals.Delete("/:id", middleware.Protected(), middleware.AdminRequired(), handlers.DeleteMeal)

	plans := api.Group("/meal-plans")
	plans.Get("", handlers.ListMealPlans)
	plans.Post("", middleware.Protected(), middleware.AdminRequired(), handlers.CreateMealPlan)
	plans.Post("/subscribe", middleware.Protected(), middleware.StudentRequired(), handlers.SubscribeToMealPlan)
	plans.Get("/subscription/me", middleware.Protected(), handlers.GetMyMealSubscription)

	preferences := api.Group("/meal-preferences/me", middleware.Protected(), middleware.StudentRequired())
	preferences.Get("", handlers.GetMyMealPreferences)
	preferences.Put("", handlers.UpsertMealPreferences)
}

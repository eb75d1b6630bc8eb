package routes

import (
	"github.com/antoniodasilva12/hostelmng/handlers"
	"github.com/antoniodasilva12/hostelmng/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile/me", middleware.Protected())
	profile.Get("", handlers.GetProfile)
	profile.Put("", handlers.UpdateProfile)

	health := api.Group("/health-records/me", middleware.Protected(), middleware.StudentRequired())
	health.Get("", handlers.GetMyHealthRecord)
	health.Put("", handlers.UpsertHealthRecord)
}

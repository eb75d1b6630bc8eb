package routes

import (
	"github.com/antoniodasilva12/hostelmng/handlers"
	"github.com/antoniodasilva12/hostelmng/middleware"
	"github.com/gofiber/fiber/v2"
)

func MaintenanceRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	maintenance := api.Group("/maintenance", middleware.Protected())
	maintenance.Post("", handlers.CreateMaintenanceRequest)
	maintenance.Get("/me", handlers.ListMyMaintenanceRequests)

	maintenance.Get("", middleware.AdminRequired(), handlers.ListAllMaintenanceRequests)
	maintenance.Patch("/:id/status", middleware.AdminRequired(), handlers.UpdateMaintenanceStatus)
}

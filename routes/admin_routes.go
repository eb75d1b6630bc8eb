package routes

import (
	"github.com/antoniodasilva12/hostelmng/handlers"
	"github.com/antoniodasilva12/hostelmng/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/stats", handlers.GetDashboardStats)
	admin.Get("/students", handlers.ListStudents)
	admin.Patch("/users/:id/deactivate", handlers.DeactivateUser)
}

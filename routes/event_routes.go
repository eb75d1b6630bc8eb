package routes

import (
	"github.com/antoniodasilva12/hostelmng/handlers"
	"github.com/antoniodasilva12/hostelmng/middleware"
	"github.com/gofiber/fiber/v2"
)

func EventRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	events := api.Group("/events")
	events.Get("", handlers.ListEvents)
	events.Post("", middleware.Protected(), middleware.AdminRequired(), handlers.CreateEvent)
	events.Put("/:id", middleware.Protected(), middleware.AdminRequired(), handlers.UpdateEvent)
	events.Delete("/:id", middleware.Protected(), middleware.AdminRequired(), handlers.DeleteEvent)
	events.Post("/:id/register", middleware.Protected(), handlers.RegisterForEvent)
	events.Patch("/:id/cancel-registration", middleware.Protected(), handlers.CancelEventRegistration)

	api.Get("/event-registrations/me", middleware.Protected(), handlers.ListMyEventRegistrations)
}

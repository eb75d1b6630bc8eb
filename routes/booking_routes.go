package routes

import (
	"github.com/antoniodasilva12/hostelmng/handlers"
	"github.com/antoniodasilva12/hostelmng/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	bookings := api.Group("/bookings", middleware.Protected())
	bookings.Post("", middleware.StudentRequired(), handlers.CreateRoomBooking)
	bookings.Get("/me", handlers.ListMyBookings)
	bookings.Patch("/:id/cancel", middleware.StudentRequired(), handlers.CancelRoomBooking)

	bookings.Get("", middleware.AdminRequired(), handlers.ListAllBookings)
	bookings.Patch("/:id/decision", middleware.AdminRequired(), handlers.DecideBooking)
}

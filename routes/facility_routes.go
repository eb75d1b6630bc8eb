package routes

import (
	"github.com/antoniodasilva12/hostelmng/handlers"
	"github.com/antoniodasilva12/hostelmng/middleware"
	"github.com/gofiber/fiber/v2"
)

func FacilityRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	facilities := api.Group("/facilities")
	facilities.Get("", handlers.ListFacilities)
	facilities.Post("", middleware.Protected(), middleware.AdminRequired(), handlers.CreateFacility)
	facilities.Put("/:id", middleware.Protected(), middleware.AdminRequired(), handlers.UpdateFacility)
	facilities.Delete("/:id", middleware.Protected(), middleware.AdminRequired(), handlers.DeleteFacility)

	bookings := api.Group("/facility-bookings", middleware.Protected())
	bookings.Post("", handlers.BookFacility)
	bookings.Get("/me", handlers.ListMyFacilityBookings)
	bookings.Patch("/:id/cancel", handlers.CancelFacilityBooking)
}

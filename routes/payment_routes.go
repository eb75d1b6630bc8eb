package routes

import (
	"github.com/antoniodasilva12/hostelmng/handlers"
	"github.com/antoniodasilva12/hostelmng/middleware"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// Provider callback is unauthenticated; Daraja posts the async result here.
	api.Post("/payments/mpesa/callback", handlers.HandleMpesaCallback)

	payments := api.Group("/payments", middleware.Protected())
	payments.Post("/mpesa/stkpush", handlers.InitiateMpesaPayment)
	payments.Post("", handlers.CreatePayment)
	payments.Get("/me", handlers.ListMyPayments)
	payments.Get("", middleware.AdminRequired(), handlers.ListAllPayments)
}

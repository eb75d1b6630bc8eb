package routes

import (
	"github.com/antoniodasilva12/hostelmng/handlers"
	"github.com/antoniodasilva12/hostelmng/middleware"
	"github.com/gofiber/fiber/v2"
)

func FeedbackRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	feedback := api.Group("/feedback", middleware.Protected())
	feedback.Post("", handlers.SubmitFeedback)
	feedback.Get("/me", handlers.ListMyFeedback)

	feedback.Get("", middleware.AdminRequired(), handlers.ListAllFeedback)
	feedback.Patch("/:id/status", middleware.AdminRequired(), handlers.ResolveFeedback)
}

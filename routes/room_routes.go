package routes

import (
	"github.com/antoniodasilva12/hostelmng/handlers"
	"github.com/antoniodasilva12/hostelmng/middleware"
	"github.com/gofiber/fiber/v2"
)

func RoomRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	rooms := api.Group("/rooms")
	rooms.Get("", handlers.ListRooms)
	rooms.Post("/suggest", middleware.Protected(), middleware.StudentRequired(), handlers.SuggestRoom)
	rooms.Get("/:id", handlers.GetRoom)

	rooms.Post("", middleware.Protected(), middleware.AdminRequired(), handlers.CreateRoom)
	rooms.Put("/:id", middleware.Protected(), middleware.AdminRequired(), handlers.UpdateRoom)
	rooms.Delete("/:id", middleware.Protected(), middleware.AdminRequired(), handlers.DeleteRoom)
}

package main

import (
	"log"
	"time"

	"github.com/antoniodasilva12/hostelmng/database"
	"github.com/antoniodasilva12/hostelmng/handlers"
	"github.com/antoniodasilva12/hostelmng/jobs"
	"github.com/antoniodasilva12/hostelmng/notifications"
	"github.com/antoniodasilva12/hostelmng/payments"
	"github.com/antoniodasilva12/hostelmng/routes"
	"github.com/antoniodasilva12/hostelmng/services"
	"github.com/antoniodasilva12/hostelmng/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	notifications.InitEmailService()

	handlers.PaymentSvc = services.NewPaymentService(database.DB, payments.NewMpesaService())

	go services.FetchRates()

	c := cron.New()
	c.AddFunc("*/10 * * * *", jobs.FailStalePayments)
	c.AddFunc("0 8 * * *", jobs.SendCheckInReminders)
	c.AddFunc("0 9 * * *", jobs.SendPaymentDueReminders)
	go c.Start()
	log.Println("✅ Cron jobs scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "Hostel Management",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Africa/Nairobi",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to the Hostel Management API",
		})
	})

	routes.AuthRoutes(app)
	routes.ProfileRoutes(app)
	routes.RoomRoutes(app)
	routes.BookingRoutes(app)
	routes.MealRoutes(app)
	routes.MaintenanceRoutes(app)
	routes.FacilityRoutes(app)
	routes.EventRoutes(app)
	routes.FeedbackRoutes(app)
	routes.NotificationRoutes(app)
	routes.PaymentRoutes(app)
	routes.AdminRoutes(app)
	routes.UploadRoutes(app)

	go websocket.RunHub()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	err := app.Listen(":8080")
	if err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}

package setup

import (
	"employee-records/app"
	"employee-records/handlers"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(fiberApp *fiber.App, application *app.App) {
	fiberApp.Get("/health", handlers.Health(application))

	api := fiberApp.Group("/api")

	api.Get("/employees", handlers.ListEmployees(application))
	api.Post("/employees", handlers.CreateEmployee(application))
	api.Get("/employees/:id", handlers.GetEmployee(application))
	api.Put("/employees/:id", handlers.UpdateEmployee(application))
	api.Delete("/employees/:id", handlers.DeleteEmployee(application))

	api.Post("/jobs", handlers.SubmitJob(application))
	api.Get("/jobs/:id", handlers.GetJob(application))
}

package handlers

import (
	"employee-records/app"

	"github.com/gofiber/fiber/v2"
)

// Health reports liveness and whether a bulk job currently holds the list
func Health(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return success(c, fiber.Map{
			"status": "ok",
			"busy":   a.Pages.Snapshot().IsLoading,
		})
	}
}

package handlers

import (
	"errors"

	"employee-records/app"
	"employee-records/jobs"
	"employee-records/models"

	"github.com/gofiber/fiber/v2"
)

// SubmitJob queues a bulk seed or purge job
func SubmitJob(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.SubmitJobRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		// Validate request
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		job, err := a.Jobs.Submit(jobs.Kind(req.Kind), req.Count)
		switch {
		case errors.Is(err, jobs.ErrQueueFull):
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Job queue is full"})
		case errors.Is(err, jobs.ErrWorkerStopped):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Job worker is not running"})
		case err != nil:
			return serverErrorWithDetails(c, "Failed to submit job", err)
		}

		return accepted(c, fiber.Map{"job": job})
	}
}

// GetJob returns the progress of a job
func GetJob(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		job := a.Jobs.Get(c.Params("id"))
		if job == nil {
			return notFound(c, "Job not found")
		}

		return success(c, fiber.Map{"job": job})
	}
}

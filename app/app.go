package app

import (
	"log/slog"

	"employee-records/config"
	"employee-records/database"
	"employee-records/jobs"
	"employee-records/services"
	"employee-records/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Config    *config.Config
	Repo      *database.EmployeeRepository
	Pages     *services.PageController
	Employees *services.EmployeeService
	Jobs      *jobs.Worker
	Validator *validator.Validator
	Logger    *slog.Logger
}

// New creates a new App instance with all dependencies
func New(cfg *config.Config, repo *database.EmployeeRepository, pages *services.PageController, worker *jobs.Worker, logger *slog.Logger) *App {
	return &App{
		Config:    cfg,
		Repo:      repo,
		Pages:     pages,
		Employees: services.NewEmployeeService(repo, pages, logger),
		Jobs:      worker,
		Validator: validator.New(),
		Logger:    logger,
	}
}

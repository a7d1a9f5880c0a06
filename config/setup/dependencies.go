package setup

import (
	"log/slog"

	"employee-records/app"
	"employee-records/config"
	"employee-records/database"
	"employee-records/jobs"
	"employee-records/services"
)

// InitDatabase opens the SQLite database and applies the schema
func InitDatabase(dbPath string, logger *slog.Logger) (*database.DB, error) {
	db, err := database.New(dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("database initialized", "path", dbPath, "schema_version", database.SchemaVersion)
	return db, nil
}

// InitApp initializes the application with all dependencies
func InitApp(cfg *config.Config, db *database.DB, logger *slog.Logger) *app.App {
	repo := database.NewEmployeeRepository(db, logger)

	pages := services.NewPageController(repo, cfg.PageSize, logger)
	logger.Info("page controller initialized", "page_size", cfg.PageSize)

	// Start job worker for bulk seed/purge
	worker := jobs.NewWorker(repo, pages, cfg.JobQueueSize, logger)
	worker.Start()

	application := app.New(cfg, repo, pages, worker, logger)
	logger.Info("application initialized with dependency injection")

	return application
}

// Shutdown performs graceful shutdown of all services
func Shutdown(application *app.App, db *database.DB, logger *slog.Logger) {
	logger.Info("shutting down services...")

	// Waits for a running bulk job to finish
	if application != nil && application.Jobs != nil {
		application.Jobs.Stop()
		logger.Info("job worker stopped")
	}

	if db != nil {
		db.Close()
		logger.Info("database closed")
	}
}

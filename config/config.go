package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port         string `env:"PORT" envDefault:"3000"`
	Env          string `env:"ENV" envDefault:"development"`
	DBPath       string `env:"DB_PATH" envDefault:"./data/employees.db"`
	PageSize     int    `env:"PAGE_SIZE" envDefault:"50"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigins  string `env:"CORS_ORIGINS" envDefault:"*"`
	JobQueueSize int    `env:"JOB_QUEUE_SIZE" envDefault:"8"`

	// ListWaitTimeout bounds how long a list request waits for a running
	// bulk job before answering with the loading state.
	ListWaitTimeout time.Duration `env:"LIST_WAIT_TIMEOUT" envDefault:"2s"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("PAGE_SIZE must be positive, got %d", cfg.PageSize)
	}
	if cfg.JobQueueSize < 1 {
		return nil, fmt.Errorf("JOB_QUEUE_SIZE must be positive, got %d", cfg.JobQueueSize)
	}
	if cfg.ListWaitTimeout <= 0 {
		return nil, fmt.Errorf("LIST_WAIT_TIMEOUT must be positive, got %s", cfg.ListWaitTimeout)
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

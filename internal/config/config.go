package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr    string        `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath      string        `env:"DB_PATH" envDefault:"data/swissprep.db"`
	LogLevel    slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir      string        `env:"SPA_DIR" envDefault:"../web/dist"`
	QuizSeconds int           `env:"QUIZ_SECONDS" envDefault:"30"`
	QuizTick    time.Duration `env:"QUIZ_TICK" envDefault:"1s"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.QuizSeconds <= 0 {
		return nil, fmt.Errorf("QUIZ_SECONDS must be positive, got %d", cfg.QuizSeconds)
	}
	return &cfg, nil
}

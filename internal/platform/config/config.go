package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"puericultura/internal/platform/logger"
)

// Config se arma solo desde variables de entorno.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Si DB_DSN viene, los repos van a Postgres; si no, in-memory.
	DBDSN string `env:"DB_DSN"`

	// Archivo sqlite donde se guardan los snapshots del estado completo.
	SnapshotPath     string        `env:"SNAPSHOT_PATH"`
	AutosaveInterval time.Duration `env:"AUTOSAVE_INTERVAL" envDefault:"30s"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`

	ReminderGatewayURL   string        `env:"REMINDER_GATEWAY_URL"`
	ReminderGatewayToken string        `env:"REMINDER_GATEWAY_TOKEN"`
	ReminderTimeout      time.Duration `env:"REMINDER_TIMEOUT" envDefault:"20s"`

	// API_KEY vacío = sin guard (modo dev).
	APIKey string `env:"API_KEY"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	AppName   string `env:"APP_NAME" envDefault:"puericultura"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func (c Config) Logger() logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(c.LogLevel),
		Format: logger.ParseFormat(c.LogFormat),
		App:    c.AppName,
	})
}

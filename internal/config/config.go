package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/DoyleJ11/casual-games-backend/internal/i18n"
)

type Config struct {
	Addr            string        `env:"APP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// OriginPatterns are extra hosts allowed to open the table WebSocket,
	// e.g. "localhost:5173,*.example.com".
	OriginPatterns []string `env:"WS_ORIGIN_PATTERNS" envSeparator:","`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	PreferenceDriver string `env:"PREFERENCE_DRIVER" envDefault:"memory"`
	PreferenceDSN    string `env:"PREFERENCE_DSN"`
	DefaultLanguage  string `env:"DEFAULT_LANGUAGE" envDefault:"zh"`

	// Seed fixes every rng when non-zero, for reproducible sessions.
	Seed int64 `env:"GAME_SEED"`

	CountdownSec int `env:"SICBO_COUNTDOWN_SEC" envDefault:"10"`
	StartBalance int `env:"SICBO_START_BALANCE" envDefault:"1000"`
	BoxWidth     int `env:"SICBO_BOX_WIDTH" envDefault:"160"`
	BoxHeight    int `env:"SICBO_BOX_HEIGHT" envDefault:"180"`
}

// Load reads an optional .env file and then the process environment.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.CountdownSec <= 0 {
		return fmt.Errorf("SICBO_COUNTDOWN_SEC must be positive, got %d", c.CountdownSec)
	}
	if c.StartBalance < 0 {
		return fmt.Errorf("SICBO_START_BALANCE must not be negative, got %d", c.StartBalance)
	}
	if !i18n.IsSupported(c.DefaultLanguage) {
		return fmt.Errorf("DEFAULT_LANGUAGE must be a supported language, got %q", c.DefaultLanguage)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat)
	}
	return nil
}

// internal/config/config.go
//
// Process configuration, read once at startup from the environment.
// A .env file in the working directory is loaded first when present (development).

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Modes select the presentation adapter started by main.
const (
	ModeHTTP    = "http"
	ModeConsole = "console"
)

// Config holds all settings for the guess-number process.
type Config struct {
	Mode      string `env:"GAME_MODE"  envDefault:"http"`
	Port      string `env:"PORT"       envDefault:"5175"`
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Seed pins the secret sequence; 0 means crypto randomness.
	Seed uint64 `env:"GAME_SEED" envDefault:"0"`

	DebugHints    bool          `env:"GAME_DEBUG_HINTS" envDefault:"false"`
	JWTSecret     string        `env:"JWT_SECRET"       envDefault:"dev_secret_change_me"`
	DebugTokenTTL time.Duration `env:"DEBUG_TOKEN_TTL"  envDefault:"1h"`

	ClientOrigin   string        `env:"CLIENT_ORIGIN"   envDefault:"http://localhost:5173"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
}

// Load reads .env (if any) and parses the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the environment into a Config without touching .env files.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects combinations main cannot start with.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeHTTP, ModeConsole:
	default:
		return fmt.Errorf("GAME_MODE must be %q or %q, got %q", ModeHTTP, ModeConsole, c.Mode)
	}
	if c.DebugHints && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when GAME_DEBUG_HINTS is enabled")
	}
	return nil
}

// internal/config/config.go
//
// Process configuration.
//
// Values come from the environment (optionally seeded from a .env file by
// godotenv in main) and are parsed with caarlos0/env. CLI flags override
// individual fields after Load.
package config

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds every tunable of the CLI and server.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Solver
	MaxIterations int           `env:"MAX_ITERATIONS" envDefault:"1200"`
	GuessDelay    time.Duration `env:"GUESS_DELAY" envDefault:"0s"`
	Alphabet      string        `env:"ALPHABET_FILE"`
	Placeholder   string        `env:"PLACEHOLDER" envDefault:"*"`

	// Batch
	Workers       int    `env:"WORKERS" envDefault:"0"`
	AttemptBudget int    `env:"ATTEMPT_BUDGET" envDefault:"1200"`
	PuzzlesFile   string `env:"PUZZLES_FILE"`
	ResultsFile   string `env:"RESULTS_FILE" envDefault:"results/hangman_results.csv"`

	// Server + storage
	Port                 string        `env:"PORT" envDefault:"5175"`
	DBPath               string        `env:"DB_PATH"`
	JWTSecret            string        `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	JWTExpiry            time.Duration `env:"JWT_EXPIRES" envDefault:"24h"`
	OperatorPasswordHash string        `env:"OPERATOR_PASSWORD_HASH"`
	ClientOrigin         string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return c, fmt.Errorf("parse env: %w", err)
	}
	return c, c.Validate()
}

// Validate rejects values the solver cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.MaxIterations <= 0 {
		errs = append(errs, fmt.Errorf("MAX_ITERATIONS must be positive, got %d", c.MaxIterations))
	}
	if c.GuessDelay < 0 {
		errs = append(errs, fmt.Errorf("GUESS_DELAY must not be negative, got %s", c.GuessDelay))
	}
	if c.Placeholder != "" && utf8.RuneCountInString(c.Placeholder) != 1 {
		errs = append(errs, fmt.Errorf("PLACEHOLDER must be a single character, got %q", c.Placeholder))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("WORKERS must not be negative, got %d", c.Workers))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	return errors.Join(errs...)
}

// PlaceholderRune returns the configured placeholder, or 0 to use the
// alphabet's own default.
func (c Config) PlaceholderRune() rune {
	if c.Placeholder == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(c.Placeholder)
	return r
}

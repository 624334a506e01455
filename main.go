// main.go
//
// Entry point for the hangman solver.
// Responsibilities:
//   - Loading .env (godotenv) and the environment config (internal/config).
//   - Global flags that override config: --alphabet, --max-iterations, --log-level.
//   - zerolog setup (console writer on a terminal, JSON otherwise).
//   - Dispatching to subcommands: solve, batch, serve (commands.go) and
//     hash-password (auth.go).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/robalobadob/hangman/internal/alphabet"
	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/solver"
)

// cfg is populated by the root PersistentPreRunE before any subcommand runs.
var cfg config.Config

var (
	flagAlphabet      string
	flagMaxIterations int
	flagLogLevel      string
)

var rootCmd = &cobra.Command{
	Use:   "hangman",
	Short: "Deterministic hangman solver",
	Long: `Solves hangman puzzles with a frequency, vowel and bigram heuristic.

Configuration is read from the environment (and a .env file if present);
flags override it.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAlphabet, "alphabet", "", "alphabet TOML file or embedded name (romanian|english)")
	rootCmd.PersistentFlags().IntVar(&flagMaxIterations, "max-iterations", 0, "guess cap per puzzle (0 uses MAX_ITERATIONS)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug|info|warn|error)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		stop()
		os.Exit(1)
	}
}

// setup loads configuration, applies flag overrides and configures logging.
func setup(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	c, err := config.Load()
	if err != nil {
		return err
	}
	if flagAlphabet != "" {
		c.Alphabet = flagAlphabet
	}
	if flagMaxIterations != 0 {
		c.MaxIterations = flagMaxIterations
	}
	if flagLogLevel != "" {
		c.LogLevel = flagLogLevel
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && lvl != zerolog.NoLevel {
		zerolog.SetGlobalLevel(lvl)
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return nil
}

// newSolver builds a Solver from cfg with the given pacing and observer.
func newSolver(delay time.Duration, obs solver.Observer) (*solver.Solver, error) {
	a, err := alphabet.Resolve(cfg.Alphabet)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("alphabet", a.Name()).Int("letters", a.Size()).Msg("alphabet loaded")
	return solver.New(a, solver.Options{
		MaxIterations: cfg.MaxIterations,
		PerGuessDelay: delay,
		Observer:      obs,
	}), nil
}

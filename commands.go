// commands.go
//
// Subcommands:
//   - solve: narrate one puzzle step by step.
//   - batch: solve a CSV of puzzles, write results, print the final report.
//   - serve: run the HTTP API.
package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/robalobadob/hangman/assets"
	"github.com/robalobadob/hangman/internal/batch"
	"github.com/robalobadob/hangman/internal/httpserver"
	"github.com/robalobadob/hangman/internal/narrate"
	"github.com/robalobadob/hangman/internal/puzzles"
	"github.com/robalobadob/hangman/internal/solver"
	"github.com/robalobadob/hangman/internal/store"
)

// ------------------------------- solve -------------------------------------

var (
	solveID      string
	solvePattern string
	solveTarget  string
	solveDelay   time.Duration
	solveVerbose bool
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve one puzzle with step-by-step narration",
	Long: `Solve one puzzle and narrate every guess.

Examples:
  hangman solve --pattern '*A*T*' --target CARTE
  hangman solve --pattern '*****' --target house --alphabet english --delay 300ms`,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&solveID, "id", "cli", "game id shown in the narration")
	solveCmd.Flags().StringVar(&solvePattern, "pattern", "", "initial pattern, placeholder for unknown letters")
	solveCmd.Flags().StringVar(&solveTarget, "target", "", "word to guess")
	solveCmd.Flags().DurationVar(&solveDelay, "delay", 0, "pause between guesses (default GUESS_DELAY)")
	solveCmd.Flags().BoolVar(&solveVerbose, "verbose", false, "also emit debug log events per guess")
	_ = solveCmd.MarkFlagRequired("pattern")
	_ = solveCmd.MarkFlagRequired("target")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	delay := cfg.GuessDelay
	if cmd.Flags().Changed("delay") {
		delay = solveDelay
	}
	obs := solver.Observers{narrate.NewConsole(cmd.OutOrStdout())}
	if solveVerbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		obs = append(obs, narrate.NewLog(log.Logger))
	}

	s, err := newSolver(delay, obs)
	if err != nil {
		return err
	}
	_, err = s.Solve(solver.Puzzle{
		ID:          solveID,
		Pattern:     solvePattern,
		Target:      solveTarget,
		Placeholder: cfg.PlaceholderRune(),
	})
	return err
}

// ------------------------------- batch -------------------------------------

var (
	batchIn       string
	batchOut      string
	batchWorkers  int
	batchBudget   int
	batchDB       string
	batchProgress bool
	batchQuiet    bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Solve a CSV of puzzles and report totals",
	Long: `Solve every puzzle in a CSV file (game_id, pattern_initial, cuvant_tinta),
write per-game results and print the final report.

Without --in the embedded sample set is used.

Examples:
  hangman batch --in data/puzzles.csv --out results/out.csv
  hangman batch --workers 4 --progress --db data/runs.db`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchIn, "in", "", "puzzle CSV (default PUZZLES_FILE, else the embedded sample)")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "results CSV (default RESULTS_FILE)")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "parallel solves (default WORKERS, 0 = GOMAXPROCS)")
	batchCmd.Flags().IntVar(&batchBudget, "budget", 0, "total attempt budget (default ATTEMPT_BUDGET)")
	batchCmd.Flags().StringVar(&batchDB, "db", "", "persist the run to this SQLite file (default DB_PATH)")
	batchCmd.Flags().BoolVar(&batchProgress, "progress", false, "show a progress bar")
	batchCmd.Flags().BoolVarP(&batchQuiet, "quiet", "q", false, "only print the final report")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	in := firstNonEmpty(batchIn, cfg.PuzzlesFile)
	out := firstNonEmpty(batchOut, cfg.ResultsFile)
	dbPath := firstNonEmpty(batchDB, cfg.DBPath)
	workers := cfg.Workers
	if batchWorkers > 0 {
		workers = batchWorkers
	}
	budget := cfg.AttemptBudget
	if batchBudget > 0 {
		budget = batchBudget
	}

	set, err := puzzles.Load(in)
	if err != nil {
		return err
	}
	if len(set.Puzzles) == 0 {
		return fmt.Errorf("no valid puzzles in %s", firstNonEmpty(in, "embedded sample"))
	}
	for i := range set.Puzzles {
		set.Puzzles[i].Placeholder = cfg.PlaceholderRune()
	}
	log.Info().Int("games", len(set.Puzzles)).Int("skipped", len(set.Skipped)).Msg("puzzles loaded")

	s, err := newSolver(0, narrate.NewLog(log.Logger))
	if err != nil {
		return err
	}

	opts := batch.Options{Workers: workers, Budget: budget}
	var bar *progressbar.ProgressBar
	if batchProgress {
		bar = progressbar.Default(int64(len(set.Puzzles)), "solving")
		opts.Progress = bar
	}
	res, err := batch.New(s, opts).Run(cmd.Context(), set.Puzzles)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if !batchQuiet {
		printGames(w, res.Outcomes)
	}
	if err := puzzles.WriteFile(out, res.Outcomes); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nResults saved to %s\n", out)

	if dbPath != "" {
		db, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := store.Migrate(db, assets.Migrations()); err != nil {
			return err
		}
		run := store.NewRun(s.Alphabet().Name(), s.MaxIterations(), res)
		if err := store.NewSQLiteStore(db).SaveRun(cmd.Context(), run); err != nil {
			return err
		}
		log.Info().Str("run_id", run.ID).Str("db", dbPath).Msg("run stored")
	}

	printReport(w, res.Report)
	return nil
}

// printGames lists one line per outcome, in input order.
func printGames(w io.Writer, outcomes []solver.Outcome) {
	n := len(outcomes)
	for i, o := range outcomes {
		status := color.GreenString(o.Status())
		if !o.Solved {
			status = color.RedString(o.Status())
		}
		fmt.Fprintf(w, "[%d/%d] game %s: %s | attempts: %d | letters: %d\n",
			i+1, n, o.ID, status, o.Attempts, o.Distinct)
	}
}

const reportRule = "============================================================"

// printReport prints the final batch report.
func printReport(w io.Writer, r batch.Report) {
	fmt.Fprintln(w)
	color.New(color.Bold).Fprintln(w, "FINAL REPORT")
	fmt.Fprintln(w, reportRule)
	fmt.Fprintf(w, "Games processed:  %d\n", r.Games)
	fmt.Fprintf(w, "Games solved:     %d/%d (%.1f%%)\n", r.Solved, r.Games, r.SolveRate*100)
	fmt.Fprintf(w, "Games failed:     %d\n", r.Failed)
	if r.Invalid > 0 {
		fmt.Fprintf(w, "Invalid puzzles:  %d\n", r.Invalid)
	}
	fmt.Fprintf(w, "Total attempts:   %d\n", r.TotalAttempts)
	fmt.Fprintf(w, "Wrong guesses:    %d\n", r.TotalWrong)
	fmt.Fprintf(w, "Average attempts: %.1f\n", r.AverageAttempts)
	if r.WithinBudget {
		color.New(color.FgGreen, color.Bold).Fprintf(w, "Within the budget of %d attempts\n", r.Budget)
	} else {
		color.New(color.FgYellow, color.Bold).Fprintf(w, "Over the budget of %d attempts (+%d)\n", r.Budget, r.OverBudget())
	}
	fmt.Fprintln(w, reportRule)
}

// ------------------------------- serve -------------------------------------

var (
	servePort string
	serveDB   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve the solver over HTTP.

Runs are kept in memory unless DB_PATH (or --db) names a SQLite file.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (default PORT)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "SQLite file for stored runs (default DB_PATH)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := newSolver(0, nil)
	if err != nil {
		return err
	}

	st := store.NewMemoryStore()
	if dbPath := firstNonEmpty(serveDB, cfg.DBPath); dbPath != "" {
		db, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := store.Migrate(db, assets.Migrations()); err != nil {
			return err
		}
		st = store.NewSQLiteStore(db)
		log.Info().Str("db", dbPath).Msg("using sqlite run store")
	}
	if cfg.OperatorPasswordHash == "" {
		log.Warn().Msg("OPERATOR_PASSWORD_HASH not set; POST /runs is unavailable")
	}

	srv := httpserver.New(httpserver.Options{
		Store:                st,
		Solver:               s,
		Placeholder:          cfg.PlaceholderRune(),
		Workers:              cfg.Workers,
		Budget:               cfg.AttemptBudget,
		JWTSecret:            cfg.JWTSecret,
		JWTExpiry:            cfg.JWTExpiry,
		OperatorPasswordHash: cfg.OperatorPasswordHash,
		ClientOrigin:         cfg.ClientOrigin,
	})
	port := firstNonEmpty(servePort, cfg.Port)
	log.Info().Str("port", port).Str("alphabet", s.Alphabet().Name()).Msg("starting hangman server")
	return srv.Start(":" + port)
}

// ------------------------------- small util --------------------------------

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

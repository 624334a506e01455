// internal/batch/batch.go
//
// Batch runner: solves many puzzles and aggregates statistics.
//
// Puzzles are independent (one board each, shared read-only alphabet), so
// they are solved on a bounded worker pool. Results keep input order.
// A puzzle whose target is empty is reported as failed and counted, it
// never aborts the batch.
package batch

import (
	"context"
	"runtime"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/hangman/internal/solver"
)

// DefaultBudget is the total-attempt budget a batch is measured against.
const DefaultBudget = 1200

// Progress is notified once per finished puzzle. Implementations must be
// safe for concurrent use.
type Progress interface {
	Add(n int) error
}

// Options configures a Runner.
type Options struct {
	Workers  int      // <= 0 means GOMAXPROCS.
	Budget   int      // <= 0 means DefaultBudget.
	Progress Progress // Optional.
}

// Runner drives a Solver over many puzzles.
type Runner struct {
	solver   *solver.Solver
	workers  int
	budget   int
	progress Progress
}

// New constructs a Runner.
func New(s *solver.Solver, opts Options) *Runner {
	r := &Runner{solver: s, workers: opts.Workers, budget: opts.Budget, progress: opts.Progress}
	if r.workers <= 0 {
		r.workers = runtime.GOMAXPROCS(0)
	}
	if r.budget <= 0 {
		r.budget = DefaultBudget
	}
	return r
}

// Report aggregates a batch.
type Report struct {
	Games           int     `json:"games"`
	Solved          int     `json:"solved"`
	Failed          int     `json:"failed"`
	Invalid         int     `json:"invalid"`
	TotalAttempts   int     `json:"totalAttempts"`
	TotalWrong      int     `json:"totalWrong"`
	AverageAttempts float64 `json:"averageAttempts"`
	SolveRate       float64 `json:"solveRate"`
	Budget          int     `json:"budget"`
	WithinBudget    bool    `json:"withinBudget"`
}

// OverBudget is how far the total reaches past the budget (0 when within).
func (r Report) OverBudget() int {
	if r.WithinBudget {
		return 0
	}
	return r.TotalAttempts - r.Budget
}

// Result is the outcome of a batch: per-puzzle outcomes in input order plus
// the aggregate report.
type Result struct {
	Outcomes []solver.Outcome
	Report   Report
}

// Run solves every puzzle. It only returns an error when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, puzzles []solver.Puzzle) (Result, error) {
	outcomes := make([]solver.Outcome, len(puzzles))
	invalid := make([]bool, len(puzzles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(r.workers, len(puzzles))))

	for i, p := range puzzles {
		i, p := i, p // per-iteration copies (Go <1.22 loop semantics)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			o, err := r.solver.Solve(p)
			if err != nil {
				log.Warn().Err(err).Str("game_id", p.ID).Msg("invalid puzzle")
				o = solver.Outcome{ID: p.ID, Reason: solver.ReasonExhausted}
				invalid[i] = true
			}
			// Each goroutine owns index i.
			outcomes[i] = o
			if r.progress != nil {
				_ = r.progress.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	rep := Summarize(outcomes, r.budget)
	for _, bad := range invalid {
		if bad {
			rep.Invalid++
		}
	}
	return Result{Outcomes: outcomes, Report: rep}, nil
}

// Summarize computes a Report over outcomes.
func Summarize(outcomes []solver.Outcome, budget int) Report {
	rep := Report{Games: len(outcomes), Budget: budget}
	for _, o := range outcomes {
		if o.Solved {
			rep.Solved++
		} else {
			rep.Failed++
		}
		rep.TotalAttempts += o.Attempts
		rep.TotalWrong += o.Wrong
	}
	rep.Derive()
	return rep
}

// Derive fills the averages and the budget verdict from the counters.
func (r *Report) Derive() {
	r.AverageAttempts, r.SolveRate = 0, 0
	if r.Games > 0 {
		r.AverageAttempts = float64(r.TotalAttempts) / float64(r.Games)
		r.SolveRate = float64(r.Solved) / float64(r.Games)
	}
	r.WithinBudget = r.TotalAttempts < r.Budget
}

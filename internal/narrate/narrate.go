// internal/narrate/narrate.go
//
// Observers that turn solve-loop events into output.
//   - Console: human playback of a single puzzle, colored when the writer
//     is a terminal.
//   - Log:     structured zerolog events, safe for concurrent batch use.
package narrate

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/robalobadob/hangman/internal/solver"
)

var (
	hitColor   = color.New(color.FgGreen, color.Bold)
	missColor  = color.New(color.FgRed)
	titleColor = color.New(color.FgCyan, color.Bold)
	dimColor   = color.New(color.Faint)
)

const rule = "============================================================"

// Console prints a step-by-step account of one solve.
type Console struct {
	mu  sync.Mutex
	w   io.Writer
	max int
}

// NewConsole writes narration to w.
func NewConsole(w io.Writer) *Console { return &Console{w: w} }

func (c *Console) Started(p solver.Puzzle, display string, maxIterations int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.max = maxIterations
	fmt.Fprintln(c.w, rule)
	titleColor.Fprintf(c.w, "HANGMAN SOLVER  game %s\n", p.ID)
	fmt.Fprintln(c.w, rule)
	fmt.Fprintf(c.w, "Word length:     %d\n", len([]rune(display)))
	fmt.Fprintf(c.w, "Iteration limit: %d\n", maxIterations)
	fmt.Fprintf(c.w, "Initial pattern: %s\n", p.Pattern)
	fmt.Fprintf(c.w, "Current state:   %s\n", spaced(display))
}

func (c *Console) Guessed(e solver.GuessEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w)
	if e.Hit() {
		hitColor.Fprintf(c.w, "[#%d] '%c' found", e.Attempt, e.Letter)
		dimColor.Fprintf(c.w, " (%s)\n", e.Source)
		fmt.Fprintf(c.w, "   -> positions: %s\n", oneBased(e.Positions))
		fmt.Fprintf(c.w, "   -> state:     %s\n", spaced(e.Display))
		return
	}
	missColor.Fprintf(c.w, "[#%d] '%c' not in word", e.Attempt, e.Letter)
	dimColor.Fprintf(c.w, " (%s)\n", e.Source)
	fmt.Fprintf(c.w, "   -> wrong so far: %d\n", e.Wrong)
	fmt.Fprintf(c.w, "   -> state:        %s\n", spaced(e.Display))
}

func (c *Console) Finished(o solver.Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w)
	fmt.Fprintln(c.w, rule)
	if o.Solved {
		hitColor.Fprintln(c.w, "SOLVED")
		fmt.Fprintf(c.w, "Word:          %s\n", o.Target)
	} else {
		missColor.Fprintf(c.w, "FAILED (%s)\n", o.Reason)
		fmt.Fprintf(c.w, "Correct word:  %s\n", o.Target)
		fmt.Fprintf(c.w, "Reached:       %s\n", spaced(o.Display))
	}
	fmt.Fprintf(c.w, "Attempts:      %d / %d\n", o.Attempts, c.max)
	fmt.Fprintf(c.w, "Wrong guesses: %d\n", o.Wrong)
	fmt.Fprintf(c.w, "Letters tried: %d\n", o.Distinct)
	if c.max > 0 {
		fmt.Fprintf(c.w, "Limit used:    %.2f%%\n", float64(o.Attempts)/float64(c.max)*100)
	}
	fmt.Fprintf(c.w, "Sequence:      %s\n", o.SequenceString())
	fmt.Fprintln(c.w, rule)
}

// spaced renders "_A_T_" as "_ A _ T _" for readability.
func spaced(s string) string {
	rs := []rune(s)
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

func oneBased(pos []int) string {
	parts := make([]string, len(pos))
	for i, p := range pos {
		parts[i] = fmt.Sprint(p + 1)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Log emits zerolog events: guesses at debug, outcomes at info.
type Log struct {
	l zerolog.Logger
}

// NewLog wraps a logger.
func NewLog(l zerolog.Logger) Log { return Log{l: l} }

func (n Log) Started(p solver.Puzzle, display string, maxIterations int) {
	n.l.Debug().
		Str("game_id", p.ID).
		Str("display", display).
		Int("max_iterations", maxIterations).
		Msg("solve started")
}

func (n Log) Guessed(e solver.GuessEvent) {
	n.l.Debug().
		Str("game_id", e.PuzzleID).
		Int("attempt", e.Attempt).
		Str("letter", string(e.Letter)).
		Str("source", string(e.Source)).
		Bool("hit", e.Hit()).
		Str("display", e.Display).
		Msg("guess")
}

func (n Log) Finished(o solver.Outcome) {
	n.l.Info().
		Str("game_id", o.ID).
		Str("status", o.Status()).
		Str("reason", string(o.Reason)).
		Int("attempts", o.Attempts).
		Int("wrong", o.Wrong).
		Int("letters", o.Distinct).
		Msg("solve finished")
}

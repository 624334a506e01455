// internal/solver/types.go
//
// Core type definitions for the solve loop.
// Defines:
//   - Puzzle:  one (id, initial pattern, target) input record.
//   - Reason:  why a solve stopped.
//   - Outcome: the immutable result of one solve.
package solver

import "strings"

// NotFound is reported as the found word of a failed puzzle.
const NotFound = "N/A"

// Puzzle is one game to solve. Pattern uses Placeholder (or the alphabet's
// default when zero) for unknown positions; other characters are revealed
// letters in any case.
type Puzzle struct {
	ID          string `json:"id"`
	Pattern     string `json:"pattern"`
	Target      string `json:"target"`
	Placeholder rune   `json:"-"`
}

// Reason is the terminal state of a solve.
type Reason string

const (
	ReasonSolved       Reason = "solved"
	ReasonExhausted    Reason = "alphabet_exhausted"
	ReasonIterationCap Reason = "iteration_cap"
)

// Outcome is produced once per puzzle when the loop terminates.
type Outcome struct {
	ID       string // Puzzle identifier.
	Target   string // Normalized target word.
	Display  string // Final masked display, '_' for blanks.
	Solved   bool
	Reason   Reason
	Attempts int    // Guesses made by the solver (seeded letters excluded).
	Wrong    int    // Guesses that did not occur in the target.
	Distinct int    // Size of the guessed set, seeded letters included.
	Sequence []rune // Guesses in chronological order, hits and misses.
}

// Status is "solved" or "failed".
func (o Outcome) Status() string {
	if o.Solved {
		return "solved"
	}
	return "failed"
}

// FoundWord is the target when solved, NotFound otherwise.
func (o Outcome) FoundWord() string {
	if o.Solved {
		return o.Target
	}
	return NotFound
}

// Letters renders the guess sequence as individual strings.
func (o Outcome) Letters() []string {
	out := make([]string, len(o.Sequence))
	for i, r := range o.Sequence {
		out[i] = string(r)
	}
	return out
}

// SequenceString joins the guess sequence with ", ".
func (o Outcome) SequenceString() string {
	return strings.Join(o.Letters(), ", ")
}

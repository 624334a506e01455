// internal/solver/solve.go
//
// The solve loop for a single puzzle.
//
// State machine:
//   Seeding  → build the board from target + initial pattern.
//   Guessing → repeat: solved? cap reached? pick a letter (gap resolver,
//              then scorer), apply it, record it.
//   Solved / Exhausted → produce the Outcome.
//
// Exhausted covers both the iteration cap and an alphabet with no
// unguessed letters left; neither is an error.
package solver

import (
	"fmt"
	"time"

	"github.com/robalobadob/hangman/internal/alphabet"
	"github.com/robalobadob/hangman/internal/board"
)

// DefaultMaxIterations caps guesses per puzzle.
const DefaultMaxIterations = 1200

// Options tunes the loop.
type Options struct {
	// MaxIterations caps the number of guesses. Zero or negative means
	// DefaultMaxIterations.
	MaxIterations int
	// PerGuessDelay paces interactive playback; batch runs leave it zero.
	PerGuessDelay time.Duration
	// Observer receives loop events; nil means NopObserver.
	Observer Observer
}

// Solver runs puzzles against one alphabet. It keeps no per-puzzle state,
// so one Solver can serve many goroutines as long as its Observer can.
type Solver struct {
	alpha    *alphabet.Model
	strategy Strategy
	max      int
	delay    time.Duration
	obs      Observer
	sleep    func(time.Duration)
}

// New constructs a Solver.
func New(a *alphabet.Model, opts Options) *Solver {
	s := &Solver{
		alpha:    a,
		strategy: NewStrategy(a),
		max:      opts.MaxIterations,
		delay:    opts.PerGuessDelay,
		obs:      opts.Observer,
		sleep:    time.Sleep,
	}
	if s.max <= 0 {
		s.max = DefaultMaxIterations
	}
	if s.obs == nil {
		s.obs = NopObserver{}
	}
	return s
}

// Alphabet returns the model the solver scores with.
func (s *Solver) Alphabet() *alphabet.Model { return s.alpha }

// MaxIterations returns the effective iteration cap.
func (s *Solver) MaxIterations() int { return s.max }

// Strategy exposes the letter-selection heuristic.
func (s *Solver) Strategy() Strategy { return s.strategy }

// Solve runs p to completion. Only an empty target is an error.
func (s *Solver) Solve(p Puzzle) (Outcome, error) {
	// Seeding: the single normalization boundary for this puzzle.
	target := s.alpha.Normalize(p.Target)
	b, err := board.New(target)
	if err != nil {
		return Outcome{}, fmt.Errorf("puzzle %q: %w", p.ID, err)
	}
	placeholder := p.Placeholder
	if placeholder == 0 {
		placeholder = s.alpha.Placeholder()
	}
	b.SeedFromPattern(s.alpha.Normalize(p.Pattern), placeholder)
	s.obs.Started(p, b.String(), s.max)

	out := Outcome{ID: p.ID, Target: string(target)}

	// Guessing.
	for {
		if b.IsSolved() {
			out.Reason = ReasonSolved
			break
		}
		if out.Attempts >= s.max {
			out.Reason = ReasonIterationCap
			break
		}
		letter, src, ok := s.strategy.Next(b)
		if !ok {
			out.Reason = ReasonExhausted
			break
		}

		positions := b.ApplyGuess(letter)
		out.Attempts++
		out.Sequence = append(out.Sequence, letter)
		if len(positions) == 0 {
			out.Wrong++
		}
		s.obs.Guessed(GuessEvent{
			PuzzleID:  p.ID,
			Attempt:   out.Attempts,
			Letter:    letter,
			Source:    src,
			Positions: positions,
			Display:   b.String(),
			Wrong:     out.Wrong,
		})
		if s.delay > 0 {
			s.sleep(s.delay)
		}
	}

	out.Solved = out.Reason == ReasonSolved
	out.Distinct = b.GuessedCount()
	out.Display = b.String()
	s.obs.Finished(out)
	return out, nil
}

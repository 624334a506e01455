package solver

// GuessEvent describes one applied guess.
type GuessEvent struct {
	PuzzleID  string
	Attempt   int    // 1-based attempt number.
	Letter    rune
	Source    Source // Gap resolver or scorer.
	Positions []int  // 0-based hits; empty for a wrong guess.
	Display   string // Masked display after the guess.
	Wrong     int    // Wrong guesses so far, this one included.
}

// Hit reports whether the guess revealed anything.
func (e GuessEvent) Hit() bool { return len(e.Positions) > 0 }

// Observer receives solve-loop transitions. It never owns puzzle state;
// implementations used by the batch runner must be safe for concurrent use.
type Observer interface {
	Started(p Puzzle, display string, maxIterations int)
	Guessed(e GuessEvent)
	Finished(o Outcome)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) Started(Puzzle, string, int) {}
func (NopObserver) Guessed(GuessEvent)          {}
func (NopObserver) Finished(Outcome)            {}

// Observers fans events out to several observers in order.
type Observers []Observer

func (obs Observers) Started(p Puzzle, display string, maxIterations int) {
	for _, o := range obs {
		o.Started(p, display, maxIterations)
	}
}

func (obs Observers) Guessed(e GuessEvent) {
	for _, o := range obs {
		o.Guessed(e)
	}
}

func (obs Observers) Finished(out Outcome) {
	for _, o := range obs {
		o.Finished(out)
	}
}

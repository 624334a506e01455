package solver

import "github.com/robalobadob/hangman/internal/board"

// Gap resolution only runs when this few blanks remain.
const (
	minGapBlanks = 1
	maxGapBlanks = 2
)

// gapEligible reports whether the gap resolver may run for b.
func gapEligible(b *board.Board) bool {
	n := b.BlankCount()
	return n >= minGapBlanks && n <= maxGapBlanks
}

// FindGapLetter looks for a blank cell with revealed letters on both sides
// and returns the first unguessed letter, in ranking order, that forms a
// known bigram with both neighbours. Boundary cells never qualify.
func (s Strategy) FindGapLetter(b *board.Board) (rune, bool) {
	n := b.Len()
	for i := 1; i < n-1; i++ {
		if b.At(i) != board.Blank {
			continue
		}
		left, right := b.At(i-1), b.At(i+1)
		if left == board.Blank || right == board.Blank {
			continue
		}
		for _, r := range s.alpha.Letters() {
			if b.Guessed(r) {
				continue
			}
			if s.alpha.IsKnownBigram(left, r) && s.alpha.IsKnownBigram(r, right) {
				return r, true
			}
		}
	}
	return 0, false
}

// Source says which part of the strategy produced a guess.
type Source string

const (
	SourceGap    Source = "gap"
	SourceScorer Source = "scorer"
)

// Next picks the next guess: the gap resolver first when one or two blanks
// remain, the scorer otherwise or when no gap letter fits. ok is false when
// the alphabet is exhausted.
func (s Strategy) Next(b *board.Board) (letter rune, src Source, ok bool) {
	if gapEligible(b) {
		if r, found := s.FindGapLetter(b); found {
			return r, SourceGap, true
		}
	}
	letter, ok = s.ChooseNextLetter(b)
	return letter, SourceScorer, ok
}

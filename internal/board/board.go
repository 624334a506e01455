// internal/board/board.go
//
// State of a single in-progress puzzle.
//
// A Board owns the target word, the set of guessed letters and the masked
// display derived from them. It is created per solve and never shared
// between goroutines. Letters are expected in canonical form (see
// alphabet.Model.Normalize); the Board compares runes exactly.
package board

import (
	"errors"
	"strings"
	"unicode"

	mapset "github.com/deckarep/golang-set/v2"
)

// Blank marks an unrevealed cell in Masked().
const Blank rune = 0

// ErrEmptyTarget is returned by New for a zero-length target word.
var ErrEmptyTarget = errors.New("board: empty target word")

// Board is one puzzle's target and guesses.
type Board struct {
	target  []rune
	guessed mapset.Set[rune]
	masked  []rune
}

// New creates a board for target with nothing guessed.
func New(target []rune) (*Board, error) {
	if len(target) == 0 {
		return nil, ErrEmptyTarget
	}
	b := &Board{
		target:  append([]rune(nil), target...),
		guessed: mapset.NewThreadUnsafeSet[rune](),
		masked:  make([]rune, len(target)),
	}
	b.recompute()
	return b, nil
}

// SeedFromPattern marks every non-placeholder letter of pattern as guessed,
// so a puzzle can start partially revealed. Whitespace is ignored. It
// returns the letters newly added, in pattern order.
func (b *Board) SeedFromPattern(pattern []rune, placeholder rune) []rune {
	var added []rune
	for _, r := range pattern {
		if r == placeholder || unicode.IsSpace(r) {
			continue
		}
		if b.guessed.Add(r) {
			added = append(added, r)
		}
	}
	b.recompute()
	return added
}

// ApplyGuess records letter and returns the 0-based positions where it
// occurs in the target. An empty result means the guess was wrong.
func (b *Board) ApplyGuess(letter rune) []int {
	b.guessed.Add(letter)
	var positions []int
	for i, r := range b.target {
		if r == letter {
			positions = append(positions, i)
		}
	}
	if len(positions) > 0 {
		b.recompute()
	}
	return positions
}

// recompute rebuilds the masked display from target and guessed letters.
func (b *Board) recompute() {
	for i, r := range b.target {
		if b.guessed.Contains(r) {
			b.masked[i] = r
		} else {
			b.masked[i] = Blank
		}
	}
}

// IsSolved reports whether no cell is blank.
func (b *Board) IsSolved() bool { return b.BlankCount() == 0 }

// BlankCount is the number of unrevealed cells.
func (b *Board) BlankCount() int {
	n := 0
	for _, r := range b.masked {
		if r == Blank {
			n++
		}
	}
	return n
}

// Len is the length of the target word.
func (b *Board) Len() int { return len(b.target) }

// At returns the display cell at i (Blank if unrevealed).
func (b *Board) At(i int) rune { return b.masked[i] }

// Masked returns a copy of the display.
func (b *Board) Masked() []rune { return append([]rune(nil), b.masked...) }

// Target returns a copy of the target word.
func (b *Board) Target() []rune { return append([]rune(nil), b.target...) }

// Guessed reports whether letter has been guessed or seeded.
func (b *Board) Guessed(letter rune) bool { return b.guessed.Contains(letter) }

// GuessedCount is the size of the guessed set, seeded letters included.
func (b *Board) GuessedCount() int { return b.guessed.Cardinality() }

// Contains reports whether letter occurs in the target.
func (b *Board) Contains(letter rune) bool {
	for _, r := range b.target {
		if r == letter {
			return true
		}
	}
	return false
}

// String renders the display with '_' for blanks.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(len(b.masked))
	for _, r := range b.masked {
		if r == Blank {
			sb.WriteByte('_')
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

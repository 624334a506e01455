// internal/solver/scorer.go
//
// Letter scoring heuristic.
//
// A candidate's score is the sum of four independent signals:
//   - frequency: (alphabet size - rank) * 5, zero for unranked letters
//   - vowel:     flat bonus for vowels
//   - repeat:    bonus per revealed cell already showing the letter
//   - bigram:    bonus per blank cell where the letter would form a known
//                bigram with its revealed neighbour
//
// The repeat signal only fires when scoring an already guessed letter, which
// ChooseNextLetter never does.
package solver

import (
	"github.com/robalobadob/hangman/internal/alphabet"
	"github.com/robalobadob/hangman/internal/board"
)

const (
	frequencyWeight = 5
	vowelBonus      = 100
	repeatBonus     = 50
	bigramBonus     = 40
)

// Strategy picks letters for a board using one alphabet's statistics.
// It holds no mutable state and may be shared between goroutines.
type Strategy struct {
	alpha *alphabet.Model
}

// NewStrategy binds the heuristic to an alphabet.
func NewStrategy(a *alphabet.Model) Strategy { return Strategy{alpha: a} }

// Score rates letter for the current board. Pure: identical inputs always
// give identical scores.
func (s Strategy) Score(letter rune, b *board.Board) int {
	score := 0
	if pos, ok := s.alpha.Rank(letter); ok {
		score += (s.alpha.Size() - pos) * frequencyWeight
	}
	if s.alpha.IsVowel(letter) {
		score += vowelBonus
	}

	n := b.Len()
	for i := 0; i < n; i++ {
		c := b.At(i)
		if c == board.Blank {
			continue
		}
		if c == letter {
			score += repeatBonus
		}
		// Blank to the left of c: letter would precede it.
		if i > 0 && b.At(i-1) == board.Blank && s.alpha.IsKnownBigram(letter, c) {
			score += bigramBonus
		}
		// Blank to the right of c: letter would follow it.
		if i < n-1 && b.At(i+1) == board.Blank && s.alpha.IsKnownBigram(c, letter) {
			score += bigramBonus
		}
	}
	return score
}

// ChooseNextLetter returns the highest scoring unguessed letter. Ties go to
// the letter that comes first in the ranking. ok is false only when every
// alphabet letter has been guessed.
func (s Strategy) ChooseNextLetter(b *board.Board) (letter rune, ok bool) {
	best := -1
	for _, r := range s.alpha.Letters() {
		if b.Guessed(r) {
			continue
		}
		if sc := s.Score(r, b); sc > best {
			best, letter, ok = sc, r, true
		}
	}
	return letter, ok
}

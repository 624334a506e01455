package board

import (
	"errors"
	"slices"
	"testing"
)

func TestNewRejectsEmptyTarget(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrEmptyTarget) {
		t.Fatalf("err = %v, want ErrEmptyTarget", err)
	}
}

func TestSeedFromPattern(t *testing.T) {
	b, err := New([]rune("CARTE"))
	if err != nil {
		t.Fatal(err)
	}
	added := b.SeedFromPattern([]rune("*A*T*"), '*')
	if string(added) != "AT" {
		t.Fatalf("added = %q, want AT", string(added))
	}
	if b.String() != "_A_T_" {
		t.Fatalf("display = %q", b.String())
	}
	if b.GuessedCount() != 2 || !b.Guessed('A') || !b.Guessed('T') {
		t.Fatalf("guessed set wrong: count %d", b.GuessedCount())
	}
	if b.BlankCount() != 3 || b.IsSolved() {
		t.Fatalf("blank count = %d", b.BlankCount())
	}
}

func TestSeedSkipsSpacesAndDuplicates(t *testing.T) {
	b, _ := New([]rune("MASCA"))
	added := b.SeedFromPattern([]rune(" M**A A "), '*')
	if string(added) != "MA" {
		t.Fatalf("added = %q", string(added))
	}
	if b.String() != "MA__A" {
		t.Fatalf("display = %q", b.String())
	}
}

func TestSeedWithLettersOutsideTarget(t *testing.T) {
	b, _ := New([]rune("CAP"))
	b.SeedFromPattern([]rune("Z**"), '*')
	if !b.Guessed('Z') || b.BlankCount() != 3 {
		t.Fatalf("unexpected state %q guessed=%d", b.String(), b.GuessedCount())
	}
}

func TestApplyGuess(t *testing.T) {
	b, _ := New([]rune("MASCA"))

	if pos := b.ApplyGuess('A'); !slices.Equal(pos, []int{1, 4}) {
		t.Fatalf("positions = %v", pos)
	}
	if b.String() != "_A__A" {
		t.Fatalf("display = %q", b.String())
	}

	if pos := b.ApplyGuess('E'); len(pos) != 0 {
		t.Fatalf("wrong guess returned %v", pos)
	}
	if !b.Guessed('E') || b.String() != "_A__A" {
		t.Fatal("wrong guess must be recorded without revealing anything")
	}

	for _, r := range "MSC" {
		b.ApplyGuess(r)
	}
	if !b.IsSolved() || b.String() != "MASCA" {
		t.Fatalf("display = %q", b.String())
	}
	if b.GuessedCount() != 5 {
		t.Fatalf("guessed count = %d", b.GuessedCount())
	}
}

func TestMaskedIsDerivedAndCopied(t *testing.T) {
	b, _ := New([]rune("ȘCOALĂ"))
	b.ApplyGuess('Ș')
	m := b.Masked()
	want := []rune{'Ș', Blank, Blank, Blank, Blank, Blank}
	if !slices.Equal(m, want) {
		t.Fatalf("masked = %q", m)
	}
	m[1] = 'X'
	if b.At(1) != Blank {
		t.Fatal("Masked() must return a copy")
	}
	if b.Len() != 6 || !b.Contains('Ă') || b.Contains('E') {
		t.Fatal("length or contains wrong for multibyte target")
	}
}

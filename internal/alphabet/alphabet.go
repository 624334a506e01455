// internal/alphabet/alphabet.go
//
// Static language data for the solver.
// Responsibilities:
//   - Letter ranking (most frequent first), vowel set, bigram set.
//   - The single case/composition normalization boundary for letters.
//   - Loading alphabet descriptions from TOML (embedded or on disk).
//
// A Model is immutable once built and safe for any number of concurrent readers.
package alphabet

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalid is wrapped by every validation failure from New/Load.
var ErrInvalid = errors.New("alphabet: invalid definition")

// Spec is the declarative form of an alphabet, as found in the TOML files.
type Spec struct {
	Name        string            `toml:"name"`
	Language    string            `toml:"language"`
	Placeholder string            `toml:"placeholder"`
	Ranking     []string          `toml:"ranking"`
	Vowels      []string          `toml:"vowels"`
	Bigrams     []string          `toml:"bigrams"`
	Aliases     map[string]string `toml:"aliases"`
}

// Model holds ranking, vowels and bigrams for one language.
type Model struct {
	name        string
	lang        language.Tag
	placeholder rune
	ranking     []rune
	rank        map[rune]int
	vowels      map[rune]struct{}
	bigrams     map[[2]rune]struct{}
	aliases     map[rune]rune
}

// New validates s and builds a Model. Letters in s are normalized with the
// same rules the Model later applies to puzzle input.
func New(s Spec) (*Model, error) {
	tag := language.Und
	if s.Language != "" {
		t, err := language.Parse(s.Language)
		if err != nil {
			return nil, fmt.Errorf("%w: language %q: %v", ErrInvalid, s.Language, err)
		}
		tag = t
	}
	m := &Model{
		name:        s.Name,
		lang:        tag,
		placeholder: '*',
		rank:        make(map[rune]int, len(s.Ranking)),
		vowels:      make(map[rune]struct{}, len(s.Vowels)),
		bigrams:     make(map[[2]rune]struct{}, len(s.Bigrams)),
		aliases:     make(map[rune]rune, len(s.Aliases)),
	}
	if s.Placeholder != "" {
		p, err := single(s.Placeholder)
		if err != nil {
			return nil, fmt.Errorf("%w: placeholder: %v", ErrInvalid, err)
		}
		m.placeholder = p
	}
	if len(s.Ranking) == 0 {
		return nil, fmt.Errorf("%w: empty ranking", ErrInvalid)
	}

	// Aliases first so the remaining tables are folded through them.
	for from, to := range s.Aliases {
		f, err := single(m.fold(from))
		if err != nil {
			return nil, fmt.Errorf("%w: alias %q: %v", ErrInvalid, from, err)
		}
		t, err := single(m.fold(to))
		if err != nil {
			return nil, fmt.Errorf("%w: alias target %q: %v", ErrInvalid, to, err)
		}
		m.aliases[f] = t
	}

	for i, l := range s.Ranking {
		r, err := m.letter(l)
		if err != nil {
			return nil, fmt.Errorf("%w: ranking[%d]: %v", ErrInvalid, i, err)
		}
		if _, dup := m.rank[r]; dup {
			return nil, fmt.Errorf("%w: duplicate letter %q in ranking", ErrInvalid, string(r))
		}
		if r == m.placeholder {
			return nil, fmt.Errorf("%w: placeholder %q is also a letter", ErrInvalid, string(r))
		}
		m.rank[r] = len(m.ranking)
		m.ranking = append(m.ranking, r)
	}
	for _, l := range s.Vowels {
		r, err := m.letter(l)
		if err != nil {
			return nil, fmt.Errorf("%w: vowel: %v", ErrInvalid, err)
		}
		if _, ok := m.rank[r]; !ok {
			return nil, fmt.Errorf("%w: vowel %q not in ranking", ErrInvalid, string(r))
		}
		m.vowels[r] = struct{}{}
	}
	for _, bg := range s.Bigrams {
		rs := m.Normalize(bg)
		if len(rs) != 2 {
			return nil, fmt.Errorf("%w: bigram %q is not two letters", ErrInvalid, bg)
		}
		for _, r := range rs {
			if _, ok := m.rank[r]; !ok {
				return nil, fmt.Errorf("%w: bigram %q uses %q outside the ranking", ErrInvalid, bg, string(r))
			}
		}
		m.bigrams[[2]rune{rs[0], rs[1]}] = struct{}{}
	}
	return m, nil
}

// letter normalizes a single-letter table entry.
func (m *Model) letter(s string) (rune, error) {
	rs := m.Normalize(s)
	if len(rs) != 1 {
		return 0, fmt.Errorf("%q is not a single letter", s)
	}
	return rs[0], nil
}

func single(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%q is not a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// fold applies NFC composition and language-aware upper-casing.
func (m *Model) fold(s string) string {
	return cases.Upper(m.lang).String(norm.NFC.String(strings.TrimSpace(s)))
}

// Normalize converts s to canonical letters: NFC-composed, upper-cased for
// the model's language, with aliases folded. Every letter the solver sees
// passes through here exactly once.
func (m *Model) Normalize(s string) []rune {
	rs := []rune(m.fold(s))
	for i, r := range rs {
		if to, ok := m.aliases[r]; ok {
			rs[i] = to
		}
	}
	return rs
}

// NormalizeLetter is Normalize for a single rune. Runes whose upper-case
// form expands to several runes are returned unchanged.
func (m *Model) NormalizeLetter(r rune) rune {
	rs := m.Normalize(string(r))
	if len(rs) != 1 {
		return unicode.ToUpper(r)
	}
	return rs[0]
}

// Name is the alphabet's identifier ("romanian").
func (m *Model) Name() string { return m.name }

// Language is the tag used for case mapping.
func (m *Model) Language() language.Tag { return m.lang }

// Placeholder is the default unknown-position marker for patterns.
func (m *Model) Placeholder() rune { return m.placeholder }

// Size is the number of ranked letters.
func (m *Model) Size() int { return len(m.ranking) }

// Rank returns the 0-based frequency position of r; ok is false for
// letters outside the ranking.
func (m *Model) Rank(r rune) (pos int, ok bool) {
	pos, ok = m.rank[r]
	return pos, ok
}

// IsVowel reports whether r is in the vowel set.
func (m *Model) IsVowel(r rune) bool {
	_, ok := m.vowels[r]
	return ok
}

// IsKnownBigram reports whether the ordered pair a,b is a common digraph.
func (m *Model) IsKnownBigram(a, b rune) bool {
	_, ok := m.bigrams[[2]rune{a, b}]
	return ok
}

// Letters returns the ranking, most frequent first. The slice is a copy.
func (m *Model) Letters() []rune {
	return append([]rune(nil), m.ranking...)
}

// Vowels returns the vowels in ranking order.
func (m *Model) Vowels() []rune {
	var out []rune
	for _, r := range m.ranking {
		if m.IsVowel(r) {
			out = append(out, r)
		}
	}
	return out
}

// Bigrams returns every known bigram as a two-letter string, ordered by
// the ranking of the first then the second letter.
func (m *Model) Bigrams() []string {
	out := make([]string, 0, len(m.bigrams))
	for _, a := range m.ranking {
		for _, b := range m.ranking {
			if m.IsKnownBigram(a, b) {
				out = append(out, string([]rune{a, b}))
			}
		}
	}
	return out
}

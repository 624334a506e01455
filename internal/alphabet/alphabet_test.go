package alphabet

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestRomanianTables(t *testing.T) {
	m := Romanian()
	if m.Size() != 31 {
		t.Fatalf("size = %d, want 31", m.Size())
	}
	if got := len(m.Bigrams()); got != 44 {
		t.Fatalf("bigrams = %d, want 44", got)
	}
	if m.Placeholder() != '*' {
		t.Fatalf("placeholder = %q", m.Placeholder())
	}

	rankCases := []struct {
		letter rune
		pos    int
		ok     bool
	}{
		{'E', 0, true},
		{'A', 1, true},
		{'Ă', 14, true},
		{'Q', 30, true},
		{'1', 0, false},
		{'Ç', 0, false},
	}
	for _, c := range rankCases {
		pos, ok := m.Rank(c.letter)
		if ok != c.ok || (ok && pos != c.pos) {
			t.Errorf("Rank(%q) = %d,%v want %d,%v", c.letter, pos, ok, c.pos, c.ok)
		}
	}

	for _, v := range "AEIOUĂÂÎ" {
		if !m.IsVowel(v) {
			t.Errorf("%q should be a vowel", v)
		}
	}
	for _, c := range "RTNȘ" {
		if m.IsVowel(c) {
			t.Errorf("%q should not be a vowel", c)
		}
	}

	if !m.IsKnownBigram('Î', 'N') || !m.IsKnownBigram('N', 'T') {
		t.Error("expected ÎN and NT to be known bigrams")
	}
	if m.IsKnownBigram('T', 'N') {
		t.Error("bigrams are ordered; TN must not match")
	}
}

func TestNormalize(t *testing.T) {
	m := Romanian()
	cases := []struct {
		in, want string
	}{
		{"carte", "CARTE"},
		{"  școală ", "ȘCOALĂ"},
		// cedilla folded to comma-below
		{"Şcoală", "ȘCOALĂ"},
		// decomposed comma-below composed by NFC
		{"Țara", "ȚARA"},
		{"i", "I"},
	}
	for _, c := range cases {
		if got := string(m.Normalize(c.in)); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
	if got := m.NormalizeLetter('ţ'); got != 'Ț' {
		t.Errorf("NormalizeLetter(ţ) = %q", got)
	}
}

func TestLettersIsACopy(t *testing.T) {
	m := Romanian()
	l := m.Letters()
	l[0] = 'Z'
	if pos, _ := m.Rank('E'); pos != 0 || m.Letters()[0] != 'E' {
		t.Fatal("mutating Letters() leaked into the model")
	}
}

func TestNewValidation(t *testing.T) {
	base := func() Spec {
		return Spec{Ranking: []string{"A", "B", "C"}, Vowels: []string{"A"}, Bigrams: []string{"AB"}}
	}
	cases := map[string]func(s *Spec){
		"empty ranking":     func(s *Spec) { s.Ranking = nil },
		"duplicate":         func(s *Spec) { s.Ranking = append(s.Ranking, "a") },
		"multi-rune letter": func(s *Spec) { s.Ranking[1] = "BB" },
		"vowel outside":     func(s *Spec) { s.Vowels = []string{"E"} },
		"short bigram":      func(s *Spec) { s.Bigrams = []string{"A"} },
		"bigram outside":    func(s *Spec) { s.Bigrams = []string{"AZ"} },
		"bad language":      func(s *Spec) { s.Language = "not a tag!" },
		"placeholder clash": func(s *Spec) { s.Placeholder = "A" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			s := base()
			mutate(&s)
			if _, err := New(s); !errors.Is(err, ErrInvalid) {
				t.Fatalf("err = %v, want ErrInvalid", err)
			}
		})
	}

	if _, err := New(base()); err != nil {
		t.Fatalf("valid spec rejected: %v", err)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	src := `ranking = ["A", "B"]
bigram = ["AB"]
`
	_, err := Load(strings.NewReader(src))
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestResolve(t *testing.T) {
	if m, err := Resolve(""); err != nil || m.Name() != "romanian" {
		t.Fatalf("Resolve(\"\") = %v, %v", m, err)
	}
	en, err := Resolve("english")
	if err != nil {
		t.Fatal(err)
	}
	if en.Size() != 26 || !en.IsKnownBigram('T', 'H') {
		t.Fatalf("english alphabet looks wrong: size %d", en.Size())
	}

	path := filepath.Join(t.TempDir(), "tiny.toml")
	src := "name = \"tiny\"\nranking = [\"x\", \"y\"]\nvowels = [\"y\"]\nbigrams = [\"xy\"]\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	tiny, err := Resolve(path)
	if err != nil {
		t.Fatal(err)
	}
	if tiny.Name() != "tiny" || !tiny.IsVowel('Y') || !tiny.IsKnownBigram('X', 'Y') {
		t.Fatal("tiny alphabet not normalized to upper case")
	}

	if _, err := Resolve("klingon"); err == nil {
		t.Fatal("expected an error for an unknown alphabet")
	}
}

func TestConcurrentReaders(t *testing.T) {
	m := Romanian()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, r := range m.Letters() {
				m.Rank(r)
				m.IsVowel(r)
				m.IsKnownBigram(r, 'E')
			}
			m.Normalize("școală")
		}()
	}
	wg.Wait()
}

// assets/embed.go
//
// Embedded data shipped with the binary:
//   - alphabets/*.toml: letter ranking, vowels and bigrams per language.
//   - puzzles.csv:      a small sample batch used when no input file is given.
//   - sql/*.sql:        schema migrations for the SQLite run store.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed alphabets/*.toml puzzles.csv sql/*.sql
var FS embed.FS

// Alphabet returns the raw TOML for an embedded alphabet by name ("romanian").
func Alphabet(name string) ([]byte, error) {
	b, err := FS.ReadFile(path.Join("alphabets", strings.ToLower(name)+".toml"))
	if err != nil {
		return nil, fmt.Errorf("alphabet %q: %w", name, err)
	}
	return b, nil
}

// AlphabetNames lists the embedded alphabets, sorted.
func AlphabetNames() []string {
	entries, err := FS.ReadDir("alphabets")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if n := e.Name(); strings.HasSuffix(n, ".toml") {
			out = append(out, strings.TrimSuffix(n, ".toml"))
		}
	}
	sort.Strings(out)
	return out
}

// SamplePuzzles opens the embedded sample batch.
func SamplePuzzles() (fs.File, error) {
	return FS.Open("puzzles.csv")
}

// Migrations exposes the sql directory as its own FS root.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		// fs.Sub only fails on an invalid path, and "sql" is a constant.
		panic(err)
	}
	return sub
}

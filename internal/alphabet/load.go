// internal/alphabet/load.go
//
// Loading alphabets from TOML.
//
// Sources, in the order the CLI and server consult them:
//   1. ALPHABET_FILE / --alphabet pointing at a .toml file on disk.
//   2. ALPHABET_FILE / --alphabet naming an embedded alphabet ("english").
//   3. The embedded Romanian reference alphabet.
package alphabet

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/robalobadob/hangman/assets"
)

var (
	romanianOnce sync.Once
	romanian     *Model
)

// Load decodes a TOML alphabet description. Unknown keys are rejected so a
// typo in a table name does not silently produce an empty bigram set.
func Load(r io.Reader) (*Model, error) {
	var s Spec
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, fmt.Errorf("decode alphabet: %w", err)
	}
	if un := md.Undecoded(); len(un) > 0 {
		keys := make([]string, len(un))
		for i, k := range un {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	return New(s)
}

// LoadFile reads an alphabet from a file on disk.
func LoadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Embedded loads one of the alphabets shipped in the binary.
func Embedded(name string) (*Model, error) {
	b, err := assets.Alphabet(name)
	if err != nil {
		return nil, err
	}
	return Load(bytes.NewReader(b))
}

// Resolve picks an alphabet from a user-supplied reference: empty means the
// Romanian default, an existing file path is loaded from disk, anything else
// is treated as an embedded alphabet name.
func Resolve(ref string) (*Model, error) {
	if ref == "" {
		return Romanian(), nil
	}
	if st, err := os.Stat(ref); err == nil && !st.IsDir() {
		return LoadFile(ref)
	}
	return Embedded(ref)
}

// Romanian returns the embedded reference alphabet. It is built once and
// shared; the embedded file is covered by tests, so a failure here is a
// build defect.
func Romanian() *Model {
	romanianOnce.Do(func() {
		m, err := Embedded("romanian")
		if err != nil {
			panic(err)
		}
		romanian = m
	})
	return romanian
}

// English returns the embedded English alphabet.
func English() (*Model, error) { return Embedded("english") }

// internal/puzzles/puzzles.go
//
// Puzzle input and result output in CSV form.
//
// Responsibilities:
//   - Read puzzle records (game id, initial pattern, target word) from a
//     CSV file with a header row, or fall back to the embedded sample set.
//   - Skip incomplete rows with a warning instead of failing the batch.
//   - Write per-puzzle result records.
//
// Input header (either naming is accepted, case-insensitive):
//   game_id, pattern_initial, cuvant_tinta
//   id,      pattern,         target
//
// Output header:
//   game_id, total_incercari, cuvant_gasit, status, secventa_incercari
package puzzles

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/assets"
	"github.com/robalobadob/hangman/internal/solver"
)

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("puzzles: missing column")

// Skipped describes an input row that was not turned into a puzzle.
type Skipped struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Set is the result of reading a puzzle file.
type Set struct {
	Puzzles []solver.Puzzle
	Skipped []Skipped
}

var columnAliases = map[string]string{
	"game_id":         "id",
	"id":              "id",
	"pattern_initial": "pattern",
	"pattern":         "pattern",
	"cuvant_tinta":    "target",
	"target":          "target",
}

// Read parses puzzles from r. A missing header column is an error; rows
// with an empty field are reported in Set.Skipped and logged as warnings.
func Read(r io.Reader) (Set, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return Set{}, nil
	}
	if err != nil {
		return Set{}, fmt.Errorf("read header: %w", err)
	}
	idx := map[string]int{}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if key, ok := columnAliases[h]; ok {
			if _, dup := idx[key]; !dup {
				idx[key] = i
			}
		}
	}
	for _, key := range []string{"id", "pattern", "target"} {
		if _, ok := idx[key]; !ok {
			return Set{}, fmt.Errorf("%w: %s", ErrMissingColumn, key)
		}
	}

	var set Set
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				set.skip(perr.Line, perr.Err.Error())
				continue
			}
			return set, fmt.Errorf("read row: %w", err)
		}
		line, _ := cr.FieldPos(0)
		field := func(key string) string {
			if i := idx[key]; i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}
		p := solver.Puzzle{ID: field("id"), Pattern: field("pattern"), Target: field("target")}
		var missing []string
		if p.ID == "" {
			missing = append(missing, "game_id")
		}
		if p.Pattern == "" {
			missing = append(missing, "pattern_initial")
		}
		if p.Target == "" {
			missing = append(missing, "cuvant_tinta")
		}
		if len(missing) > 0 {
			set.skip(line, "missing "+strings.Join(missing, ", "))
			continue
		}
		set.Puzzles = append(set.Puzzles, p)
	}
	return set, nil
}

func (s *Set) skip(line int, reason string) {
	s.Skipped = append(s.Skipped, Skipped{Line: line, Reason: reason})
	log.Warn().Int("line", line).Str("reason", reason).Msg("skipping incomplete puzzle row")
}

// Load reads puzzles from path, or the embedded sample set when path is empty.
func Load(path string) (Set, error) {
	if path == "" {
		f, err := assets.SamplePuzzles()
		if err != nil {
			return Set{}, err
		}
		defer f.Close()
		return Read(f)
	}
	f, err := os.Open(path)
	if err != nil {
		return Set{}, err
	}
	defer f.Close()
	set, err := Read(f)
	if err != nil {
		return set, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// ResultHeader is the column layout of result files.
var ResultHeader = []string{"game_id", "total_incercari", "cuvant_gasit", "status", "secventa_incercari"}

// ResultRow renders one outcome as a CSV record.
func ResultRow(o solver.Outcome) []string {
	return []string{o.ID, strconv.Itoa(o.Attempts), o.FoundWord(), o.Status(), o.SequenceString()}
}

// Write emits a header and one row per outcome.
func Write(w io.Writer, outcomes []solver.Outcome) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ResultHeader); err != nil {
		return err
	}
	for _, o := range outcomes {
		if err := cw.Write(ResultRow(o)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ensureDir creates the parent directory of path if needed.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// WriteFile writes results to path, creating parent directories.
func WriteFile(path string, outcomes []solver.Outcome) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, outcomes); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

package puzzles

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/robalobadob/hangman/internal/solver"
)

func TestReadSkipsIncompleteRows(t *testing.T) {
	src := "game_id,pattern_initial,cuvant_tinta\n" +
		"1,*A*T*,carte\n" +
		"2,,MASCA\n" +
		"3,*****\n" +
		" 4 , M***A , MASCA \n"
	set, err := Read(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(set.Puzzles) != 2 {
		t.Fatalf("puzzles = %+v", set.Puzzles)
	}
	if set.Puzzles[0] != (solver.Puzzle{ID: "1", Pattern: "*A*T*", Target: "carte"}) {
		t.Fatalf("first puzzle = %+v", set.Puzzles[0])
	}
	if set.Puzzles[1].ID != "4" || set.Puzzles[1].Pattern != "M***A" {
		t.Fatalf("fields not trimmed: %+v", set.Puzzles[1])
	}
	if len(set.Skipped) != 2 {
		t.Fatalf("skipped = %+v", set.Skipped)
	}
	if set.Skipped[0].Line != 3 || !strings.Contains(set.Skipped[0].Reason, "pattern_initial") {
		t.Fatalf("skipped[0] = %+v", set.Skipped[0])
	}
	if set.Skipped[1].Line != 4 || !strings.Contains(set.Skipped[1].Reason, "cuvant_tinta") {
		t.Fatalf("skipped[1] = %+v", set.Skipped[1])
	}
}

func TestReadAcceptsEnglishHeaders(t *testing.T) {
	src := "\ufeffTarget,ID,Pattern\nhouse,h1,*****\n"
	set, err := Read(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(set.Puzzles) != 1 || set.Puzzles[0].Target != "house" || set.Puzzles[0].ID != "h1" {
		t.Fatalf("puzzles = %+v", set.Puzzles)
	}
}

func TestReadMissingColumn(t *testing.T) {
	_, err := Read(strings.NewReader("game_id,pattern_initial\n1,*\n"))
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("err = %v, want ErrMissingColumn", err)
	}
}

func TestReadEmpty(t *testing.T) {
	set, err := Read(strings.NewReader(""))
	if err != nil || len(set.Puzzles) != 0 {
		t.Fatalf("set = %+v, err = %v", set, err)
	}
}

func TestLoadEmbeddedSample(t *testing.T) {
	set, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if len(set.Puzzles) != 8 || len(set.Skipped) != 0 {
		t.Fatalf("sample set: %d puzzles, %d skipped", len(set.Puzzles), len(set.Skipped))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v", err)
	}
}

func TestWriteResults(t *testing.T) {
	outcomes := []solver.Outcome{
		{ID: "1", Target: "CARTE", Solved: true, Attempts: 3, Sequence: []rune("ERC")},
		{ID: "2", Target: "XYZ", Attempts: 2, Sequence: []rune("EA")},
	}
	var buf bytes.Buffer
	if err := Write(&buf, outcomes); err != nil {
		t.Fatal(err)
	}
	want := "game_id,total_incercari,cuvant_gasit,status,secventa_incercari\n" +
		"1,3,CARTE,solved,\"E, R, C\"\n" +
		"2,2,N/A,failed,\"E, A\"\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "out.csv")
	if err := WriteFile(path, nil); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(b)) != strings.Join(ResultHeader, ",") {
		t.Fatalf("file = %q", b)
	}
}

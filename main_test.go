package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/hangman/internal/batch"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	color.NoColor = true
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestSolveCommand(t *testing.T) {
	out := execute(t, "solve", "--pattern", "*A*T*", "--target", "carte", "--id", "1")
	for _, want := range []string{"HANGMAN SOLVER  game 1", "SOLVED", "Attempts:      10 / 1200", "E, N, I, U, R, O, Ă, L, Î, C"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	csv := "game_id,pattern_initial,cuvant_tinta\n1,*A*T*,CARTE\n5,P*I*TEN,PRIETEN\n6,,APĂ\n"
	if err := os.WriteFile(in, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "results", "out.csv")
	dbPath := filepath.Join(dir, "runs.db")

	out := execute(t, "batch", "--in", in, "--out", outPath, "--db", dbPath, "--workers", "2")
	for _, want := range []string{"[1/2] game 1: solved", "[2/2] game 5: solved", "FINAL REPORT", "Total attempts:   11", "Within the budget of 1200 attempts"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 3 || lines[0] != "game_id,total_incercari,cuvant_gasit,status,secventa_incercari" {
		t.Fatalf("results file:\n%s", b)
	}
	if lines[2] != "5,1,PRIETEN,solved,R" {
		t.Fatalf("row = %q", lines[2])
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("db not created: %v", err)
	}
}

func TestHashPasswordCommand(t *testing.T) {
	out := strings.TrimSpace(execute(t, "hash-password", "--password", "s3cret-pass", "--cost", "4"))
	if err := bcrypt.CompareHashAndPassword([]byte(out), []byte("s3cret-pass")); err != nil {
		t.Fatalf("hash %q does not verify: %v", out, err)
	}
	if _, err := hashPassword("short", 4); err == nil {
		t.Fatal("short password accepted")
	}
}

func TestReadPasswordFromPipe(t *testing.T) {
	pw, err := readPassword(strings.NewReader("hunter22\r\nignored\n"), &bytes.Buffer{})
	if err != nil || pw != "hunter22" {
		t.Fatalf("pw = %q, err = %v", pw, err)
	}
	pw, err = readPassword(strings.NewReader("no-newline"), &bytes.Buffer{})
	if err != nil || pw != "no-newline" {
		t.Fatalf("pw = %q, err = %v", pw, err)
	}
}

func TestPrintReportOverBudget(t *testing.T) {
	var buf bytes.Buffer
	r := batch.Report{Games: 2, Solved: 1, Failed: 1, TotalAttempts: 1300, Budget: 1200}
	r.Derive()
	printReport(&buf, r)
	if !strings.Contains(buf.String(), "Over the budget of 1200 attempts (+100)") {
		t.Fatalf("report:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "Games solved:     1/2 (50.0%)") {
		t.Fatalf("report:\n%s", buf.String())
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "", "b", "c"); got != "b" {
		t.Fatalf("got %q", got)
	}
	if got := firstNonEmpty(); got != "" {
		t.Fatalf("got %q", got)
	}
}

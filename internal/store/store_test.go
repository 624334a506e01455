package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/robalobadob/hangman/assets"
	"github.com/robalobadob/hangman/internal/batch"
	"github.com/robalobadob/hangman/internal/solver"
)

func sampleRun(id string, created time.Time) Run {
	outs := []solver.Outcome{
		{ID: "1", Target: "CARTE", Display: "CARTE", Solved: true, Reason: solver.ReasonSolved,
			Attempts: 10, Wrong: 7, Distinct: 12, Sequence: []rune("ENIUROĂLÎC")},
		{ID: "2", Target: "XYZ", Display: "___", Reason: solver.ReasonExhausted,
			Attempts: 3, Wrong: 3, Distinct: 3, Sequence: []rune("ABC")},
	}
	return Run{
		ID:            id,
		Alphabet:      "romanian",
		MaxIterations: 1200,
		CreatedAt:     created,
		Report:        batch.Summarize(outs, 1200),
		Outcomes:      outs,
	}
}

func openSQLite(t *testing.T) Store {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := Migrate(db, assets.Migrations()); err != nil {
		t.Fatal(err)
	}
	// A second pass is a no-op.
	if err := Migrate(db, assets.Migrations()); err != nil {
		t.Fatalf("re-migrate: %v", err)
	}
	return NewSQLiteStore(db)
}

func TestStores(t *testing.T) {
	impls := map[string]func(t *testing.T) Store{
		"memory": func(*testing.T) Store { return NewMemoryStore() },
		"sqlite": openSQLite,
	}
	for name, mk := range impls {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := mk(t)
			base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

			if _, err := s.GetRun(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("GetRun(missing) err = %v", err)
			}

			older := sampleRun("a", base)
			newer := sampleRun("b", base.Add(time.Minute))
			for _, r := range []Run{older, newer} {
				if err := s.SaveRun(ctx, r); err != nil {
					t.Fatal(err)
				}
			}

			got, err := s.GetRun(ctx, "a")
			if err != nil {
				t.Fatal(err)
			}
			if got.Report != older.Report || !got.CreatedAt.Equal(base) || got.Alphabet != "romanian" {
				t.Fatalf("run = %+v, want %+v", got, older)
			}
			if len(got.Outcomes) != 2 {
				t.Fatalf("outcomes = %d", len(got.Outcomes))
			}
			o := got.Outcomes[0]
			if o.ID != "1" || !o.Solved || o.Reason != solver.ReasonSolved || string(o.Sequence) != "ENIUROĂLÎC" || o.Distinct != 12 {
				t.Fatalf("outcome = %+v", o)
			}
			if got.Outcomes[1].Solved || got.Outcomes[1].Reason != solver.ReasonExhausted {
				t.Fatalf("outcome = %+v", got.Outcomes[1])
			}

			list, err := s.ListRuns(ctx, 0)
			if err != nil {
				t.Fatal(err)
			}
			if len(list) != 2 || list[0].ID != "b" || list[1].ID != "a" {
				t.Fatalf("list = %+v", list)
			}
			if list[0].Outcomes != nil {
				t.Fatal("ListRuns should not load outcomes")
			}
			if one, _ := s.ListRuns(ctx, 1); len(one) != 1 || one[0].ID != "b" {
				t.Fatalf("limited list = %+v", one)
			}

			// Saving the same id replaces the run and its outcomes.
			replaced := sampleRun("a", base)
			replaced.Outcomes = replaced.Outcomes[:1]
			replaced.Report = batch.Summarize(replaced.Outcomes, 1200)
			if err := s.SaveRun(ctx, replaced); err != nil {
				t.Fatal(err)
			}
			got, err = s.GetRun(ctx, "a")
			if err != nil {
				t.Fatal(err)
			}
			if len(got.Outcomes) != 1 || got.Report.Games != 1 {
				t.Fatalf("replaced run = %+v", got)
			}
		})
	}
}

func TestNewRun(t *testing.T) {
	res := batch.Result{Report: batch.Report{Games: 3}}
	a := NewRun("english", 50, res)
	b := NewRun("english", 50, res)
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("ids %q %q", a.ID, b.ID)
	}
	if a.CreatedAt.Location() != time.UTC || a.CreatedAt.Nanosecond() != 0 {
		t.Fatalf("created = %v", a.CreatedAt)
	}
	if a.Report.Games != 3 || a.MaxIterations != 50 {
		t.Fatalf("run = %+v", a)
	}
}

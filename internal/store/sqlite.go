// internal/store/sqlite.go
//
// SQLite-backed Store.
//
// Tables (assets/sql/001_runs.sql):
//   - runs:        one row per batch with the report counters.
//   - run_results: one row per outcome, ordered by position.
//
// Derived report fields (averages, budget verdict) are not stored; they are
// recomputed from the counters on read.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/hangman/internal/solver"
)

type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an opened and migrated database.
func NewSQLiteStore(db *sql.DB) Store {
	return &sqliteStore{db: db}
}

func (s *sqliteStore) SaveRun(ctx context.Context, r Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM run_results WHERE run_id=?`, r.ID); err != nil {
		return fmt.Errorf("clear results: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id=?`, r.ID); err != nil {
		return fmt.Errorf("clear run: %w", err)
	}

	rep := r.Report
	_, err = tx.ExecContext(ctx, `
INSERT INTO runs(id, alphabet, max_iterations, games, solved, failed, invalid,
                 total_attempts, total_wrong, budget, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Alphabet, r.MaxIterations, rep.Games, rep.Solved, rep.Failed, rep.Invalid,
		rep.TotalAttempts, rep.TotalWrong, rep.Budget, r.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO run_results(run_id, position, game_id, target, display, solved, reason,
                        attempts, wrong, letters, sequence)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, o := range r.Outcomes {
		solved := 0
		if o.Solved {
			solved = 1
		}
		if _, err := stmt.ExecContext(ctx, r.ID, i, o.ID, o.Target, o.Display, solved,
			string(o.Reason), o.Attempts, o.Wrong, o.Distinct, string(o.Sequence)); err != nil {
			return fmt.Errorf("insert result %d: %w", i, err)
		}
	}
	return tx.Commit()
}

const runColumns = `id, alphabet, max_iterations, games, solved, failed, invalid,
       total_attempts, total_wrong, budget, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		r       Run
		created string
	)
	rep := &r.Report
	if err := row.Scan(&r.ID, &r.Alphabet, &r.MaxIterations, &rep.Games, &rep.Solved,
		&rep.Failed, &rep.Invalid, &rep.TotalAttempts, &rep.TotalWrong, &rep.Budget, &created); err != nil {
		return Run{}, err
	}
	t, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return Run{}, fmt.Errorf("run %s: created_at: %w", r.ID, err)
	}
	r.CreatedAt = t
	rep.Derive()
	return r, nil
}

func (s *sqliteStore) GetRun(ctx context.Context, id string) (Run, error) {
	r, err := scanRun(s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id=?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	if err != nil {
		return Run{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT game_id, target, display, solved, reason, attempts, wrong, letters, sequence
FROM run_results WHERE run_id=? ORDER BY position`, id)
	if err != nil {
		return Run{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			o      solver.Outcome
			solved int
			reason string
			seq    string
		)
		if err := rows.Scan(&o.ID, &o.Target, &o.Display, &solved, &reason,
			&o.Attempts, &o.Wrong, &o.Distinct, &seq); err != nil {
			return Run{}, err
		}
		o.Solved = solved == 1
		o.Reason = solver.Reason(reason)
		o.Sequence = []rune(seq)
		r.Outcomes = append(r.Outcomes, o)
	}
	return r, rows.Err()
}

func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// internal/store/memory.go
//
// Run persistence.
//
// A Run is one executed batch: its report plus every per-puzzle outcome.
// Two implementations exist:
//   - memory (this file): RWMutex-guarded map, lost on restart; used by the
//     server when no DB_PATH is configured and by tests.
//   - SQLite (sqlite.go): durable, schema from assets/sql migrations.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/hangman/internal/batch"
	"github.com/robalobadob/hangman/internal/solver"
)

// ErrNotFound is returned by GetRun for an unknown id.
var ErrNotFound = errors.New("store: run not found")

// Run is a stored batch execution.
type Run struct {
	ID            string
	Alphabet      string
	MaxIterations int
	CreatedAt     time.Time
	Report        batch.Report
	Outcomes      []solver.Outcome
}

// NewRun stamps a fresh id and creation time onto a batch result.
func NewRun(alphabet string, maxIterations int, res batch.Result) Run {
	return Run{
		ID:            uuid.NewString(),
		Alphabet:      alphabet,
		MaxIterations: maxIterations,
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
		Report:        res.Report,
		Outcomes:      res.Outcomes,
	}
}

// Store persists runs. Implementations must be safe for concurrent use.
type Store interface {
	// SaveRun inserts a run. Saving an id twice replaces the earlier run.
	SaveRun(ctx context.Context, r Run) error

	// GetRun loads a run with its outcomes, or ErrNotFound.
	GetRun(ctx context.Context, id string) (Run, error)

	// ListRuns returns the newest runs first, without outcomes.
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu   sync.RWMutex   // guards runs
	runs map[string]Run // keyed by Run.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{runs: make(map[string]Run)}
}

func (m *memory) SaveRun(ctx context.Context, r Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.Outcomes = append([]solver.Outcome(nil), r.Outcomes...)
	m.runs[r.ID] = r
	return nil
}

func (m *memory) GetRun(ctx context.Context, id string) (Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.runs[id]; ok {
		r.Outcomes = append([]solver.Outcome(nil), r.Outcomes...)
		return r, nil
	}
	return Run{}, ErrNotFound
}

func (m *memory) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Run, 0, len(m.runs))
	for _, r := range m.runs {
		r.Outcomes = nil
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// internal/httpserver/server.go
//
// HTTP server wiring for the hangman solver.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/alphabet", POST /solve.
//   - Run history (public): GET /runs, GET /runs/{id}.
//   - Batch submission (requires auth): POST /runs with a JSON puzzle list or
//     a CSV body in the puzzle file format.
//   - Operator auth: POST /auth/token exchanges the operator password for a
//     JWT (see auth.go).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the auth cookie works).
//   - Solving never sleeps here; per-guess pacing is a CLI concern.

package httpserver

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/batch"
	"github.com/robalobadob/hangman/internal/puzzles"
	"github.com/robalobadob/hangman/internal/solver"
	"github.com/robalobadob/hangman/internal/store"
)

const (
	maxBodyBytes     = 1 << 20
	defaultListLimit = 20
	maxListLimit     = 200
)

// Options configures a Server.
type Options struct {
	Store       store.Store
	Solver      *solver.Solver
	Placeholder rune // 0 uses the alphabet default.
	Workers     int
	Budget      int

	JWTSecret            string
	JWTExpiry            time.Duration
	OperatorPasswordHash string // bcrypt; empty disables POST /auth/token.
	ClientOrigin         string
	Timeout              time.Duration // Per-request bound; 0 means 10s.
}

// Server bundles router, solver, and run store.
type Server struct {
	r      *chi.Mux
	store  store.Store
	solver *solver.Solver
	opts   Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.JWTExpiry <= 0 {
		opts.JWTExpiry = 24 * time.Hour
	}
	s := &Server{r: chi.NewRouter(), store: opts.Store, solver: opts.Solver, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)             // add X-Request-ID
	s.r.Use(chimw.RealIP)                // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)             // recover from panics
	s.r.Use(chimw.Timeout(opts.Timeout)) // bound handler time
	s.r.Use(jsonContentType)             // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "hangman",
			"endpoints": []string{"/health", "/alphabet", "POST /solve", "POST /auth/token", "/runs"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/alphabet", s.handleAlphabet)

	s.r.Post("/solve", s.handleSolve)
	s.r.Post("/auth/token", s.handleToken)

	s.r.Route("/runs", func(r chi.Router) {
		r.Get("/", s.handleListRuns)
		r.Get("/{id}", s.handleGetRun)
		r.With(s.requireAuth()).Post("/", s.handleCreateRun)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
// Defaults to http://localhost:5173.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ payloads -----------------------------------

type outcomeJSON struct {
	ID        string   `json:"id"`
	Target    string   `json:"target"`
	Display   string   `json:"display"`
	Status    string   `json:"status"`
	Reason    string   `json:"reason"`
	FoundWord string   `json:"foundWord"`
	Attempts  int      `json:"attempts"`
	Wrong     int      `json:"wrong"`
	Letters   int      `json:"distinctLetters"`
	Sequence  []string `json:"sequence"`
}

func toOutcomeJSON(o solver.Outcome) outcomeJSON {
	return outcomeJSON{
		ID:        o.ID,
		Target:    o.Target,
		Display:   o.Display,
		Status:    o.Status(),
		Reason:    string(o.Reason),
		FoundWord: o.FoundWord(),
		Attempts:  o.Attempts,
		Wrong:     o.Wrong,
		Letters:   o.Distinct,
		Sequence:  o.Letters(),
	}
}

type skippedJSON struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type runJSON struct {
	ID            string        `json:"id"`
	Alphabet      string        `json:"alphabet"`
	MaxIterations int           `json:"maxIterations"`
	CreatedAt     time.Time     `json:"createdAt"`
	Report        batch.Report  `json:"report"`
	OverBudget    int           `json:"overBudget"`
	Outcomes      []outcomeJSON `json:"outcomes,omitempty"`
	Skipped       []skippedJSON `json:"skipped,omitempty"`
}

func toRunJSON(r store.Run) runJSON {
	out := runJSON{
		ID:            r.ID,
		Alphabet:      r.Alphabet,
		MaxIterations: r.MaxIterations,
		CreatedAt:     r.CreatedAt,
		Report:        r.Report,
		OverBudget:    r.Report.OverBudget(),
	}
	for _, o := range r.Outcomes {
		out.Outcomes = append(out.Outcomes, toOutcomeJSON(o))
	}
	return out
}

// ------------------------------ handlers -----------------------------------

func (s *Server) handleAlphabet(w http.ResponseWriter, r *http.Request) {
	a := s.solver.Alphabet()
	letters := make([]string, 0, a.Size())
	for _, l := range a.Letters() {
		letters = append(letters, string(l))
	}
	vowels := []string{}
	for _, v := range a.Vowels() {
		vowels = append(vowels, string(v))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        a.Name(),
		"language":    a.Language().String(),
		"placeholder": string(a.Placeholder()),
		"letters":     letters,
		"vowels":      vowels,
		"bigrams":     a.Bigrams(),
	})
}

// handleSolve solves a single puzzle synchronously.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var p solver.Puzzle
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	p.Placeholder = s.opts.Placeholder
	o, err := s.solver.Solve(p)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toOutcomeJSON(o))
}

type createRunReq struct {
	Puzzles []solver.Puzzle `json:"puzzles"`
}

// handleCreateRun runs a batch from a JSON or CSV body and stores it.
func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var (
		ps      []solver.Puzzle
		skipped []skippedJSON
	)
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "text/csv":
		set, err := puzzles.Read(body)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		ps = set.Puzzles
		for _, sk := range set.Skipped {
			skipped = append(skipped, skippedJSON{Line: sk.Line, Reason: sk.Reason})
		}
	default:
		var req createRunReq
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
		ps = req.Puzzles
	}
	if len(ps) == 0 {
		writeError(w, http.StatusBadRequest, "no_puzzles")
		return
	}
	for i := range ps {
		ps[i].Placeholder = s.opts.Placeholder
	}

	res, err := batch.New(s.solver, batch.Options{Workers: s.opts.Workers, Budget: s.opts.Budget}).Run(r.Context(), ps)
	if err != nil {
		log.Warn().Err(err).Int("games", len(ps)).Msg("batch aborted")
		writeError(w, http.StatusServiceUnavailable, "batch_aborted")
		return
	}

	run := store.NewRun(s.solver.Alphabet().Name(), s.solver.MaxIterations(), res)
	if err := s.store.SaveRun(r.Context(), run); err != nil {
		log.Error().Err(err).Str("run_id", run.ID).Msg("save run")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	log.Info().
		Str("run_id", run.ID).
		Int("games", res.Report.Games).
		Int("solved", res.Report.Solved).
		Int("attempts", res.Report.TotalAttempts).
		Bool("within_budget", res.Report.WithinBudget).
		Msg("run stored")

	out := toRunJSON(run)
	out.Skipped = skipped
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = min(n, maxListLimit)
	}
	runs, err := s.store.ListRuns(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("list runs")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	out := make([]runJSON, 0, len(runs))
	for _, run := range runs {
		out = append(out, toRunJSON(run))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("get run")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, toRunJSON(run))
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

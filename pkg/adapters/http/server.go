package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/p2lu/turingtoy"
	"github.com/p2lu/turingtoy/internal/sanitize"
	"github.com/p2lu/turingtoy/pkg/adapters/memory"
	"github.com/p2lu/turingtoy/pkg/domain"
	"github.com/p2lu/turingtoy/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultSteps is the step budget of requests that do not set one.
const DefaultSteps = 1_000

// MaxSteps caps the budget a request may ask for. Each history entry holds the
// whole tape, so response size grows with the square of the step count.
const MaxSteps = 2_000

// MaxBodyBytes bounds the size of a run request.
const MaxBodyBytes = 1 << 20

// Engine runs machines. *turingtoy.Engine satisfies it.
type Engine interface {
	Run(ctx context.Context, machine *domain.Machine, input string, steps *int) (*domain.Result, error)
}

// Server serves the run API.
type Server struct {
	Engine       Engine
	Store        ports.ResultStore
	Loader       ports.MachineLoader
	Gatherer     prometheus.Gatherer
	Logger       *slog.Logger
	DefaultSteps int
	MaxSteps     int
	NewID        func() string
}

// Option configures the Server.
type Option func(*Server)

// WithStore sets where run results are kept. Defaults to an in-memory store.
func WithStore(store ports.ResultStore) Option {
	return func(s *Server) { s.Store = store }
}

// WithLoader allows requests to name a machine instead of sending its definition.
func WithLoader(loader ports.MachineLoader) Option {
	return func(s *Server) { s.Loader = loader }
}

// WithMetrics exposes g on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) { s.Gatherer = g }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.Logger = logger }
}

// WithDefaultSteps sets the budget of requests without steps.
func WithDefaultSteps(n int) Option {
	return func(s *Server) { s.DefaultSteps = n }
}

// WithMaxSteps sets the ceiling applied to every request budget,
// including the default one.
func WithMaxSteps(n int) Option {
	return func(s *Server) { s.MaxSteps = n }
}

// WithIDGenerator overrides run ID generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Server) { s.NewID = fn }
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{
		Engine:       engine,
		Store:        memory.NewStore(),
		Logger:       slog.Default(),
		DefaultSteps: DefaultSteps,
		MaxSteps:     MaxSteps,
		NewID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/healthz", server.GetHealth)
	r.Get("/v1/version", server.GetVersion)
	r.Post("/v1/runs", server.CreateRun)
	r.Get("/v1/runs", server.ListRuns)
	r.Get("/v1/runs/{id}", server.GetRun)
	r.Delete("/v1/runs/{id}", server.DeleteRun)
	if server.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(server.Gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RunRequest is the body of POST /v1/runs. Exactly one of Machine and MachineName is set.
type RunRequest struct {
	Machine     *domain.Machine `json:"machine,omitempty"`
	MachineName string          `json:"machine_name,omitempty"`
	Input       string          `json:"input"`
	Steps       *int            `json:"steps,omitempty"`
}

// RunResponse is the body returned for a created run.
type RunResponse struct {
	ID     string         `json:"id"`
	Result *domain.Result `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// CreateRun handles POST /v1/runs.
func (s *Server) CreateRun(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrInvalidInstruction) {
			status = http.StatusUnprocessableEntity
		}
		s.writeError(w, status, fmt.Errorf("invalid request body: %w", err))
		return
	}

	if err := sanitize.Tape(body.Input); err != nil {
		s.writeError(w, statusFor(err), fmt.Errorf("invalid input: %w", err))
		return
	}

	machine, err := s.resolveMachine(r.Context(), body)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	steps := s.budget(body.Steps)

	res, err := s.Engine.Run(r.Context(), machine, body.Input, steps)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	id := s.NewID()
	if err := s.Store.Save(r.Context(), id, res); err != nil {
		s.Logger.Error("CreateRun: save failed", "run_id", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, errors.New("failed to store run"))
		return
	}

	s.Logger.Info("run created", "run_id", id, "reason", res.Reason, "steps", res.Steps)
	w.Header().Set("Location", "/v1/runs/"+id)
	writeJSON(w, http.StatusCreated, RunResponse{ID: id, Result: res})
}

// budget returns the step budget of a request, capped at MaxSteps.
func (s *Server) budget(requested *int) *int {
	n := s.DefaultSteps
	if requested != nil {
		n = *requested
	}
	if s.MaxSteps > 0 {
		n = min(n, s.MaxSteps)
	}
	return &n
}

func (s *Server) resolveMachine(ctx context.Context, body RunRequest) (*domain.Machine, error) {
	switch {
	case body.Machine != nil && body.MachineName != "":
		return nil, errBadRequest("set either machine or machine_name, not both")
	case body.Machine != nil:
		return body.Machine, nil
	case body.MachineName != "":
		if s.Loader == nil {
			return nil, errBadRequest("this server does not serve named machines")
		}
		return s.Loader.Load(ctx, body.MachineName)
	default:
		return nil, errBadRequest("machine is required")
	}
}

// ListRuns handles GET /v1/runs.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.Store.List(r.Context())
	if err != nil {
		s.Logger.Error("ListRuns failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, errors.New("failed to list runs"))
		return
	}
	if runs == nil {
		runs = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"runs": runs})
}

// GetRun handles GET /v1/runs/{id}.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	res, err := s.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// DeleteRun handles DELETE /v1/runs/{id}.
func (s *Server) DeleteRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.Store.Load(r.Context(), id); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	if err := s.Store.Delete(r.Context(), id); err != nil {
		s.Logger.Error("DeleteRun failed", "run_id", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, errors.New("failed to delete run"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetVersion handles GET /v1/version.
func (s *Server) GetVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "turingtoy-http",
		"version": strings.TrimSpace(turingtoy.Version),
	})
}

type badRequest struct{ msg string }

func (e badRequest) Error() string { return e.msg }

func errBadRequest(msg string) error { return badRequest{msg} }

func statusFor(err error) int {
	var br badRequest
	switch {
	case errors.As(err, &br):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRunNotFound), errors.Is(err, domain.ErrMachineNotFound):
		return http.StatusNotFound
	case errors.Is(err, sanitize.ErrInputTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrMissingTable),
		errors.Is(err, domain.ErrMissingStartState),
		errors.Is(err, domain.ErrInvalidBlank),
		errors.Is(err, domain.ErrInvalidInstruction),
		errors.Is(err, domain.ErrUnorderedCompound),
		errors.Is(err, domain.ErrNestingTooDeep),
		errors.Is(err, domain.ErrInvalidSymbol),
		errors.Is(err, sanitize.ErrInvalidUTF8),
		errors.Is(err, sanitize.ErrControlChar):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "status", status, "error", err)
	} else {
		s.Logger.Warn("request rejected", "status", status, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

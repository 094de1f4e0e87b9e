package turingtoy

import (
	"context"
	"io"
	"log/slog"

	"github.com/p2lu/turingtoy/internal/runtime"
	"github.com/p2lu/turingtoy/pkg/domain"
)

// Engine is the high-level entry point for the turingtoy library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime    *runtime.Engine
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	maxSteps   *int
	maxNesting int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxSteps sets the step budget used when a run does not pass its own.
func WithMaxSteps(n int) Option {
	return func(e *Engine) {
		e.maxSteps = &n
	}
}

// WithMaxNesting bounds how deeply guarded instructions may nest.
func WithMaxNesting(n int) Option {
	return func(e *Engine) {
		e.maxNesting = n
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	eng.runtime = runtime.NewEngine(
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithMaxNesting(eng.maxNesting),
	)
	return eng
}

// Run executes machine on input. A nil steps falls back to the engine budget
// (WithMaxSteps), and to no budget at all when none was configured.
// The context is handed to lifecycle hooks; a run is never interrupted midway.
func (e *Engine) Run(ctx context.Context, machine *domain.Machine, input string, steps *int) (*domain.Result, error) {
	if steps == nil {
		steps = e.maxSteps
	}
	return e.runtime.Run(ctx, machine, input, steps)
}

// RunTuringMachine runs machine on input with an optional step budget and returns
// the trimmed final tape, the history, and whether the machine reached
// domain.DoneState. The error is non-nil only for a malformed machine definition.
func RunTuringMachine(machine *domain.Machine, input string, steps *int) (string, []domain.HistoryEntry, bool, error) {
	res, err := New().Run(context.Background(), machine, input, steps)
	if err != nil {
		return "", nil, false, err
	}
	return res.Tape, res.History, res.Halted, nil
}

// Steps is a helper for the optional step budget.
func Steps(n int) *int {
	return &n
}

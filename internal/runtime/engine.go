package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/p2lu/turingtoy/pkg/domain"
)

// Engine is the fetch-execute driver.
// It holds no per-run state, so one Engine may serve concurrent runs.
type Engine struct {
	executor *Executor
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMaxNesting bounds how deeply guarded instructions may nest.
func WithMaxNesting(n int) EngineOption {
	return func(e *Engine) {
		e.executor = NewExecutor(n)
	}
}

// NewEngine creates a new engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		executor: NewExecutor(DefaultMaxNesting),
		logger:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes machine on input until it reaches domain.DoneState, runs out of
// steps, or finds no instruction. A nil steps means no budget.
// The tape is trimmed once, after the loop.
func (e *Engine) Run(ctx context.Context, m *domain.Machine, input string, steps *int) (*domain.Result, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid machine: %w", err)
	}

	cfg := &Config{
		State: m.StartState,
		Tape:  NewTape(input, m.Blank),
	}
	rec := NewRecorder()

	var reason domain.HaltReason
	count := 0
	for {
		if cfg.State == domain.DoneState {
			reason = domain.HaltAccepted
			break
		}
		if steps != nil && count >= *steps {
			reason = domain.HaltStepLimit
			break
		}

		inst, ok := m.Table.Lookup(cfg.State, cfg.Tape.Read(), m.Blank)
		if !ok || inst.IsEmpty() {
			reason = domain.HaltNoTransition
			break
		}

		entry := rec.Record(cfg, inst)
		if err := e.executor.Execute(cfg, inst); err != nil {
			return nil, fmt.Errorf("step %d in state %q: %w", count+1, entry.State, err)
		}
		count++

		e.logger.Debug("step",
			"step", count,
			"state", entry.State,
			"reading", entry.Reading,
			"position", entry.Position,
			"next_state", cfg.State,
		)
		e.emitStep(ctx, count, entry, cfg.State)
	}

	cfg.Tape.Trim()

	result := &domain.Result{
		Tape:       cfg.Tape.String(),
		History:    rec.Entries(),
		Halted:     cfg.State == domain.DoneState,
		FinalState: cfg.State,
		Steps:      count,
		Reason:     reason,
	}

	e.logger.Info("halt",
		"reason", result.Reason,
		"state", result.FinalState,
		"steps", result.Steps,
		"halted", result.Halted,
	)
	e.emitHalt(ctx, result)

	return result, nil
}

func (e *Engine) emitStep(ctx context.Context, step int, entry domain.HistoryEntry, state string) {
	if e.hooks.OnStep == nil {
		return
	}
	e.hooks.OnStep(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Type: domain.EventStep},
		Step:      step,
		Entry:     entry,
		State:     state,
	})
}

func (e *Engine) emitHalt(ctx context.Context, r *domain.Result) {
	if e.hooks.OnHalt == nil {
		return
	}
	e.hooks.OnHalt(ctx, &domain.HaltEvent{
		EventBase:  domain.EventBase{Type: domain.EventHalt},
		Reason:     r.Reason,
		FinalState: r.FinalState,
		Steps:      r.Steps,
	})
}

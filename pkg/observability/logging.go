package observability

import (
	"context"
	"log/slog"

	"github.com/p2lu/turingtoy/pkg/domain"
)

// LoggingHooks returns hooks that log every step and halt at debug level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step",
				"step", e.Step,
				"state", e.Entry.State,
				"reading", e.Entry.Reading,
				"position", e.Entry.Position,
				"transition", e.Entry.Transition.String(),
				"next_state", e.State,
			)
		},
		OnHalt: func(ctx context.Context, e *domain.HaltEvent) {
			logger.DebugContext(ctx, "halt",
				"reason", e.Reason,
				"state", e.FinalState,
				"steps", e.Steps,
			)
		},
	}
}

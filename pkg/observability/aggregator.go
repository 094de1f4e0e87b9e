package observability

import (
	"context"

	"github.com/p2lu/turingtoy/pkg/domain"
)

// Combine merges several hook sets into one. Hooks run in argument order;
// nil callbacks are skipped.
func Combine(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var steps []func(context.Context, *domain.StepEvent)
	var halts []func(context.Context, *domain.HaltEvent)
	for _, h := range hooks {
		if h.OnStep != nil {
			steps = append(steps, h.OnStep)
		}
		if h.OnHalt != nil {
			halts = append(halts, h.OnHalt)
		}
	}

	var combined domain.LifecycleHooks
	if len(steps) > 0 {
		combined.OnStep = func(ctx context.Context, e *domain.StepEvent) {
			for _, fn := range steps {
				fn(ctx, e)
			}
		}
	}
	if len(halts) > 0 {
		combined.OnHalt = func(ctx context.Context, e *domain.HaltEvent) {
			for _, fn := range halts {
				fn(ctx, e)
			}
		}
	}
	return combined
}

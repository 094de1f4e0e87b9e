package turingtoy

import (
	"context"
	"fmt"

	"github.com/p2lu/turingtoy/pkg/domain"
	"golang.org/x/sync/errgroup"
)

// RunBatch runs the same machine on several inputs in parallel. Runs share nothing,
// so no coordination is needed beyond collecting results in input order.
// A parallelism below 1 means one goroutine per input. Cancelling ctx stops
// scheduling new runs; runs already started finish.
func (e *Engine) RunBatch(ctx context.Context, machine *domain.Machine, inputs []string, steps *int, parallelism int) ([]*domain.Result, error) {
	if err := machine.Validate(); err != nil {
		return nil, fmt.Errorf("invalid machine: %w", err)
	}

	results := make([]*domain.Result, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}

	for i, input := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := e.Run(gctx, machine, input, steps)
			if err != nil {
				return fmt.Errorf("input %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

package cli

import (
	"log/slog"

	"github.com/p2lu/turingtoy"
	"github.com/p2lu/turingtoy/pkg/domain"
	"github.com/p2lu/turingtoy/pkg/observability"
)

// EngineOptions are the engine settings shared by the commands.
type EngineOptions struct {
	Debug    bool
	MaxSteps *int
	Hooks    []domain.LifecycleHooks
}

// createEngine initializes an engine with standard CLI conventions.
func createEngine(opts EngineOptions, logger *slog.Logger) *turingtoy.Engine {
	hooks := opts.Hooks
	if opts.Debug {
		hooks = append(hooks, observability.LoggingHooks(logger))
	}

	engineOpts := []turingtoy.Option{
		turingtoy.WithLogger(logger),
		turingtoy.WithLifecycleHooks(observability.Combine(hooks...)),
	}
	if opts.MaxSteps != nil {
		engineOpts = append(engineOpts, turingtoy.WithMaxSteps(*opts.MaxSteps))
	}
	return turingtoy.New(engineOpts...)
}

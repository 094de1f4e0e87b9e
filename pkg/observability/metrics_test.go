package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/p2lu/turingtoy"
	"github.com/p2lu/turingtoy/pkg/domain"
	"github.com/p2lu/turingtoy/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unaryIncrement() *domain.Machine {
	return &domain.Machine{
		Table: domain.Table{
			"s": {
				"1": domain.NewInstruction(domain.MoveEntry(domain.Right, "")),
				"_": domain.NewInstruction(domain.WriteEntry("1"), domain.MoveEntry(domain.Right, domain.DoneState)),
			},
		},
		Blank:      "_",
		StartState: "s",
	}
}

func TestMetrics_CountStepsAndHalts(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	engine := turingtoy.New(turingtoy.WithLifecycleHooks(metrics.Hooks()))
	ctx := context.Background()

	_, err = engine.Run(ctx, unaryIncrement(), "111", nil)
	require.NoError(t, err)
	_, err = engine.Run(ctx, unaryIncrement(), "111", turingtoy.Steps(2))
	require.NoError(t, err)

	assert.Equal(t, 6.0, testutil.ToFloat64(metrics.Steps))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Runs.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Runs.WithLabelValues("step_limit")))

	expected := `
# HELP turingtoy_runs_total Total number of finished runs, by halt reason
# TYPE turingtoy_runs_total counter
turingtoy_runs_total{reason="accepted"} 1
turingtoy_runs_total{reason="step_limit"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "turingtoy_runs_total"))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.RunSteps))
}

func TestMetrics_SeriesDoNotGrowWithStateNames(t *testing.T) {
	metrics, err := observability.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	engine := turingtoy.New(turingtoy.WithLifecycleHooks(metrics.Hooks()))

	for _, state := range []string{"a", "b", "c", "d"} {
		m := &domain.Machine{
			Table:      domain.Table{state: {"_": domain.NewInstruction(domain.MoveEntry(domain.Right, domain.DoneState))}},
			Blank:      "_",
			StartState: state,
		}
		_, err := engine.Run(context.Background(), m, "", nil)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, testutil.CollectAndCount(metrics.Steps))
	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.Steps))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.Runs))
}

func TestMetrics_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

func TestCombine(t *testing.T) {
	var order []string
	a := domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) { order = append(order, "a-step") },
	}
	b := domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) { order = append(order, "b-step") },
		OnHalt: func(ctx context.Context, e *domain.HaltEvent) { order = append(order, "b-halt") },
	}

	hooks := observability.Combine(a, domain.LifecycleHooks{}, b)
	_, err := turingtoy.New(turingtoy.WithLifecycleHooks(hooks)).Run(context.Background(), unaryIncrement(), "", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a-step", "b-step", "b-halt"}, order)

	empty := observability.Combine()
	assert.Nil(t, empty.OnStep)
	assert.Nil(t, empty.OnHalt)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	engine := turingtoy.New(turingtoy.WithLifecycleHooks(observability.LoggingHooks(logger)))
	_, err := engine.Run(context.Background(), unaryIncrement(), "1", nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=step")
	assert.Contains(t, out, "transition=R")
	assert.Contains(t, out, "msg=halt")
	assert.Contains(t, out, "reason=accepted")
}

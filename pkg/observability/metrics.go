package observability

import (
	"context"

	"github.com/p2lu/turingtoy/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by lifecycle hooks.
// Labels only take values from fixed sets; state names come from callers
// and are never used as labels.
type Metrics struct {
	Steps    prometheus.Counter
	Runs     *prometheus.CounterVec
	RunSteps prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg falls back to prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		Steps: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "turingtoy_steps_total",
				Help: "Total number of executed instructions",
			},
		),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turingtoy_runs_total",
				Help: "Total number of finished runs, by halt reason",
			},
			[]string{"reason"},
		),
		RunSteps: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "turingtoy_run_steps",
				Help:    "Number of steps executed per run",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
	}

	for _, c := range []prometheus.Collector{m.Steps, m.Runs, m.RunSteps} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			m.Steps.Inc()
		},
		OnHalt: func(ctx context.Context, e *domain.HaltEvent) {
			m.Runs.WithLabelValues(string(e.Reason)).Inc()
			m.RunSteps.Observe(float64(e.Steps))
		},
	}
}

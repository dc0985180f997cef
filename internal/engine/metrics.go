package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/roach88/trs/internal/ir"
)

// Metrics is an Observer that exports completion progress as Prometheus
// metrics. Each Metrics owns its registry so several runs in one process
// never share counters.
type Metrics struct {
	registry *prometheus.Registry

	steps      *prometheus.CounterVec
	pairs      prometheus.Counter
	identities prometheus.Gauge
	rules      prometheus.Gauge
	outcome    *prometheus.GaugeVec
}

// NewMetrics creates the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		steps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trs",
			Subsystem: "completion",
			Name:      "steps_total",
			Help:      "Completion steps by kind",
		}, []string{"kind"}),
		pairs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "trs",
			Subsystem: "completion",
			Name:      "critical_pairs_total",
			Help:      "Critical pairs added as identities",
		}),
		identities: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "trs",
			Subsystem: "completion",
			Name:      "identities",
			Help:      "Identities after the latest step",
		}),
		rules: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "trs",
			Subsystem: "completion",
			Name:      "rules",
			Help:      "Rules after the latest step",
		}),
		outcome: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "trs",
			Subsystem: "completion",
			Name:      "outcome",
			Help:      "1 for the terminal state the run reached",
		}, []string{"state"}),
	}
}

// Observe updates the collectors from one step.
func (m *Metrics) Observe(_ string, step ir.Step) error {
	m.steps.WithLabelValues(string(step.Kind)).Inc()
	m.identities.Set(float64(len(step.Identities)))
	m.rules.Set(float64(len(step.Rules)))

	switch step.Kind {
	case ir.StepCriticalPairs:
		// Terms holds the two sides of each new pair.
		m.pairs.Add(float64(len(step.Terms) / 2))
	case ir.StepSaturated:
		m.outcome.WithLabelValues(ir.StateSaturated).Set(1)
	case ir.StepFailed:
		m.outcome.WithLabelValues(ir.StateFailed).Set(1)
	}
	return nil
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current values in the Prometheus text format,
// for the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

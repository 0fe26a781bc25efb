// Package metrics exposes Prometheus collectors for autofill runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spigell/job-autofill/internal/autofill"
)

const namespace = "autofill"

// Outcome labels of the runs counter.
const (
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
	OutcomeRejected  = "rejected"
)

// Metrics records run outcomes. It is an autofill.Reporter.
type Metrics struct {
	registry *prometheus.Registry

	runs     *prometheus.CounterVec
	fields   *prometheus.CounterVec
	duration prometheus.Histogram
}

var _ autofill.Reporter = (*Metrics)(nil)

// New registers the collectors, plus the Go runtime ones, on a fresh
// registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Autofill runs by outcome.",
			},
			[]string{"outcome"},
		),
		fields: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fields_total",
				Help:      "Form controls considered and filled by completed runs.",
			},
			[]string{"state"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of completed autofill runs.",
				Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
			},
		),
	}

	m.registry.MustRegister(
		m.runs,
		m.fields,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Completed(_ string, stats autofill.Stats, elapsed time.Duration) {
	m.runs.WithLabelValues(OutcomeCompleted).Inc()
	m.fields.WithLabelValues("found").Add(float64(stats.Found))
	m.fields.WithLabelValues("filled").Add(float64(stats.Filled))
	m.duration.Observe(elapsed.Seconds())
}

func (m *Metrics) Failed(string, error) {
	m.runs.WithLabelValues(OutcomeFailed).Inc()
}

func (m *Metrics) Rejected(string) {
	m.runs.WithLabelValues(OutcomeRejected).Inc()
}

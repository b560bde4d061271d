// Package metrics exposes Prometheus collectors for query runs and reported
// engine errors.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vk/graphene/internal/fault"
	"github.com/vk/graphene/internal/query"
)

const namespace = "graphene"

// Metrics holds the engine's collectors. It is both a fault.Reporter and a
// query.Observer.
type Metrics struct {
	queryRuns     prometheus.Counter
	queryResults  prometheus.Counter
	queryDuration prometheus.Histogram
	errors        *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		queryRuns: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "query",
			Name:      "runs_total",
			Help:      "Total query runs.",
		}),
		queryResults: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "query",
			Name:      "results_total",
			Help:      "Total results returned by query runs.",
		}),
		queryDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "query",
			Name:      "run_duration_seconds",
			Help:      "Query run latency in seconds.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		// Labels: kind (duplicate_id, dangling_endpoint, unknown_pipe_type, ...)
		errors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_reported_total",
			Help:      "Total recoverable errors reported by the engine, by kind.",
		}, []string{"kind"}),
	}
}

// Report implements fault.Reporter.
func (m *Metrics) Report(_ context.Context, err error) {
	if err == nil {
		return
	}
	m.errors.WithLabelValues(fault.Kind(err)).Inc()
}

// ObserveRun records one finished query run. Its signature matches
// query.Observer.
func (m *Metrics) ObserveRun(_ context.Context, info query.RunInfo) {
	m.queryRuns.Inc()
	m.queryResults.Add(float64(info.Stats.Results))
	m.queryDuration.Observe(info.Stats.Duration.Seconds())
}

var _ fault.Reporter = (*Metrics)(nil)

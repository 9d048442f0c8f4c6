package observability

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "place_suggest"

// Metrics holds the Prometheus counters and histograms for one export run.
type Metrics struct {
	registry *prometheus.Registry

	SuggestRequests *prometheus.CounterVec // labels: outcome={success,empty,error}
	SuggestDuration prometheus.Histogram
	RowsWritten     prometheus.Counter
	WriteErrors     prometheus.Counter
	RunOutcome      *prometheus.CounterVec // labels: outcome={written,empty,fetch_failed,write_failed}
}

// NewMetrics creates the run metrics on a private registry. The process runs
// once and exits, so nothing is served; see Push.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SuggestRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggest_requests_total",
			Help:      "Suggest API requests by outcome.",
		}, []string{"outcome"}),
		SuggestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "suggest_request_duration_seconds",
			Help:      "Suggest API request duration in seconds, including body decode.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		RowsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_written_total",
			Help:      "CSV data rows written, header excluded.",
		}),
		WriteErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "write_errors_total",
			Help:      "CSV write failures.",
		}),
		RunOutcome: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcome_total",
			Help:      "Completed runs by terminal outcome.",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		m.SuggestRequests,
		m.SuggestDuration,
		m.RowsWritten,
		m.WriteErrors,
		m.RunOutcome,
	)

	return m
}

// Gatherer exposes the registry, mainly for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// Push sends the collected metrics to a Prometheus Pushgateway under job.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	if err := push.New(url, job).Gatherer(m.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}

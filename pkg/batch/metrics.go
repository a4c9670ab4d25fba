package batch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains Prometheus metrics for batch execution.
type Metrics struct {
	// Jobs by terminal status (succeeded, failed, skipped)
	jobsTotal *prometheus.CounterVec

	// Wall-clock duration of whole batches
	batchDuration prometheus.Histogram
}

// NewMetrics creates and registers batch metrics with the provided registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		jobsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deckfill_batch_jobs_total",
				Help: "Total jobs processed by terminal status",
			},
			[]string{"status"},
		),
		batchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "deckfill_batch_duration_seconds",
				Help:    "Wall-clock duration of batch runs",
				Buckets: []float64{0.1, 1, 5, 15, 60, 120, 300, 600},
			},
		),
	}

	registry.MustRegister(m.jobsTotal, m.batchDuration)
	return m
}

func (m *Metrics) countJob(status string) {
	m.jobsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) observeBatch(elapsed time.Duration) {
	m.batchDuration.Observe(elapsed.Seconds())
}

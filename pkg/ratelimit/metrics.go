package ratelimit

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains Prometheus metrics for a limiter instance.
type Metrics struct {
	// Time spent blocked inside Acquire before admission
	acquireWait prometheus.Histogram

	// Total amounts admitted per quota
	admittedTotal *prometheus.CounterVec

	// Outstanding usage and configured limit per quota
	outstanding *prometheus.GaugeVec
	limit       *prometheus.GaugeVec
}

// NewMetrics creates and registers limiter metrics with the provided
// registry. The provider label distinguishes limiters when several
// providers are configured.
func NewMetrics(registry *prometheus.Registry, provider string) *Metrics {
	m := &Metrics{
		acquireWait: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:        "deckfill_ratelimit_acquire_wait_seconds",
				Help:        "Time spent blocked waiting for rate limit admission",
				Buckets:     []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 15, 30, 60, 120},
				ConstLabels: prometheus.Labels{"provider": provider},
			},
		),
		admittedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "deckfill_ratelimit_admitted_total",
				Help:        "Total amounts admitted through the rate limiter",
				ConstLabels: prometheus.Labels{"provider": provider},
			},
			[]string{"quota"},
		),
		outstanding: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "deckfill_ratelimit_outstanding",
				Help:        "Outstanding usage inside the rolling window",
				ConstLabels: prometheus.Labels{"provider": provider},
			},
			[]string{"quota"},
		),
		limit: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "deckfill_ratelimit_limit",
				Help:        "Currently configured quota limit",
				ConstLabels: prometheus.Labels{"provider": provider},
			},
			[]string{"quota"},
		),
	}

	registry.MustRegister(m.acquireWait, m.admittedTotal, m.outstanding, m.limit)
	return m
}

func (m *Metrics) observeAcquire(waited time.Duration) {
	m.acquireWait.Observe(waited.Seconds())
}

func (m *Metrics) addAdmitted(quota string, amount int64) {
	m.admittedTotal.WithLabelValues(quota).Add(float64(amount))
}

func (m *Metrics) setOutstanding(quota string, outstanding int64) {
	m.outstanding.WithLabelValues(quota).Set(float64(outstanding))
}

func (m *Metrics) setLimit(quota string, limit int64) {
	m.limit.WithLabelValues(quota).Set(float64(limit))
}

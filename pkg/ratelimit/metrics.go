package ratelimit

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics records limiter events on the default registry.
type PrometheusMetrics struct {
	requestsTotal *prometheus.CounterVec
	deniedTotal   *prometheus.CounterVec
	bansTotal     *prometheus.CounterVec
	checkDuration *prometheus.HistogramVec
	activeKeys    *prometheus.GaugeVec
}

var (
	promMetricsOnce sync.Once
	promMetrics     *PrometheusMetrics
)

// NewPrometheusMetrics returns the process-wide metrics instance. Collectors
// register once regardless of how many limiters exist.
func NewPrometheusMetrics() *PrometheusMetrics {
	promMetricsOnce.Do(func() {
		promMetrics = &PrometheusMetrics{
			requestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "rate_limit_requests_total",
					Help: "Rate limit checks by outcome",
				},
				[]string{"limiter", "endpoint", "outcome"}, // outcome: allowed|denied
			),
			deniedTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "rate_limit_denied_total",
					Help: "Denied requests",
				},
				[]string{"limiter", "endpoint"},
			),
			bansTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "rate_limit_bans_total",
					Help: "Timed bans issued",
				},
				[]string{"limiter"},
			),
			checkDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "rate_limit_check_duration_seconds",
					Help:    "Rate limit check duration",
					Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
				},
				[]string{"limiter"},
			),
			activeKeys: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "rate_limit_active_keys",
					Help: "Tracked keys per limiter",
				},
				[]string{"limiter"},
			),
		}
	})
	return promMetrics
}

func (m *PrometheusMetrics) RecordAllowed(limiterType, endpoint string) {
	m.requestsTotal.WithLabelValues(limiterType, endpoint, "allowed").Inc()
}

func (m *PrometheusMetrics) RecordDenied(limiterType, endpoint string) {
	m.requestsTotal.WithLabelValues(limiterType, endpoint, "denied").Inc()
	m.deniedTotal.WithLabelValues(limiterType, endpoint).Inc()
}

func (m *PrometheusMetrics) RecordCheckDuration(limiterType string, duration time.Duration) {
	m.checkDuration.WithLabelValues(limiterType).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordBan(limiterType string) {
	m.bansTotal.WithLabelValues(limiterType).Inc()
}

func (m *PrometheusMetrics) SetActiveKeys(limiterType string, count int) {
	m.activeKeys.WithLabelValues(limiterType).Set(float64(count))
}

// NoOpMetrics discards all events. Used in tests and when metrics are off.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordAllowed(_, _ string)                     {}
func (NoOpMetrics) RecordDenied(_, _ string)                      {}
func (NoOpMetrics) RecordCheckDuration(_ string, _ time.Duration) {}
func (NoOpMetrics) RecordBan(_ string)                            {}
func (NoOpMetrics) SetActiveKeys(_ string, _ int)                 {}

package rewriter

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CallMetricsRecorder records model-call metrics. Abstracted so tests can
// inject a mock and so another metrics backend could be swapped in.
type CallMetricsRecorder interface {
	// RecordCall counts one model call with its outcome ("ok" or "error").
	RecordCall(provider, call, outcome string)

	// RecordDuration records how long one model call took.
	RecordDuration(provider, call string, duration time.Duration)
}

// PrometheusCallMetrics is the production CallMetricsRecorder.
type PrometheusCallMetrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var (
	callMetricsInstance *PrometheusCallMetrics
	callMetricsOnce     sync.Once
)

// NewPrometheusCallMetrics returns the singleton Prometheus recorder.
// Singleton avoids duplicate registration when several adapters are built
// in one process or across tests.
func NewPrometheusCallMetrics() *PrometheusCallMetrics {
	callMetricsOnce.Do(func() {
		callMetricsInstance = &PrometheusCallMetrics{
			calls: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "rewrite_model_calls_total",
				Help: "Total model calls by provider, call type and outcome",
			}, []string{"provider", "call", "outcome"}),
			duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "rewrite_model_call_duration_seconds",
				Help:    "Time taken by one model call",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			}, []string{"provider", "call"}),
		}
	})
	return callMetricsInstance
}

func (p *PrometheusCallMetrics) RecordCall(provider, call, outcome string) {
	p.calls.WithLabelValues(provider, call, outcome).Inc()
}

func (p *PrometheusCallMetrics) RecordDuration(provider, call string, duration time.Duration) {
	p.duration.WithLabelValues(provider, call).Observe(duration.Seconds())
}

// NoopCallMetrics discards everything; used in tests.
type NoopCallMetrics struct{}

func (NoopCallMetrics) RecordCall(string, string, string)            {}
func (NoopCallMetrics) RecordDuration(string, string, time.Duration) {}

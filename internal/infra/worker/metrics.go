package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	jobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_job_runs_total",
			Help: "Scheduled pipeline runs by outcome",
		},
		[]string{"status"},
	)

	jobDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of one pipeline run",
			Buckets: []float64{1, 5, 30, 60, 300, 900, 1800},
		},
	)

	jobArticlesPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "worker_job_articles_published_total",
			Help: "Articles published across scheduled runs",
		},
	)

	jobLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_job_last_success_timestamp_seconds",
			Help: "Unix time of the last successful run",
		},
	)
)

func recordRun(status string, duration time.Duration, published int) {
	jobRunsTotal.WithLabelValues(status).Inc()
	jobDuration.Observe(duration.Seconds())
	if status == "success" {
		jobArticlesPublished.Add(float64(published))
		jobLastSuccess.SetToCurrentTime()
	}
}

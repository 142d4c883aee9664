// Package obs holds the Prometheus instrumentation for the reconciliation
// engine. The host application mounts Handler() wherever it exposes metrics.
package obs

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var initOnce sync.Once

var (
	syncRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fieldsync_runs_total",
			Help: "Sync invocations by mode and result.",
		},
		[]string{"mode", "result"},
	)

	artifactsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fieldsync_artifacts_total",
			Help: "Per-candidate outcomes across all runs.",
		},
		[]string{"status"},
	)

	syncDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fieldsync_run_duration_seconds",
			Help:    "Wall-clock duration of one sync run.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Init registers the metrics in the default registry. Safe to call more
// than once; only the first call registers.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(syncRunsTotal, artifactsTotal, syncDuration)
	})
}

// Handler returns the Prometheus exposition handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRun records the aggregate result of one sync run.
func ObserveRun(mode string, succeeded bool, elapsed time.Duration) {
	result := "ok"
	if !succeeded {
		result = "failed"
	}
	syncRunsTotal.WithLabelValues(mode, result).Inc()
	syncDuration.Observe(elapsed.Seconds())
}

// CountOutcome records one per-candidate outcome status.
func CountOutcome(status string) {
	artifactsTotal.WithLabelValues(status).Inc()
}

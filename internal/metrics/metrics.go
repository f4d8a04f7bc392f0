// Package metrics exposes prometheus collectors for the import pipeline and the HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	importRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "address",
		Subsystem: "import",
		Name:      "runs_total",
		Help:      "Total number of import runs broken down by outcome.",
	}, []string{"outcome"})

	importRowsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "address",
		Subsystem: "import",
		Name:      "rows_written_total",
		Help:      "Total number of address rows newly written by imports.",
	})

	importRowsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "address",
		Subsystem: "import",
		Name:      "rows_skipped_total",
		Help:      "Total number of address rows skipped because their key already existed.",
	})

	importBatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "address",
		Subsystem: "import",
		Name:      "batch_duration_seconds",
		Help:      "Time spent writing one import batch.",
		Buckets:   prometheus.DefBuckets,
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "address",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests broken down by route, method and status.",
	}, []string{"route", "method", "status"})
)

// RecordImportRun counts a finished run. outcome is "completed" or "failed".
func RecordImportRun(outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	importRuns.WithLabelValues(outcome).Inc()
}

// RecordBatch records the result of one written batch.
func RecordBatch(size, written int, elapsed time.Duration) {
	importRowsWritten.Add(float64(written))
	if skipped := size - written; skipped > 0 {
		importRowsSkipped.Add(float64(skipped))
	}
	importBatchDuration.Observe(elapsed.Seconds())
}

// Middleware counts requests by matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler serves the default prometheus registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	filesGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bankfile_files_generated_total",
			Help: "Total number of payment files generated",
		},
		[]string{"format"},
	)

	preflightFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bankfile_preflight_failures_total",
			Help: "Total number of batches rejected by preflight validation",
		},
		[]string{"format"},
	)

	paymentsPerFile = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bankfile_payments_per_file",
			Help:    "Number of payments in each generated file",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"format"},
	)

	generationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bankfile_generation_duration_seconds",
			Help:    "Duration of file generation in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)
)

// RecordFileGenerated records one successful file generation.
func RecordFileGenerated(format string, payments int, elapsed time.Duration) {
	filesGeneratedTotal.WithLabelValues(format).Inc()
	paymentsPerFile.WithLabelValues(format).Observe(float64(payments))
	generationDuration.WithLabelValues(format).Observe(elapsed.Seconds())
}

// RecordPreflightFailure records one batch rejected by preflight.
func RecordPreflightFailure(format string) {
	preflightFailuresTotal.WithLabelValues(format).Inc()
}

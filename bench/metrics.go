package bench

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/spacemeshos/go-txrecon/metrics"
)

const subsystem = "bench"

var (
	runCounter = metrics.NewCounter(
		"runs",
		subsystem,
		"Number of finished benchmark runs",
		[]string{"result"},
	)
	tableBuckets = metrics.NewGauge(
		"table_buckets",
		subsystem,
		"Number of buckets in the table of the current benchmark",
		[]string{},
	).WithLabelValues()
	runDuration = metrics.NewHistogramWithBuckets(
		"run_duration_seconds",
		subsystem,
		"Duration of a single benchmark run",
		[]string{},
		prometheus.ExponentialBuckets(0.001, 2, 16),
	).WithLabelValues()
)

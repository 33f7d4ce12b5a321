package peel

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/spacemeshos/go-txrecon/metrics"
)

const subsystem = "peel"

var (
	passes = metrics.NewHistogramWithBuckets(
		"passes",
		subsystem,
		"Number of passes made by a decode",
		[]string{"status"},
		prometheus.ExponentialBuckets(1, 2, 10),
	)
	decodes = metrics.NewCounter(
		"decodes",
		subsystem,
		"Number of finished decodes",
		[]string{"status"},
	)
	transactions = metrics.NewCounter(
		"transactions",
		subsystem,
		"Number of transactions resolved from sketches",
		[]string{"side"},
	)
	failures = metrics.NewCounter(
		"reconstruction_failures",
		subsystem,
		"Number of failed attempts to reassemble a transaction",
		[]string{"reason"},
	)

	removedTxs   = transactions.WithLabelValues("local")
	recoveredTxs = transactions.WithLabelValues("remote")
)

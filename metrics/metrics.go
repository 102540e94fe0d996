package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "investor_lookup"
)

var (
	loadDurationBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

	// Loader Metrics
	LoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "load_duration_seconds",
		Help:      "Time taken to load the spreadsheets into the store.",
		Buckets:   loadDurationBuckets,
	})

	LoadRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "load_runs_total",
		Help:      "Count of loader executions.",
	}, []string{"status"})

	TableRows = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "table_rows",
		Help:      "Rows held per table after the last load or repository build.",
	}, []string{"table"})

	// Lookup Metrics
	LookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookups_total",
		Help:      "Count of investor lookups by outcome.",
	}, []string{"result"})

	ExportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Count of CSV exports served.",
	}, []string{"kind"})
)

// Lookup outcomes.
const (
	ResultFound    = "found"
	ResultNotFound = "not_found"
	ResultEmpty    = "empty"
)

// Export kinds.
const (
	ExportProfile   = "profile"
	ExportInvestors = "investors"
)

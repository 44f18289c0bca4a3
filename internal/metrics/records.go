package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Record access Prometheus metrics.
var (
	FilterCompilationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recdex",
			Name:      "filter_compilations_total",
			Help:      "Filter requests compiled into predicates",
		},
		[]string{"condition", "shape"},
	)

	ListResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "recdex",
			Name:      "list_results",
			Help:      "Number of records returned per list request",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 75, 100},
		},
	)

	ImportedRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recdex",
			Name:      "imported_records_total",
			Help:      "Records processed by bulk import",
		},
		[]string{"status"}, // "ok" / "error"
	)
)

var registerRecordMetrics sync.Once

// RegisterRecordMetrics registers record access metrics. Safe to call more than once.
func RegisterRecordMetrics() {
	registerRecordMetrics.Do(func() {
		prometheus.MustRegister(FilterCompilationsTotal)
		prometheus.MustRegister(ListResults)
		prometheus.MustRegister(ImportedRecordsTotal)
	})
}

// ObserveFilter counts one compiled filter request. An empty condition is
// labelled "none".
func ObserveFilter(condition, shape string) {
	if condition == "" {
		condition = "none"
	}
	FilterCompilationsTotal.WithLabelValues(condition, shape).Inc()
}

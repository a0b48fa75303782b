// Package metrics provides Prometheus metrics for strata.
//
// # Overview
//
// Metrics are recorded where work is paid once: when a comparator is built
// and when an algorithmic pass finishes. Nothing is recorded per comparison.
//
// # Basic Usage
//
//	metrics.ObserveComparator("ordering", columnar.LayoutMulti.String())
//
//	timer := metrics.NewTimer("argsort")
//	perm := sortRows(rows)
//	timer.ObserveRows(len(perm))
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ComparatorsBuilt counts comparators handed out by the layout dispatcher.
	// Labels: kind (equality/ordering/pair/categorical), layout
	ComparatorsBuilt = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strata_comparators_built_total",
			Help: "Number of comparators built, by kind and column layout",
		},
		[]string{"kind", "layout"},
	)

	// OpDuration tracks how long an algorithmic pass took.
	// Labels: op (argsort/parallel_argsort/distinct/merge_join)
	OpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "strata_op_duration_seconds",
			Help: "Duration of comparator-driven passes",
			Buckets: []float64{
				1e-6, // 1μs - tiny columns
				1e-5,
				1e-4,
				1e-3, // 1ms
				1e-2,
				1e-1,
				1, // 1s - large sorts
				10,
			},
		},
		[]string{"op"},
	)

	// OpRows counts rows processed by passes.
	OpRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strata_op_rows_total",
			Help: "Rows processed by comparator-driven passes",
		},
		[]string{"op"},
	)
)

// ObserveComparator records one comparator construction.
func ObserveComparator(kind, layout string) {
	ComparatorsBuilt.WithLabelValues(kind, layout).Inc()
}

// Timer measures one pass.
type Timer struct {
	op    string
	start time.Time
}

// NewTimer starts timing op
func NewTimer(op string) *Timer {
	return &Timer{op: op, start: time.Now()}
}

// ObserveRows stops the timer, records the duration and row count, and
// returns the elapsed time.
func (t *Timer) ObserveRows(rows int) time.Duration {
	elapsed := time.Since(t.start)
	OpDuration.WithLabelValues(t.op).Observe(elapsed.Seconds())
	OpRows.WithLabelValues(t.op).Add(float64(rows))
	return elapsed
}

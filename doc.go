// Package strata provides comparator-driven passes over chunked columnar data.
//
// A column is a sequence of typed values split into chunks, each with an
// optional validity bitmap. Strata builds one comparator per column (or pair
// of columns) and reuses it for every comparison of a pass, so arg-sort,
// distinct and merge-join never branch on the column's layout per element.
//
// # Packages
//
//   - pkg/columnar: chunked columns, categorical columns, Arrow conversion
//   - pkg/compare: equality and ordering comparators over element positions
//   - pkg/ops: arg-sort, parallel arg-sort, group offsets, distinct, merge-join
//   - pkg/config: YAML configuration loaded through viper
//   - pkg/logger, pkg/metrics, pkg/observability: zap, Prometheus, OpenTelemetry
//
// # Ordering
//
// Nulls order before every present value. Floating point NaN orders after
// nulls and before every number, is never equal to anything (itself
// included), and therefore never matches in a join.
//
// # Quick Start
//
//	col := columnar.FromSlice("price", []float64{3.5, 1.25, math.NaN(), 2})
//	c := compare.NewComparator(col)
//	perm, err := ops.ArgSort(ctx, c, col.Len(), ops.SortOptions{})
//	// perm == [2 1 3 0]
//
// The strata command works on Arrow IPC files:
//
//	strata gen --out prices.arrow --type float64 --rows 100000 --nan-rate 0.01
//	strata sort --in prices.arrow --limit 10 --values
//	strata join --left a.arrow --right b.arrow --column value
package strata

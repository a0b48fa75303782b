// Package ops runs comparator-driven passes over columns: arg-sort,
// parallel arg-sort, distinct, sorted group offsets and merge join.
//
// Every pass takes a comparator built once by package compare and calls it
// many times. Positions handed to the comparator always come from [0, n), so
// the unchecked Eq and Cmp are safe as long as n does not exceed the column
// length. Passes open a trace span, record duration and row metrics, and log
// at debug level through the global logger.
//
//	perm, err := ops.ArgSort(ctx, compare.NewOrderingComparator(col), col.Len(),
//		ops.SortOptions{NullsLast: true, Nulls: col})
package ops

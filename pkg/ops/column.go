package ops

import (
	"context"

	"github.com/ajitpratap0/strata/pkg/columnar"
	"github.com/ajitpratap0/strata/pkg/compare"
	"github.com/ajitpratap0/strata/pkg/logger"
)

// SortColumn arg-sorts a type-erased column, in parallel when opts allow.
// opts.Nulls defaults to the column itself.
func SortColumn(ctx context.Context, col columnar.AnyColumn, opts SortOptions) ([]int, error) {
	ctx = withColumn(ctx, col)
	c, err := compare.ForColumn(col)
	if err != nil {
		return nil, err
	}
	if opts.Nulls == nil {
		opts.Nulls = col
	}
	if opts.Parallelism > 1 {
		return ParallelArgSort(ctx, c, col.Len(), opts)
	}
	return ArgSort(ctx, c, col.Len(), opts)
}

// DistinctColumn returns first positions of the distinct values of a
// type-erased column.
func DistinctColumn(ctx context.Context, col columnar.AnyColumn) ([]int, error) {
	ctx = withColumn(ctx, col)
	c, err := compare.ForColumn(col)
	if err != nil {
		return nil, err
	}
	return Distinct(ctx, c, col.Len())
}

// JoinAny is MergeJoin over two type-erased columns of one type. Pass logs
// carry the left column's name.
func JoinAny(ctx context.Context, left, right columnar.AnyColumn) (JoinResult, error) {
	ctx = withColumn(ctx, left)
	if lc, ok := left.(*columnar.Categorical); ok {
		if rc, ok := right.(*columnar.Categorical); ok {
			return JoinCategoricals(ctx, lc, rc)
		}
	}
	pair, err := compare.ForColumns(left, right)
	if err != nil {
		return JoinResult{}, err
	}
	lc, err := compare.ForColumn(left)
	if err != nil {
		return JoinResult{}, err
	}
	rc, err := compare.ForColumn(right)
	if err != nil {
		return JoinResult{}, err
	}
	return MergeJoin(ctx,
		JoinSide{Order: lc, Len: left.Len(), Nulls: left},
		JoinSide{Order: rc, Len: right.Len(), Nulls: right},
		pair,
	)
}

// withColumn names the column in pass logs.
func withColumn(ctx context.Context, col columnar.AnyColumn) context.Context {
	return context.WithValue(ctx, logger.ColumnKey, col.Name())
}

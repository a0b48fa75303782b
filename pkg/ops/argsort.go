package ops

import (
	"context"
	"slices"

	"github.com/ajitpratap0/strata/pkg/compare"
	"github.com/ajitpratap0/strata/pkg/config"
	"github.com/ajitpratap0/strata/pkg/strataerrors"
)

// NullChecker reports null positions. Every columnar column implements it.
type NullChecker interface {
	IsNull(idx int) bool
}

// SortOptions controls arg-sort and the passes built on it.
type SortOptions struct {
	// Descending reverses the order of present values.
	Descending bool
	// NullsLast places nulls after present values. Requires Nulls.
	NullsLast bool
	// Nulls pins null placement independently of Descending. Without it the
	// comparator's own order applies, so nulls follow the direction.
	Nulls NullChecker
	// Parallelism is the worker count for ParallelArgSort; <= 1 is sequential.
	Parallelism int
	// MinParallelRows keeps inputs smaller than this sequential.
	MinParallelRows int
}

// SortOptionsFromConfig maps the sort config section onto options.
func SortOptionsFromConfig(cfg config.SortConfig, nulls NullChecker) SortOptions {
	return SortOptions{
		Descending:      cfg.Descending,
		NullsLast:       cfg.NullsLast,
		Nulls:           nulls,
		Parallelism:     cfg.GetParallelism(),
		MinParallelRows: cfg.MinParallelRows,
	}
}

func (o SortOptions) validate(n int) error {
	if n < 0 {
		return strataerrors.Newf(strataerrors.ErrorTypeValidation, "negative row count %d", n)
	}
	if o.NullsLast && o.Nulls == nil {
		return strataerrors.New(strataerrors.ErrorTypeValidation, "nulls_last needs a null checker")
	}
	return nil
}

// orderFunc turns a comparator into a slices sort function over positions.
func orderFunc(c compare.OrderingComparator, opts SortOptions) func(a, b int) int {
	desc := opts.Descending
	if opts.Nulls == nil {
		return func(a, b int) int {
			o := c.Cmp(a, b)
			if desc {
				o = o.Reverse()
			}
			return int(o)
		}
	}

	nulls := opts.Nulls
	nullRank := -1
	if opts.NullsLast {
		nullRank = 1
	}
	return func(a, b int) int {
		na, nb := nulls.IsNull(a), nulls.IsNull(b)
		switch {
		case na && nb:
			return 0
		case na:
			return nullRank
		case nb:
			return -nullRank
		}
		o := c.Cmp(a, b)
		if desc {
			o = o.Reverse()
		}
		return int(o)
	}
}

func identity(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return perm
}

// ArgSort returns the stable sorting permutation of positions [0, n) under c.
// n must not exceed the length of the column c was built from.
func ArgSort(ctx context.Context, c compare.OrderingComparator, n int, opts SortOptions) (perm []int, err error) {
	if err := opts.validate(n); err != nil {
		return nil, err
	}
	ctx, p := startPass(ctx, OpArgSort, n)
	defer func() { p.finish(err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	perm = identity(n)
	slices.SortStableFunc(perm, orderFunc(c, opts))
	return perm, nil
}

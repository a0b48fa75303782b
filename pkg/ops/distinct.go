package ops

import (
	"context"
	"slices"

	"github.com/ajitpratap0/strata/pkg/compare"
)

// GroupOffsets returns the boundaries of runs of equal elements in a sorted
// permutation: group g spans perm[offsets[g]:offsets[g+1]]. The result
// always starts with 0 and ends with len(perm). NaN never equals itself, so
// every NaN position is its own group.
func GroupOffsets(ctx context.Context, c compare.EqualityComparator, perm []int) (offsets []int, err error) {
	ctx, p := startPass(ctx, OpGroupOffsets, len(perm))
	defer func() { p.finish(err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	offsets = append(offsets, 0)
	for i := 1; i < len(perm); i++ {
		if !c.Eq(perm[i-1], perm[i]) {
			offsets = append(offsets, i)
		}
	}
	if len(perm) > 0 {
		offsets = append(offsets, len(perm))
	}
	return offsets, nil
}

// Distinct returns the first position of every distinct element among
// [0, n), in ascending position order. Nulls form one group.
func Distinct(ctx context.Context, c compare.Comparator, n int) (firsts []int, err error) {
	if err := (SortOptions{}).validate(n); err != nil {
		return nil, err
	}
	ctx, p := startPass(ctx, OpDistinct, n)
	defer func() { p.finish(err) }()

	perm, err := ArgSort(ctx, c, n, SortOptions{})
	if err != nil {
		return nil, err
	}
	offsets, err := GroupOffsets(ctx, c, perm)
	if err != nil {
		return nil, err
	}

	firsts = make([]int, 0, len(offsets))
	for g := 0; g+1 < len(offsets); g++ {
		// Stable sort keeps each group in position order.
		firsts = append(firsts, perm[offsets[g]])
	}
	slices.Sort(firsts)
	p.span.SetAttribute("pass.groups", len(firsts))
	return firsts, nil
}

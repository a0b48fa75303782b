package ops

import (
	"cmp"
	"context"

	"go.uber.org/zap"

	"github.com/ajitpratap0/strata/pkg/columnar"
	"github.com/ajitpratap0/strata/pkg/compare"
	"github.com/ajitpratap0/strata/pkg/logger"
)

// JoinSide is one input of a merge join.
type JoinSide struct {
	// Order sorts the side's own positions.
	Order compare.OrderingComparator
	// Len is the number of positions.
	Len int
	// Nulls, when set, drops null rows: null keys never join.
	Nulls NullChecker
}

// JoinResult holds matching position pairs: Left[k] joins Right[k].
type JoinResult struct {
	Left  []int
	Right []int
}

// Len returns the number of matched pairs.
func (r JoinResult) Len() int { return len(r.Left) }

// MergeJoin computes the inner join of two sides. pair compares a left
// position (first argument) with a right position. Output is ordered by key,
// then left position, then right position. NaN keys never match.
func MergeJoin(ctx context.Context, left, right JoinSide, pair compare.OrderingComparator) (res JoinResult, err error) {
	ctx, p := startPass(ctx, OpMergeJoin, left.Len+right.Len)
	defer func() { p.finish(err) }()

	lp, err := sortedSide(ctx, left)
	if err != nil {
		return JoinResult{}, err
	}
	rp, err := sortedSide(ctx, right)
	if err != nil {
		return JoinResult{}, err
	}

	i, j := 0, 0
	for i < len(lp) && j < len(rp) {
		switch pair.Cmp(lp[i], rp[j]) {
		case compare.Less:
			i++
		case compare.Greater:
			j++
		default:
			iEnd := runEnd(left.Order, lp, i)
			jEnd := runEnd(right.Order, rp, j)
			for _, l := range lp[i:iEnd] {
				for _, r := range rp[j:jEnd] {
					res.Left = append(res.Left, l)
					res.Right = append(res.Right, r)
				}
			}
			i, j = iEnd, jEnd
			if err := ctx.Err(); err != nil {
				return JoinResult{}, err
			}
		}
	}
	p.span.SetAttribute("pass.matches", res.Len())
	return res, nil
}

// JoinColumns is MergeJoin over two typed columns.
func JoinColumns[T cmp.Ordered](ctx context.Context, left, right *columnar.Column[T]) (JoinResult, error) {
	return MergeJoin(ctx,
		JoinSide{Order: compare.NewOrderingComparator(left), Len: left.Len(), Nulls: left},
		JoinSide{Order: compare.NewOrderingComparator(right), Len: right.Len(), Nulls: right},
		compare.NewPairOrderingComparator(left, right),
	)
}

// JoinCategoricals is MergeJoin over the resolved strings of two categorical
// columns. The columns may use different mapping modes. Two Global columns
// from one cache are first rebound to a single merged mapping.
func JoinCategoricals(ctx context.Context, left, right *columnar.Categorical) (JoinResult, error) {
	left, right, unified, err := columnar.Unify(left, right)
	if err != nil {
		return JoinResult{}, err
	}
	if unified {
		logger.WithContext(ctx).Debug("categorical mappings unified",
			zap.Int("categories", len(left.RevMap().Categories())))
	}
	return MergeJoin(ctx,
		JoinSide{Order: compare.NewCategoricalOrderingComparator(left), Len: left.Len(), Nulls: left},
		JoinSide{Order: compare.NewCategoricalOrderingComparator(right), Len: right.Len(), Nulls: right},
		compare.NewCategoricalPairComparator(left, right),
	)
}

func sortedSide(ctx context.Context, side JoinSide) ([]int, error) {
	perm, err := ArgSort(ctx, side.Order, side.Len, SortOptions{})
	if err != nil || side.Nulls == nil {
		return perm, err
	}
	// Nulls sort first; skip them.
	k := 0
	for k < len(perm) && side.Nulls.IsNull(perm[k]) {
		k++
	}
	return perm[k:], nil
}

// runEnd returns the end of the run of elements equal to perm[start].
func runEnd(c compare.OrderingComparator, perm []int, start int) int {
	end := start + 1
	for end < len(perm) && c.Cmp(perm[start], perm[end]) == compare.Equal {
		end++
	}
	return end
}

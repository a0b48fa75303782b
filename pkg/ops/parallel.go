package ops

import (
	"context"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/ajitpratap0/strata/pkg/compare"
	"github.com/ajitpratap0/strata/pkg/pool"
)

// ParallelArgSort sorts runs of positions on opts.Parallelism goroutines that
// share c, then merges neighbouring runs pairwise until one is left. Merges
// prefer the left run on ties, so the result equals ArgSort's stable order.
// Inputs below opts.MinParallelRows, or a parallelism of 1, sort in one run.
func ParallelArgSort(ctx context.Context, c compare.OrderingComparator, n int, opts SortOptions) (perm []int, err error) {
	if err := opts.validate(n); err != nil {
		return nil, err
	}
	workers := opts.Parallelism
	if workers < 1 {
		workers = 1
	}
	if n < opts.MinParallelRows || n < 2*workers {
		workers = 1
	}

	ctx, p := startPass(ctx, OpParallelArgSort, n)
	p.span.SetAttribute("pass.parallelism", workers)
	defer func() { p.finish(err) }()

	order := orderFunc(c, opts)
	perm = identity(n)
	bounds := runBounds(n, workers)

	g, gctx := errgroup.WithContext(ctx)
	for k := 0; k+1 < len(bounds); k++ {
		run := perm[bounds[k]:bounds[k+1]]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slices.SortStableFunc(run, order)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	p.span.AddEvent("runs sorted", attribute.Int("runs", len(bounds)-1))

	if len(bounds) <= 2 {
		return perm, nil
	}

	// perm and buf swap each round; swapped tracks which one is pooled.
	buf := pool.GetPositions(n)
	swapped := false
	release := func() {
		if swapped {
			pool.PutPositions(perm)
		} else {
			pool.PutPositions(buf)
		}
	}
	for len(bounds) > 2 {
		if err := ctx.Err(); err != nil {
			release()
			return nil, err
		}
		next := make([]int, 0, len(bounds)/2+2)
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		k := 0
		for ; k+2 < len(bounds); k += 2 {
			lo, mid, hi := bounds[k], bounds[k+1], bounds[k+2]
			next = append(next, lo)
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				mergeRuns(buf[lo:hi], perm[lo:mid], perm[mid:hi], order)
				return nil
			})
		}
		if k+1 < len(bounds) {
			// Odd run out: carried over unchanged.
			lo, hi := bounds[k], bounds[k+1]
			next = append(next, lo)
			copy(buf[lo:hi], perm[lo:hi])
		}
		if err := g.Wait(); err != nil {
			release()
			return nil, err
		}
		next = append(next, n)
		bounds = next
		perm, buf = buf, perm
		swapped = !swapped
	}
	if swapped {
		copy(buf, perm)
		perm, buf = buf, perm
	}
	pool.PutPositions(buf)
	return perm, nil
}

// runBounds splits [0, n) into k near-equal runs and returns k+1 boundaries.
func runBounds(n, k int) []int {
	bounds := make([]int, 0, k+1)
	pos := 0
	for i := 0; i < k; i++ {
		bounds = append(bounds, pos)
		size := n / k
		if i < n%k {
			size++
		}
		pos += size
	}
	return append(bounds, n)
}

// mergeRuns merges two sorted runs into dst, taking from left on ties.
func mergeRuns(dst, left, right []int, order func(a, b int) int) {
	i, j, o := 0, 0, 0
	for i < len(left) && j < len(right) {
		if order(right[j], left[i]) < 0 {
			dst[o] = right[j]
			j++
		} else {
			dst[o] = left[i]
			i++
		}
		o++
	}
	o += copy(dst[o:], left[i:])
	copy(dst[o:], right[j:])
}

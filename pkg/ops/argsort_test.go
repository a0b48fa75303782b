package ops

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ajitpratap0/strata/pkg/columnar"
	"github.com/ajitpratap0/strata/pkg/compare"
	"github.com/ajitpratap0/strata/pkg/config"
	"github.com/ajitpratap0/strata/pkg/logger"
	"github.com/ajitpratap0/strata/pkg/strataerrors"
	"github.com/ajitpratap0/strata/pkg/testutil"
)

func scores() *columnar.Column[int64] {
	return testutil.Nullable("score", 2,
		testutil.Ptr[int64](3), nil, testutil.Ptr[int64](1),
		testutil.Ptr[int64](3), nil, testutil.Ptr[int64](2))
}

func TestArgSort(t *testing.T) {
	col := scores()
	c := compare.NewOrderingComparator(col)
	ctx := context.Background()

	tests := []struct {
		name string
		opts SortOptions
		want []int
	}{
		{"ascending nulls first", SortOptions{}, []int{1, 4, 2, 5, 0, 3}},
		{"ascending nulls last", SortOptions{NullsLast: true, Nulls: col}, []int{2, 5, 0, 3, 1, 4}},
		{"descending follows comparator", SortOptions{Descending: true}, []int{0, 3, 5, 2, 1, 4}},
		{"descending nulls pinned first", SortOptions{Descending: true, Nulls: col}, []int{1, 4, 0, 3, 5, 2}},
		{"descending nulls last", SortOptions{Descending: true, NullsLast: true, Nulls: col}, []int{0, 3, 5, 2, 1, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perm, err := ArgSort(ctx, c, col.Len(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, perm)
		})
	}
}

func TestArgSortNaNSortsAfterNulls(t *testing.T) {
	nan := math.NaN()
	col := testutil.Nullable("f", 0,
		testutil.Ptr(2.0), testutil.Ptr(nan), nil, testutil.Ptr(-1.0), testutil.Ptr(nan))

	perm, err := ArgSort(context.Background(), compare.NewOrderingComparator(col), col.Len(), SortOptions{})
	require.NoError(t, err)
	require.Len(t, perm, 5)
	assert.Equal(t, 2, perm[0])
	assert.ElementsMatch(t, []int{1, 4}, perm[1:3])
	assert.Equal(t, []int{3, 0}, perm[3:])
}

func TestArgSortValidation(t *testing.T) {
	c := compare.NewOrderingComparator(scores())

	_, err := ArgSort(context.Background(), c, 6, SortOptions{NullsLast: true})
	require.Error(t, err)
	assert.True(t, strataerrors.IsType(err, strataerrors.ErrorTypeValidation))

	_, err = ArgSort(context.Background(), c, -1, SortOptions{})
	assert.Error(t, err)
}

func TestArgSortCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ArgSort(ctx, compare.NewOrderingComparator(scores()), 6, SortOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestArgSortEmpty(t *testing.T) {
	col := columnar.FromSlice("empty", []string{})
	perm, err := ArgSort(context.Background(), compare.NewOrderingComparator(col), 0, SortOptions{})
	require.NoError(t, err)
	assert.Empty(t, perm)
}

func TestSortOptionsFromConfig(t *testing.T) {
	cfg := config.Default().Sort
	cfg.Parallelism = 3
	cfg.NullsLast = true
	cfg.Descending = true

	col := scores()
	opts := SortOptionsFromConfig(cfg, col)
	assert.Equal(t, 3, opts.Parallelism)
	assert.True(t, opts.NullsLast)
	assert.True(t, opts.Descending)
	assert.Equal(t, cfg.MinParallelRows, opts.MinParallelRows)
	assert.NoError(t, opts.validate(col.Len()))
}

func TestPassLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.Get()
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(prev) })

	ctx := context.WithValue(context.Background(), logger.PassIDKey, "pass-1")
	_, err := ArgSort(ctx, compare.NewOrderingComparator(scores()), 6, SortOptions{})
	require.NoError(t, err)

	finished := logs.FilterMessage("pass finished").All()
	require.Len(t, finished, 1)
	fields := finished[0].ContextMap()
	assert.Equal(t, "pass-1", fields["pass_id"])
	assert.Equal(t, OpArgSort, fields["op"])
	assert.Equal(t, int64(6), fields["rows"])
}

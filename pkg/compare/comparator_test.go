package compare

import (
	"math"
	"slices"
	"strings"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/ajitpratap0/strata/pkg/columnar"
	"github.com/ajitpratap0/strata/pkg/metrics"
	"github.com/ajitpratap0/strata/pkg/strataerrors"
	"github.com/ajitpratap0/strata/pkg/testutil"
)

func TestIntegersWithNulls(t *testing.T) {
	col := testutil.Nullable("ints", 0, testutil.Ptr[int64](1), nil, testutil.Ptr[int64](3), nil)
	require.Equal(t, columnar.LayoutSingle, col.Layout())

	c := NewComparator(col)
	assert.Equal(t, Less, c.Cmp(0, 2))
	assert.True(t, c.Eq(1, 3))
	assert.Equal(t, Less, c.Cmp(1, 0))
	assert.Equal(t, Greater, c.Cmp(0, 1))
	assert.Equal(t, Equal, c.Cmp(1, 3))
	assert.False(t, c.Eq(0, 1))
}

func TestFloatsWithNaN(t *testing.T) {
	col := columnar.FromSlice("floats", []float64{math.NaN(), 1.0, 2.0})

	c := NewComparator(col)
	assert.Equal(t, Less, c.Cmp(0, 1))
	assert.Equal(t, Greater, c.Cmp(1, 0))
	assert.False(t, c.Eq(0, 0))
	assert.Equal(t, Less, c.Cmp(0, 0))
	assert.Equal(t, Less, c.Cmp(1, 2))
	assert.Equal(t, Equal, c.Cmp(2, 2))
	assert.True(t, c.Eq(2, 2))
}

func TestNaNIsDecidedByLeftOperand(t *testing.T) {
	nan := float32(math.NaN())
	col := testutil.Chunked("f32", 2, nan, -1, float32(math.Inf(-1)), nan, 0)
	c := NewOrderingComparator(col)

	for j := 0; j < col.Len(); j++ {
		assert.Equal(t, Less, c.Cmp(0, j), "NaN on the left against %d", j)
		assert.Equal(t, Less, c.Cmp(3, j), "NaN on the left against %d", j)
	}
	for _, i := range []int{1, 2, 4} {
		assert.Equal(t, Greater, c.Cmp(i, 0))
		assert.Equal(t, Greater, c.Cmp(i, 3))
	}
}

func TestNaturalOrder(t *testing.T) {
	values := []string{"pear", "apple", "fig", "apple", "", "zucchini"}
	col := testutil.Chunked("fruit", 4, values...)
	c := NewComparator(col)

	for i := range values {
		for j := range values {
			assert.Equal(t, values[i] == values[j], c.Eq(i, j), "Eq(%d, %d)", i, j)
			assert.Equal(t, Ordering(strings.Compare(values[i], values[j])), c.Cmp(i, j), "Cmp(%d, %d)", i, j)
		}
	}
}

func TestNullsOrderFirst(t *testing.T) {
	col := testutil.Nullable("u", 3,
		testutil.Ptr[uint64](0), nil, testutil.Ptr[uint64](math.MaxUint64),
		nil, testutil.Ptr[uint64](5))
	require.Equal(t, columnar.LayoutMulti, col.Layout())
	c := NewComparator(col)

	nulls := []int{1, 3}
	present := []int{0, 2, 4}
	for _, n := range nulls {
		for _, p := range present {
			assert.Equal(t, Less, c.Cmp(n, p))
			assert.Equal(t, Greater, c.Cmp(p, n))
			assert.False(t, c.Eq(n, p))
			assert.False(t, c.Eq(p, n))
		}
		for _, m := range nulls {
			assert.True(t, c.Eq(n, m))
			assert.Equal(t, Equal, c.Cmp(n, m))
		}
	}
}

func TestDispatchSelectsAccessorOnce(t *testing.T) {
	values := []int32{3, 1, 2, 2}
	valid := []bool{true, false, true, true}

	single := columnar.FromSlice("a", values)
	nullable, err := columnar.FromOptions("a", values, valid)
	require.NoError(t, err)

	assert.IsType(t, valueComparator[int32, flatValues[int32]]{}, dispatch(single))
	assert.IsType(t, optionComparator[int32, flatOptions[int32]]{}, dispatch(nullable))
	assert.IsType(t, valueComparator[int32, chunkedValues[int32]]{}, dispatch(columnar.Rechunk(single, 2)))
	assert.IsType(t, optionComparator[int32, chunkedOptions[int32]]{}, dispatch(columnar.Rechunk(nullable, 2)))
}

func TestLayoutIndependence(t *testing.T) {
	nan := math.NaN()
	values := []float64{2, nan, -1, 2, 0, nan, 7, -1, 3}
	valid := []bool{true, true, false, true, true, true, false, true, true}

	base, err := columnar.FromOptions("x", values, valid)
	require.NoError(t, err)
	want := NewComparator(base)

	for n := 1; n <= len(values); n++ {
		col := columnar.Rechunk(base, n)
		require.Equal(t, n, col.NumChunks())
		got := NewComparator(col)
		for i := range values {
			for j := range values {
				assert.Equal(t, want.Eq(i, j), got.Eq(i, j), "chunks=%d Eq(%d, %d)", n, i, j)
				assert.Equal(t, want.Cmp(i, j), got.Cmp(i, j), "chunks=%d Cmp(%d, %d)", n, i, j)
			}
		}
	}
}

func TestLayoutIndependenceWithoutNulls(t *testing.T) {
	base := columnar.FromSlice("x", []int64{5, -3, 5, 9, 0, -3, 12})
	want := NewComparator(base)

	for n := 1; n <= base.Len(); n++ {
		got := NewComparator(columnar.Rechunk(base, n))
		for i := 0; i < base.Len(); i++ {
			for j := 0; j < base.Len(); j++ {
				assert.Equal(t, want.Eq(i, j), got.Eq(i, j))
				assert.Equal(t, want.Cmp(i, j), got.Cmp(i, j))
			}
		}
	}
}

func TestComparatorIsSafeForConcurrentUse(t *testing.T) {
	col := testutil.RandomInt64s(42, 5000, 300, 512, 0.1)
	c := NewComparator(col)

	sorted := func() []int {
		perm := make([]int, col.Len())
		for i := range perm {
			perm[i] = i
		}
		slices.SortStableFunc(perm, func(a, b int) int { return int(c.Cmp(a, b)) })
		return perm
	}
	want := sorted()

	var g errgroup.Group
	results := make([][]int, 8)
	for w := range results {
		g.Go(func() error {
			results[w] = sorted()
			return nil
		})
	}
	require.NoError(t, g.Wait())
	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestConstructionIsObserved(t *testing.T) {
	logs := testutil.UseTestLogger(t)

	counter := metrics.ComparatorsBuilt.WithLabelValues(KindOrdering, columnar.LayoutMultiNoNull.String())
	before := promtest.ToFloat64(counter)

	NewOrderingComparator(testutil.Chunked[int64]("observed", 1, 1, 2))

	assert.Equal(t, before+1, promtest.ToFloat64(counter))
	entries := logs.FilterMessage("comparator built").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "observed", fields["column"])
	assert.Equal(t, "multi_no_null", fields["layout"])
	assert.Equal(t, KindOrdering, fields["kind"])
}

func TestForColumn(t *testing.T) {
	cols := []columnar.AnyColumn{
		columnar.FromSlice("i32", []int32{2, 1}),
		columnar.FromSlice("i64", []int64{2, 1}),
		columnar.FromSlice("u32", []uint32{2, 1}),
		columnar.FromSlice("u64", []uint64{2, 1}),
		columnar.FromSlice("f32", []float32{2, 1}),
		columnar.FromSlice("f64", []float64{2, 1}),
		columnar.FromSlice("str", []string{"b", "a"}),
		testutil.Labels(t, 0, "b", "a"),
	}
	for _, col := range cols {
		t.Run(col.Name(), func(t *testing.T) {
			c, err := ForColumn(col)
			require.NoError(t, err)
			assert.Equal(t, Greater, c.Cmp(0, 1))
			assert.False(t, c.Eq(0, 1))
		})
	}
}

type fakeColumn struct{ columnar.AnyColumn }

func (fakeColumn) Name() string              { return "fake" }
func (fakeColumn) Type() columnar.ColumnType { return columnar.ColumnTypeUnknown }

func TestForColumnUnsupported(t *testing.T) {
	_, err := ForColumn(fakeColumn{})
	require.Error(t, err)
	assert.True(t, strataerrors.IsType(err, strataerrors.ErrorTypeCapability))
}

func TestCheckIndices(t *testing.T) {
	assert.NoError(t, CheckIndices(3))
	assert.NoError(t, CheckIndices(3, 0, 1, 2))

	err := CheckIndices(3, 0, 3)
	require.Error(t, err)
	assert.True(t, strataerrors.IsType(err, strataerrors.ErrorTypeOutOfRange))

	var serr *strataerrors.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 1, serr.Details["batch_position"])

	assert.Error(t, CheckIndices(3, -1))
	assert.Error(t, CheckIndices(0, 0))
}

package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/strata/pkg/columnar"
	"github.com/ajitpratap0/strata/pkg/strataerrors"
	"github.com/ajitpratap0/strata/pkg/testutil"
)

func TestPairComparatorAcrossLayouts(t *testing.T) {
	left := testutil.Nullable("l", 0, testutil.Ptr[int64](1), nil, testutil.Ptr[int64](5))
	right := testutil.Chunked[int64]("r", 2, 5, 1, 0, 9)

	c := NewPairComparator(left, right)
	assert.True(t, c.Eq(0, 1))
	assert.True(t, c.Eq(2, 0))
	assert.False(t, c.Eq(1, 2))
	assert.Equal(t, Less, c.Cmp(1, 2)) // null before 0
	assert.Equal(t, Greater, c.Cmp(0, 2))
	assert.Equal(t, Less, c.Cmp(2, 3))
	assert.Equal(t, Equal, c.Cmp(2, 0))
}

func TestPairComparatorMatchesSingleColumn(t *testing.T) {
	base := testutil.Nullable("x", 0,
		testutil.Ptr("b"), nil, testutil.Ptr("a"), testutil.Ptr("b"), nil, testutil.Ptr("c"))
	want := NewComparator(base)

	for l := 1; l <= base.Len(); l++ {
		for r := 1; r <= base.Len(); r++ {
			c := NewPairComparator(columnar.Rechunk(base, l), columnar.Rechunk(base, r))
			for i := 0; i < base.Len(); i++ {
				for j := 0; j < base.Len(); j++ {
					require.Equal(t, want.Eq(i, j), c.Eq(i, j), "chunks=%d/%d Eq(%d, %d)", l, r, i, j)
					require.Equal(t, want.Cmp(i, j), c.Cmp(i, j), "chunks=%d/%d Cmp(%d, %d)", l, r, i, j)
				}
			}
		}
	}
}

func TestCategoricalPairAcrossModes(t *testing.T) {
	cache := columnar.NewStringCache()
	left := testutil.Labels(t, 2, "x", "", "y")
	right := testutil.Labels(t, 0, "y", "w", "x", "").ToGlobal(cache)

	c := NewCategoricalPairComparator(left, right)
	assert.True(t, c.Eq(0, 2))
	assert.True(t, c.Eq(2, 0))
	assert.True(t, c.Eq(1, 3))
	assert.False(t, c.Eq(0, 0))
	assert.Equal(t, Less, c.Cmp(0, 0))
	assert.Equal(t, Greater, c.Cmp(0, 1))
	assert.Equal(t, Less, c.Cmp(1, 1))
}

func TestForColumns(t *testing.T) {
	left := columnar.FromSlice("a", []float64{1, 2})
	right := testutil.Chunked("b", 1, 2.0, 1.0)

	c, err := ForColumns(left, right)
	require.NoError(t, err)
	assert.True(t, c.Eq(0, 1))
	assert.Equal(t, Less, c.Cmp(0, 0))

	_, err = ForColumns(left, columnar.FromSlice("c", []int64{1}))
	require.Error(t, err)
	assert.True(t, strataerrors.IsType(err, strataerrors.ErrorTypeValidation))

	cats, err := ForColumns(testutil.Labels(t, 0, "a"), testutil.Labels(t, 0, "b", "a"))
	require.NoError(t, err)
	assert.True(t, cats.Eq(0, 1))
}

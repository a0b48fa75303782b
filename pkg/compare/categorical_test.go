package compare

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/strata/pkg/columnar"
	"github.com/ajitpratap0/strata/pkg/strataerrors"
	"github.com/ajitpratap0/strata/pkg/testutil"
)

func TestLocalCategorical(t *testing.T) {
	codes := columnar.FromSlice("codes", []uint32{0, 1, 0})
	cat, err := columnar.NewCategorical(codes, columnar.NewLocalRevMapping([]string{"a", "b"}))
	require.NoError(t, err)

	eq := NewCategoricalEqualityComparator(cat)
	ord := NewCategoricalOrderingComparator(cat)
	assert.True(t, eq.Eq(0, 2))
	assert.Equal(t, Less, ord.Cmp(0, 1))
	assert.False(t, eq.Eq(0, 1))
	assert.Equal(t, Greater, ord.Cmp(1, 2))
}

func TestCategoricalOrdersLexically(t *testing.T) {
	// Dictionary order disagrees with lexical order.
	codes := columnar.FromSlice("codes", []uint32{0, 1, 2})
	cat, err := columnar.NewCategorical(codes, columnar.NewLocalRevMapping([]string{"zebra", "apple", "mango"}))
	require.NoError(t, err)

	c := NewCategoricalComparator(cat)
	assert.Equal(t, Greater, c.Cmp(0, 1))
	assert.Equal(t, Less, c.Cmp(1, 2))
	assert.Equal(t, Greater, c.Cmp(0, 2))
}

func TestCategoricalNulls(t *testing.T) {
	cat := testutil.Labels(t, 2, "b", "", "a", "")
	c := NewCategoricalComparator(cat)

	assert.True(t, c.Eq(1, 3))
	assert.Equal(t, Equal, c.Cmp(1, 3))
	assert.Equal(t, Less, c.Cmp(1, 2))
	assert.Equal(t, Greater, c.Cmp(0, 3))
	assert.False(t, c.Eq(0, 1))
}

func TestLocalAndGlobalAgree(t *testing.T) {
	cache := columnar.NewStringCache()
	// Pre-intern so global ids and local codes diverge.
	for _, s := range []string{"q", "c", "x", "a"} {
		cache.Intern(s)
	}

	values := []string{"c", "a", "", "b", "c", "", "a", "d", "b"}
	for chunkSize := 0; chunkSize <= 4; chunkSize++ {
		local := testutil.Labels(t, chunkSize, values...)
		global := local.ToGlobal(cache)
		require.Equal(t, columnar.MappingGlobal, global.Mode())

		lc := NewCategoricalComparator(local)
		gc := NewCategoricalComparator(global)
		for i := range values {
			for j := range values {
				assert.Equal(t, lc.Eq(i, j), gc.Eq(i, j), "chunkSize=%d Eq(%d, %d)", chunkSize, i, j)
				assert.Equal(t, lc.Cmp(i, j), gc.Cmp(i, j), "chunkSize=%d Cmp(%d, %d)", chunkSize, i, j)
			}
		}
	}
}

func TestCategoricalLayoutIndependence(t *testing.T) {
	cache := columnar.NewStringCache()
	base := testutil.Labels(t, 0, "m", "", "k", "m", "z", "", "a").ToGlobal(cache)
	want := NewCategoricalComparator(base)

	for n := 1; n <= base.Len(); n++ {
		cat, err := columnar.NewCategorical(columnar.Rechunk(base.Codes(), n), base.RevMap())
		require.NoError(t, err)
		got := NewCategoricalComparator(cat)
		for i := 0; i < base.Len(); i++ {
			for j := 0; j < base.Len(); j++ {
				assert.Equal(t, want.Eq(i, j), got.Eq(i, j))
				assert.Equal(t, want.Cmp(i, j), got.Cmp(i, j))
			}
		}
	}
}

func TestGlobalMissingCodePanics(t *testing.T) {
	codes := columnar.FromSlice("codes", []uint32{7, 8})
	r := globalCategorical[present[uint32, flatValues[uint32]]]{
		codes:      present[uint32, flatValues[uint32]]{inner: newFlatValues(codes)},
		codeToSlot: map[uint32]uint32{7: 0},
		categories: []string{"seven"},
	}
	c := optionComparator[string, globalCategorical[present[uint32, flatValues[uint32]]]]{acc: r}

	assert.True(t, c.Eq(0, 0))

	defer func() {
		rec := recover()
		require.NotNil(t, rec)
		err, ok := rec.(*strataerrors.Error)
		require.True(t, ok, "panic value is %T", rec)
		assert.Equal(t, strataerrors.ErrorTypeInternal, err.Type)
		assert.Equal(t, uint32(8), err.Details["code"])
		assert.Equal(t, 1, err.Details["position"])
	}()
	c.Cmp(0, 1)
	t.Fatal("expected panic")
}

func TestNewCategoricalRejectsUnresolvedCodes(t *testing.T) {
	codes := columnar.FromSlice("codes", []uint32{0, 3})
	_, err := columnar.NewCategorical(codes, columnar.NewGlobalRevMapping(uuid.New(), map[uint32]uint32{0: 0}, []string{"a"}))
	require.Error(t, err)
	assert.True(t, strataerrors.IsType(err, strataerrors.ErrorTypeData))
}

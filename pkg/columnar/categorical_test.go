package columnar

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/strata/pkg/strataerrors"
)

func buildLabels(values ...string) *CategoricalBuilder {
	b := NewCategoricalBuilder("label", 2)
	for _, v := range values {
		if v == "" {
			b.AppendNull()
			continue
		}
		b.Append(v)
	}
	return b
}

func TestCategoricalBuilderLocal(t *testing.T) {
	cat := buildLabels("b", "a", "", "b").BuildLocal()

	assert.Equal(t, MappingLocal, cat.Mode())
	assert.Equal(t, []string{"b", "a"}, cat.RevMap().Categories())
	assert.Equal(t, 4, cat.Len())
	assert.Equal(t, 1, cat.NullCount())
	assert.Equal(t, LayoutMulti, cat.Layout())
	assert.Equal(t, ColumnTypeCategorical, cat.Type())

	s, ok, err := cat.Get(3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", s)

	_, ok, err = cat.Get(2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCategoricalToGlobalAndBack(t *testing.T) {
	cache := NewStringCache()
	cache.Intern("zzz") // shift ids so global codes differ from local ones

	local := buildLabels("x", "y", "", "x").BuildLocal()
	global := local.ToGlobal(cache)

	assert.Equal(t, MappingGlobal, global.Mode())
	assert.Equal(t, cache.ID(), global.RevMap().CacheID())
	code, ok, err := global.Codes().Get(0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint32(1), code)

	back := global.ToLocal()
	for i := 0; i < local.Len(); i++ {
		want, wantOK, _ := local.Get(i)
		viaGlobal, gOK, _ := global.Get(i)
		viaLocal, lOK, _ := back.Get(i)
		assert.Equal(t, wantOK, gOK)
		assert.Equal(t, wantOK, lOK)
		assert.Equal(t, want, viaGlobal)
		assert.Equal(t, want, viaLocal)
	}

	assert.Same(t, global, global.ToGlobal(cache))
	assert.Same(t, back, back.ToLocal())
}

func TestNewCategoricalRejectsUnresolvableCodes(t *testing.T) {
	codes := FromSlice("c", []uint32{0, 2})
	_, err := NewCategorical(codes, NewLocalRevMapping([]string{"a", "b"}))
	require.Error(t, err)
	assert.True(t, strataerrors.IsType(err, strataerrors.ErrorTypeData))

	cache := NewStringCache()
	_, err = NewCategorical(codes, NewGlobalRevMapping(cache.ID(), map[uint32]uint32{0: 0}, []string{"a"}))
	assert.Error(t, err)
}

func TestNewCategoricalIgnoresCodesUnderNulls(t *testing.T) {
	codes, err := FromOptions("c", []uint32{0, 99}, []bool{true, false})
	require.NoError(t, err)
	_, err = NewCategorical(codes, NewLocalRevMapping([]string{"a"}))
	assert.NoError(t, err)
}

func TestMergeGlobal(t *testing.T) {
	cache := NewStringCache()
	left := buildLabels("a", "b").BuildGlobal(cache)
	right := buildLabels("c", "b").BuildGlobal(cache)

	merged, err := MergeGlobal(left.RevMap(), right.RevMap())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, merged.Categories())

	rebound, err := right.WithRevMap(merged)
	require.NoError(t, err)
	s, _, _ := rebound.Get(0)
	assert.Equal(t, "c", s)

	other := buildLabels("a").BuildGlobal(NewStringCache())
	_, err = MergeGlobal(left.RevMap(), other.RevMap())
	assert.Error(t, err)

	_, err = MergeGlobal(left.RevMap(), buildLabels("a").BuildLocal().RevMap())
	assert.Error(t, err)
}

func TestMergeGlobalSkipsUnmappedSlots(t *testing.T) {
	id := uuid.New()
	a := NewGlobalRevMapping(id, map[uint32]uint32{5: 0}, []string{"five"})
	b := NewGlobalRevMapping(id, map[uint32]uint32{0: 1}, []string{"unused", "zero"})

	merged, err := MergeGlobal(a, b)
	require.NoError(t, err)
	s, ok := merged.Resolve(0)
	require.True(t, ok)
	assert.Equal(t, "zero", s)
	s, _ = merged.Resolve(5)
	assert.Equal(t, "five", s)
	assert.Equal(t, []string{"five", "zero"}, merged.Categories())
}

func TestMergeGlobalDuplicateCategories(t *testing.T) {
	cache := NewStringCache()
	z := buildLabels("z").BuildGlobal(cache) // interns "z" as id 0

	codes := FromSlice("dup", []uint32{0, 1})
	local, err := NewCategorical(codes, NewLocalRevMapping([]string{"a", "a"}))
	require.NoError(t, err)
	dup := local.ToGlobal(cache)

	for _, pair := range [][2]*RevMapping{{z.RevMap(), dup.RevMap()}, {dup.RevMap(), z.RevMap()}} {
		merged, err := MergeGlobal(pair[0], pair[1])
		require.NoError(t, err)
		s, _ := merged.Resolve(cache.Intern("z"))
		assert.Equal(t, "z", s)
		s, _ = merged.Resolve(cache.Intern("a"))
		assert.Equal(t, "a", s)
	}
}

func TestMergeGlobalRejectsDanglingSlot(t *testing.T) {
	id := uuid.New()
	a := NewGlobalRevMapping(id, map[uint32]uint32{}, nil)
	b := NewGlobalRevMapping(id, map[uint32]uint32{3: 7}, []string{"x"})

	_, err := MergeGlobal(a, b)
	require.Error(t, err)
	assert.True(t, strataerrors.IsType(err, strataerrors.ErrorTypeData))
}

func TestUnify(t *testing.T) {
	cache := NewStringCache()
	left := buildLabels("b", "a").BuildGlobal(cache)
	right := buildLabels("c", "b").BuildGlobal(cache)

	l, r, ok, err := Unify(left, right)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Same(t, l.RevMap(), r.RevMap())
	for i, want := range []string{"b", "a"} {
		s, _, _ := l.Get(i)
		assert.Equal(t, want, s)
	}
	for i, want := range []string{"c", "b"} {
		s, _, _ := r.Get(i)
		assert.Equal(t, want, s)
	}

	localLeft := buildLabels("a").BuildLocal()
	l, r, ok, err = Unify(localLeft, right)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Same(t, localLeft, l)
	assert.Same(t, right, r)
}

func TestStringCacheIntern(t *testing.T) {
	cache := NewStringCache()
	a := cache.Intern("a")
	b := cache.Intern("b")
	assert.Equal(t, a, cache.Intern("a"))
	assert.NotEqual(t, a, b)

	s, ok := cache.Lookup(b)
	assert.True(t, ok)
	assert.Equal(t, "b", s)
	_, ok = cache.Lookup(42)
	assert.False(t, ok)

	size, hits, misses := cache.Stats()
	assert.Equal(t, int64(2), size)
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(2), misses)
	assert.NotEqual(t, cache.ID(), GlobalStringCache().ID())
}

package testutil

import (
	"cmp"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/strata/pkg/columnar"
)

// Nullable builds a column from optional values; a nil entry is null.
// chunkSize <= 0 builds a single chunk.
func Nullable[T cmp.Ordered](name string, chunkSize int, values ...*T) *columnar.Column[T] {
	b := columnar.NewBuilder[T](name, chunkSize)
	for _, v := range values {
		if v == nil {
			b.AppendNull()
			continue
		}
		b.Append(*v)
	}
	return b.Build()
}

// Ptr returns a pointer to v, for Nullable literals.
func Ptr[T any](v T) *T { return &v }

// Chunked builds a non-null column cut into chunks of chunkSize.
func Chunked[T cmp.Ordered](name string, chunkSize int, values ...T) *columnar.Column[T] {
	b := columnar.NewBuilder[T](name, chunkSize)
	for _, v := range values {
		b.Append(v)
	}
	return b.Build()
}

// Labels builds a categorical column in Local mode; "" is null.
func Labels(t *testing.T, chunkSize int, values ...string) *columnar.Categorical {
	t.Helper()
	b := columnar.NewCategoricalBuilder("label", chunkSize)
	for _, v := range values {
		b.AppendOption(v, v != "")
	}
	cat := b.BuildLocal()
	require.Equal(t, len(values), cat.Len())
	return cat
}

// RandomInt64s returns n values drawn from [0, distinct) with roughly
// nullRate of them null, cut into chunks of chunkSize. The seed makes the
// data reproducible.
func RandomInt64s(seed int64, n, distinct, chunkSize int, nullRate float64) *columnar.Column[int64] {
	r := rand.New(rand.NewSource(seed)) //nolint:gosec // test data
	b := columnar.NewBuilder[int64]("random", chunkSize)
	for i := 0; i < n; i++ {
		if r.Float64() < nullRate {
			b.AppendNull()
			continue
		}
		b.Append(r.Int63n(int64(distinct)))
	}
	return b.Build()
}

// Values reads every position of col through the checked accessor, nil for
// nulls.
func Values[T cmp.Ordered](t *testing.T, col *columnar.Column[T]) []*T {
	t.Helper()
	out := make([]*T, col.Len())
	for i := range out {
		v, ok, err := col.Get(i)
		require.NoError(t, err)
		if ok {
			out[i] = Ptr(v)
		}
	}
	return out
}

package compare

import (
	"cmp"

	"github.com/bits-and-blooms/bitset"

	"github.com/ajitpratap0/strata/pkg/columnar"
)

// accessor returns the logical element at idx for one physical layout.
// get is unchecked: idx must be < the column length.
type accessor[I any] interface {
	get(idx int) I
}

// flatValues reads a single chunk without nulls.
type flatValues[T cmp.Ordered] struct {
	values []T
}

func (a flatValues[T]) get(idx int) T { return a.values[idx] }

// flatOptions reads a single chunk with a null mask.
type flatOptions[T cmp.Ordered] struct {
	values   []T
	validity *bitset.BitSet
}

func (a flatOptions[T]) get(idx int) Option[T] {
	if !a.validity.Test(uint(idx)) {
		return Option[T]{}
	}
	return Option[T]{Value: a.values[idx], Valid: true}
}

// chunkedValues reads several chunks without nulls.
type chunkedValues[T cmp.Ordered] struct {
	chunks  [][]T
	offsets []int
}

func (a chunkedValues[T]) get(idx int) T {
	k := columnar.ChunkIndex(a.offsets, idx)
	return a.chunks[k][idx-a.offsets[k]]
}

// chunkedOptions reads several chunks where some carry a null mask. Chunks
// without nulls have a nil mask.
type chunkedOptions[T cmp.Ordered] struct {
	chunks   [][]T
	validity []*bitset.BitSet
	offsets  []int
}

func (a chunkedOptions[T]) get(idx int) Option[T] {
	k := columnar.ChunkIndex(a.offsets, idx)
	off := idx - a.offsets[k]
	if mask := a.validity[k]; mask != nil && !mask.Test(uint(off)) {
		return Option[T]{}
	}
	return Option[T]{Value: a.chunks[k][off], Valid: true}
}

// present lifts a non-null accessor to Option items, for places that need a
// single item type across layouts.
type present[T cmp.Ordered, A accessor[T]] struct {
	inner A
}

func (a present[T, A]) get(idx int) Option[T] {
	return Option[T]{Value: a.inner.get(idx), Valid: true}
}

func newFlatValues[T cmp.Ordered](c *columnar.Column[T]) flatValues[T] {
	return flatValues[T]{values: c.Chunks()[0].Values()}
}

func newFlatOptions[T cmp.Ordered](c *columnar.Column[T]) flatOptions[T] {
	ch := c.Chunks()[0]
	return flatOptions[T]{values: ch.Values(), validity: ch.Validity()}
}

func newChunkedValues[T cmp.Ordered](c *columnar.Column[T]) chunkedValues[T] {
	chunks := make([][]T, c.NumChunks())
	for k, ch := range c.Chunks() {
		chunks[k] = ch.Values()
	}
	return chunkedValues[T]{chunks: chunks, offsets: c.Offsets()}
}

func newChunkedOptions[T cmp.Ordered](c *columnar.Column[T]) chunkedOptions[T] {
	chunks := make([][]T, c.NumChunks())
	validity := make([]*bitset.BitSet, c.NumChunks())
	for k, ch := range c.Chunks() {
		chunks[k] = ch.Values()
		validity[k] = ch.Validity()
	}
	return chunkedOptions[T]{chunks: chunks, validity: validity, offsets: c.Offsets()}
}

package columnar

import (
	"cmp"

	"github.com/bits-and-blooms/bitset"

	"github.com/ajitpratap0/strata/pkg/strataerrors"
)

// Chunk is one contiguous physical segment of a column.
type Chunk[T cmp.Ordered] struct {
	values   []T
	validity *bitset.BitSet // nil when the chunk has no nulls
	nulls    int
}

// NewChunk creates a chunk over values. A nil validity means every value is
// present; otherwise validity must have exactly len(values) bits, with a set
// bit marking a present value. Masks without cleared bits are dropped.
func NewChunk[T cmp.Ordered](values []T, validity *bitset.BitSet) (Chunk[T], error) {
	if validity == nil {
		return Chunk[T]{values: values}, nil
	}
	if validity.Len() != uint(len(values)) {
		return Chunk[T]{}, strataerrors.New(strataerrors.ErrorTypeValidation, "validity mask length mismatch").
			WithDetail("values", len(values)).
			WithDetail("validity", validity.Len())
	}

	nulls := len(values) - int(validity.Count())
	if nulls == 0 {
		validity = nil
	}
	return Chunk[T]{values: values, validity: validity, nulls: nulls}, nil
}

// Len returns the number of positions in the chunk.
func (c Chunk[T]) Len() int { return len(c.values) }

// Values returns the chunk's backing slice. Positions masked as null hold an
// unspecified value. The slice must not be modified.
func (c Chunk[T]) Values() []T { return c.values }

// Validity returns the chunk's mask, or nil when the chunk has no nulls.
func (c Chunk[T]) Validity() *bitset.BitSet { return c.validity }

// NullCount returns the number of null positions in the chunk.
func (c Chunk[T]) NullCount() int { return c.nulls }

// IsValid reports whether position i holds a value. Unchecked.
func (c Chunk[T]) IsValid(i int) bool {
	return c.validity == nil || c.validity.Test(uint(i))
}

// Column is an immutable, possibly chunked, possibly nullable sequence of T.
type Column[T cmp.Ordered] struct {
	name    string
	chunks  []Chunk[T]
	offsets []int // offsets[k] is the logical start of chunk k; last entry is Len()
	nulls   int
	layout  Layout
}

// NewColumn assembles a column from chunks. Empty chunks are kept only when
// they are the sole chunk, so a zero-length column still has one chunk.
func NewColumn[T cmp.Ordered](name string, chunks ...Chunk[T]) *Column[T] {
	kept := make([]Chunk[T], 0, len(chunks))
	for _, ch := range chunks {
		if ch.Len() > 0 {
			kept = append(kept, ch)
		}
	}
	if len(kept) == 0 {
		kept = append(kept, Chunk[T]{})
	}

	col := &Column[T]{
		name:    name,
		chunks:  kept,
		offsets: make([]int, len(kept)+1),
	}
	for k, ch := range kept {
		col.offsets[k+1] = col.offsets[k] + ch.Len()
		col.nulls += ch.nulls
	}
	col.layout = classify(len(kept), col.nulls)
	return col
}

// FromSlice creates a single-chunk, non-null column over values without copying.
func FromSlice[T cmp.Ordered](name string, values []T) *Column[T] {
	return NewColumn(name, Chunk[T]{values: values})
}

// FromOptions creates a single-chunk column where valid[i] == false marks a null.
func FromOptions[T cmp.Ordered](name string, values []T, valid []bool) (*Column[T], error) {
	if len(values) != len(valid) {
		return nil, strataerrors.New(strataerrors.ErrorTypeValidation, "values and validity differ in length").
			WithDetail("values", len(values)).
			WithDetail("valid", len(valid))
	}
	ch, err := NewChunk(values, maskFromBools(valid))
	if err != nil {
		return nil, err
	}
	return NewColumn(name, ch), nil
}

func maskFromBools(valid []bool) *bitset.BitSet {
	mask := bitset.New(uint(len(valid)))
	for i, ok := range valid {
		if ok {
			mask.Set(uint(i))
		}
	}
	return mask
}

func (c *Column[T]) Name() string       { return c.name }
func (c *Column[T]) Type() ColumnType   { return TypeOf[T]() }
func (c *Column[T]) Len() int           { return c.offsets[len(c.offsets)-1] }
func (c *Column[T]) NullCount() int     { return c.nulls }
func (c *Column[T]) NumChunks() int     { return len(c.chunks) }
func (c *Column[T]) Layout() Layout     { return c.layout }
func (c *Column[T]) Chunks() []Chunk[T] { return c.chunks }

// Offsets returns the logical start of every chunk followed by Len().
func (c *Column[T]) Offsets() []int { return c.offsets }

// Locate maps a logical position to (chunk, offset within chunk). Unchecked.
func (c *Column[T]) Locate(idx int) (int, int) {
	k := ChunkIndex(c.offsets, idx)
	return k, idx - c.offsets[k]
}

// IsNull reports whether position idx is null. Unchecked.
func (c *Column[T]) IsNull(idx int) bool {
	if c.nulls == 0 {
		return false
	}
	k, off := c.Locate(idx)
	return !c.chunks[k].IsValid(off)
}

// Get is the bounds-checked accessor. It returns the value at idx and whether
// it is present.
func (c *Column[T]) Get(idx int) (T, bool, error) {
	var zero T
	if idx < 0 || idx >= c.Len() {
		return zero, false, strataerrors.Newf(strataerrors.ErrorTypeOutOfRange, "index %d out of range [0, %d)", idx, c.Len()).
			WithDetail("column", c.name)
	}
	k, off := c.Locate(idx)
	ch := c.chunks[k]
	if !ch.IsValid(off) {
		return zero, false, nil
	}
	return ch.values[off], true, nil
}

// ChunkIndex returns the chunk holding logical position idx given cumulative
// chunk offsets as produced by Column.Offsets. Unchecked.
func ChunkIndex(offsets []int, idx int) int {
	lo, hi := 0, len(offsets)-2
	for lo < hi {
		mid := int(uint(lo+hi+1) >> 1)
		if offsets[mid] <= idx {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// Builder appends values into a column, cutting a new chunk every chunkSize
// positions. A chunkSize <= 0 builds a single chunk.
type Builder[T cmp.Ordered] struct {
	name      string
	chunkSize int
	values    []T
	valid     []bool
	hasNull   bool
	chunks    []Chunk[T]
}

// NewBuilder creates a new column builder
func NewBuilder[T cmp.Ordered](name string, chunkSize int) *Builder[T] {
	capacity := chunkSize
	if capacity <= 0 {
		capacity = 1024
	}
	return &Builder[T]{
		name:      name,
		chunkSize: chunkSize,
		values:    make([]T, 0, capacity),
		valid:     make([]bool, 0, capacity),
	}
}

// Append adds a present value.
func (b *Builder[T]) Append(v T) {
	b.values = append(b.values, v)
	b.valid = append(b.valid, true)
	b.maybeCut()
}

// AppendNull adds a null position.
func (b *Builder[T]) AppendNull() {
	var zero T
	b.values = append(b.values, zero)
	b.valid = append(b.valid, false)
	b.hasNull = true
	b.maybeCut()
}

// AppendOption adds v when ok, a null otherwise.
func (b *Builder[T]) AppendOption(v T, ok bool) {
	if ok {
		b.Append(v)
		return
	}
	b.AppendNull()
}

// Len returns the number of positions appended so far.
func (b *Builder[T]) Len() int {
	n := len(b.values)
	for _, ch := range b.chunks {
		n += ch.Len()
	}
	return n
}

// Flush closes the current chunk early, even when it is not full.
func (b *Builder[T]) Flush() {
	if len(b.values) == 0 {
		return
	}
	ch := Chunk[T]{values: b.values}
	if b.hasNull {
		// Lengths agree by construction.
		ch, _ = NewChunk(b.values, maskFromBools(b.valid))
	}
	b.chunks = append(b.chunks, ch)

	capacity := b.chunkSize
	if capacity <= 0 {
		capacity = 1024
	}
	b.values = make([]T, 0, capacity)
	b.valid = make([]bool, 0, capacity)
	b.hasNull = false
}

func (b *Builder[T]) maybeCut() {
	if b.chunkSize > 0 && len(b.values) >= b.chunkSize {
		b.Flush()
	}
}

// Build returns the immutable column. The builder is reset and can be reused.
func (b *Builder[T]) Build() *Column[T] {
	b.Flush()
	col := NewColumn(b.name, b.chunks...)
	b.chunks = nil
	return col
}

// Rechunk copies a column into n chunks of near-equal length while keeping
// every logical value and null position. n is clamped to [1, Len()].
func Rechunk[T cmp.Ordered](c *Column[T], n int) *Column[T] {
	total := c.Len()
	if n > total {
		n = total
	}
	if n < 1 {
		n = 1
	}

	chunks := make([]Chunk[T], 0, n)
	pos := 0
	for k := 0; k < n; k++ {
		size := total / n
		if k < total%n {
			size++
		}
		values := make([]T, size)
		valid := make([]bool, size)
		hasNull := false
		for i := 0; i < size; i++ {
			ck, off := c.Locate(pos + i)
			src := c.chunks[ck]
			values[i] = src.values[off]
			valid[i] = src.IsValid(off)
			hasNull = hasNull || !valid[i]
		}
		ch := Chunk[T]{values: values}
		if hasNull {
			ch, _ = NewChunk(values, maskFromBools(valid))
		}
		chunks = append(chunks, ch)
		pos += size
	}
	return NewColumn(c.name, chunks...)
}

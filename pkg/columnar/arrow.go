package columnar

import (
	"cmp"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/bits-and-blooms/bitset"

	"github.com/ajitpratap0/strata/pkg/strataerrors"
)

// FromArrow converts an Arrow chunked array into a column with one chunk per
// non-empty Arrow chunk. Numeric values are borrowed from the Arrow buffers,
// so the Arrow data must stay retained while the column is in use.
func FromArrow[T cmp.Ordered](name string, chunked *arrow.Chunked) (*Column[T], error) {
	return FromArrowArrays[T](name, chunked.Chunks()...)
}

// FromArrowArrays is FromArrow over loose arrays.
func FromArrowArrays[T cmp.Ordered](name string, arrs ...arrow.Array) (*Column[T], error) {
	chunks := make([]Chunk[T], 0, len(arrs))
	for _, arr := range arrs {
		ch, err := chunkFromArrow[T](arr)
		if err != nil {
			return nil, strataerrors.Wrap(err, strataerrors.ErrorTypeCapability, "failed to convert arrow chunk").
				WithDetail("column", name)
		}
		chunks = append(chunks, ch)
	}
	return NewColumn(name, chunks...), nil
}

func chunkFromArrow[T cmp.Ordered](arr arrow.Array) (Chunk[T], error) {
	var (
		values any
		ok     bool
		out    []T
	)

	switch a := arr.(type) {
	case *array.Int32:
		values = a.Int32Values()
	case *array.Int64:
		values = a.Int64Values()
	case *array.Uint32:
		values = a.Uint32Values()
	case *array.Uint64:
		values = a.Uint64Values()
	case *array.Float32:
		values = a.Float32Values()
	case *array.Float64:
		values = a.Float64Values()
	case *array.String:
		strs := make([]string, a.Len())
		for i := range strs {
			if a.IsValid(i) {
				strs[i] = a.Value(i)
			}
		}
		values = strs
	case *array.LargeString:
		strs := make([]string, a.Len())
		for i := range strs {
			if a.IsValid(i) {
				strs[i] = a.Value(i)
			}
		}
		values = strs
	default:
		return Chunk[T]{}, fmt.Errorf("unsupported arrow type %s", arr.DataType())
	}

	if out, ok = values.([]T); !ok {
		return Chunk[T]{}, fmt.Errorf("arrow type %s does not match column type %s", arr.DataType(), TypeOf[T]())
	}
	return NewChunk(out, validityFromArrow(arr))
}

func validityFromArrow(arr arrow.Array) *bitset.BitSet {
	if arr.NullN() == 0 {
		return nil
	}
	mask := bitset.New(uint(arr.Len()))
	for i := 0; i < arr.Len(); i++ {
		if arr.IsValid(i) {
			mask.Set(uint(i))
		}
	}
	return mask
}

// CategoricalFromArrow dictionary-encodes an Arrow string or dictionary
// chunked array into a Local categorical, keeping Arrow chunk boundaries.
// Dictionaries that differ between chunks are unified.
func CategoricalFromArrow(name string, chunked *arrow.Chunked) (*Categorical, error) {
	b := NewCategoricalBuilder(name, 0)
	for _, arr := range chunked.Chunks() {
		if arr.Len() == 0 {
			continue
		}
		switch a := arr.(type) {
		case *array.Dictionary:
			dict, ok := a.Dictionary().(*array.String)
			if !ok {
				return nil, strataerrors.Newf(strataerrors.ErrorTypeCapability, "unsupported dictionary value type %s", a.Dictionary().DataType()).
					WithDetail("column", name)
			}
			for i := 0; i < a.Len(); i++ {
				if a.IsNull(i) {
					b.AppendNull()
					continue
				}
				b.Append(dict.Value(a.GetValueIndex(i)))
			}
		case *array.String:
			for i := 0; i < a.Len(); i++ {
				b.AppendOption(a.Value(i), a.IsValid(i))
			}
		default:
			return nil, strataerrors.Newf(strataerrors.ErrorTypeCapability, "cannot encode arrow type %s as categorical", arr.DataType()).
				WithDetail("column", name)
		}
		b.Flush()
	}
	return b.BuildLocal(), nil
}

// ToArrow copies a column into an Arrow chunked array, one Arrow chunk per
// column chunk. The caller owns the result and must Release it.
func ToArrow[T cmp.Ordered](c *Column[T], mem memory.Allocator) (*arrow.Chunked, error) {
	arrs := make([]arrow.Array, 0, len(c.chunks))
	release := func() {
		for _, a := range arrs {
			a.Release()
		}
	}

	var dtype arrow.DataType
	for _, ch := range c.chunks {
		arr, dt, err := chunkToArrow(ch, mem)
		if err != nil {
			release()
			return nil, strataerrors.Wrap(err, strataerrors.ErrorTypeCapability, "failed to convert chunk to arrow").
				WithDetail("column", c.name)
		}
		dtype = dt
		arrs = append(arrs, arr)
	}

	chunked := arrow.NewChunked(dtype, arrs)
	// NewChunked retains every chunk.
	release()
	return chunked, nil
}

func chunkToArrow[T cmp.Ordered](ch Chunk[T], mem memory.Allocator) (arrow.Array, arrow.DataType, error) {
	var valid []bool
	if ch.validity != nil {
		valid = make([]bool, ch.Len())
		for i := range valid {
			valid[i] = ch.validity.Test(uint(i))
		}
	}

	switch values := any(ch.values).(type) {
	case []int64:
		b := array.NewInt64Builder(mem)
		defer b.Release()
		b.AppendValues(values, valid)
		return b.NewInt64Array(), arrow.PrimitiveTypes.Int64, nil
	case []int32:
		b := array.NewInt32Builder(mem)
		defer b.Release()
		b.AppendValues(values, valid)
		return b.NewInt32Array(), arrow.PrimitiveTypes.Int32, nil
	case []uint32:
		b := array.NewUint32Builder(mem)
		defer b.Release()
		b.AppendValues(values, valid)
		return b.NewUint32Array(), arrow.PrimitiveTypes.Uint32, nil
	case []uint64:
		b := array.NewUint64Builder(mem)
		defer b.Release()
		b.AppendValues(values, valid)
		return b.NewUint64Array(), arrow.PrimitiveTypes.Uint64, nil
	case []float32:
		b := array.NewFloat32Builder(mem)
		defer b.Release()
		b.AppendValues(values, valid)
		return b.NewFloat32Array(), arrow.PrimitiveTypes.Float32, nil
	case []float64:
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		b.AppendValues(values, valid)
		return b.NewFloat64Array(), arrow.PrimitiveTypes.Float64, nil
	case []string:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		b.AppendValues(values, valid)
		return b.NewStringArray(), arrow.BinaryTypes.String, nil
	default:
		return nil, nil, fmt.Errorf("unsupported column type %s", TypeOf[T]())
	}
}

package columnar

import (
	"cmp"
)

// ColumnType represents the physical type of a column
type ColumnType int

const (
	ColumnTypeUnknown ColumnType = iota
	ColumnTypeString
	ColumnTypeInt32
	ColumnTypeInt64
	ColumnTypeUint32
	ColumnTypeUint64
	ColumnTypeFloat32
	ColumnTypeFloat64
	ColumnTypeCategorical
)

func (t ColumnType) String() string {
	switch t {
	case ColumnTypeString:
		return "string"
	case ColumnTypeInt32:
		return "int32"
	case ColumnTypeInt64:
		return "int64"
	case ColumnTypeUint32:
		return "uint32"
	case ColumnTypeUint64:
		return "uint64"
	case ColumnTypeFloat32:
		return "float32"
	case ColumnTypeFloat64:
		return "float64"
	case ColumnTypeCategorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// TypeOf returns the ColumnType backing a Column[T].
func TypeOf[T cmp.Ordered]() ColumnType {
	var zero T
	switch any(zero).(type) {
	case string:
		return ColumnTypeString
	case int32:
		return ColumnTypeInt32
	case int64:
		return ColumnTypeInt64
	case uint32:
		return ColumnTypeUint32
	case uint64:
		return ColumnTypeUint64
	case float32:
		return ColumnTypeFloat32
	case float64:
		return ColumnTypeFloat64
	default:
		return ColumnTypeUnknown
	}
}

// Layout classifies a column by chunk count and null presence.
type Layout int

const (
	// LayoutSingleNoNull is one chunk without nulls
	LayoutSingleNoNull Layout = iota
	// LayoutSingle is one chunk with nulls
	LayoutSingle
	// LayoutMultiNoNull is several chunks without nulls
	LayoutMultiNoNull
	// LayoutMulti is several chunks with nulls
	LayoutMulti
)

func classify(chunks int, nulls int) Layout {
	switch {
	case chunks == 1 && nulls == 0:
		return LayoutSingleNoNull
	case chunks == 1:
		return LayoutSingle
	case nulls == 0:
		return LayoutMultiNoNull
	default:
		return LayoutMulti
	}
}

// Chunked reports whether the layout spans more than one chunk.
func (l Layout) Chunked() bool { return l == LayoutMultiNoNull || l == LayoutMulti }

// Nullable reports whether the layout carries a null mask.
func (l Layout) Nullable() bool { return l == LayoutSingle || l == LayoutMulti }

func (l Layout) String() string {
	switch l {
	case LayoutSingleNoNull:
		return "single_no_null"
	case LayoutSingle:
		return "single"
	case LayoutMultiNoNull:
		return "multi_no_null"
	case LayoutMulti:
		return "multi"
	default:
		return "unknown"
	}
}

// AnyColumn is the type-erased view of a column that tables and dtype-generic
// consumers work with.
type AnyColumn interface {
	Name() string
	Type() ColumnType
	Len() int
	NullCount() int
	NumChunks() int
	Layout() Layout
	// IsNull is unchecked: idx must be < Len().
	IsNull(idx int) bool
}

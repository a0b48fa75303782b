// Package columnar implements the typed, chunked column storage that strata's
// comparators borrow.
//
// # Overview
//
// A Column[T] is a logical, ordered sequence of values split into one or more
// physical chunks. Each chunk owns a contiguous slice of values and, when it
// holds nulls, a validity mask (bit set = value present). Columns are
// immutable once built: the Builder is the only way to append, and Build
// hands out a column that never changes again. That immutability is the read
// guard the comparison layer relies on.
//
// # Layout
//
// Every column classifies into exactly one Layout, computed from two facts:
// chunk count (one or many) and null presence.
//
//	LayoutSingleNoNull  one chunk, no nulls
//	LayoutSingle        one chunk, nulls present
//	LayoutMultiNoNull   many chunks, no nulls
//	LayoutMulti         many chunks, nulls present
//
// # Categoricals
//
// A Categorical is a Column[uint32] of codes plus a RevMapping that turns a
// code back into its string. Local mappings index a per-column dictionary
// directly. Global mappings translate codes (ids handed out by a StringCache)
// through a code→slot table into a dictionary shared by every column built
// against the same mapping.
//
// # Usage Example
//
//	b := columnar.NewBuilder[float64]("score", 4096)
//	b.Append(1.5)
//	b.AppendNull()
//	col := b.Build()
//
//	switch col.Layout() {
//	case columnar.LayoutSingle:
//		// one chunk with a validity mask
//	}
//
// Arrow interop:
//
//	col, err := columnar.FromArrow[int64]("id", chunked)
//	out, err := columnar.ToArrow(col, memory.NewGoAllocator())
package columnar

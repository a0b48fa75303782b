package compare

import (
	"cmp"

	"go.uber.org/zap"

	"github.com/ajitpratap0/strata/pkg/columnar"
	"github.com/ajitpratap0/strata/pkg/logger"
	"github.com/ajitpratap0/strata/pkg/metrics"
)

// EqualityComparator answers whether two positions hold equal elements.
// Positions are unchecked and must be < Len() of the bound column.
type EqualityComparator interface {
	Eq(a, b int) bool
}

// OrderingComparator orders two positions. Positions are unchecked and must
// be < Len() of the bound column.
type OrderingComparator interface {
	Cmp(a, b int) Ordering
}

// Comparator is both. Every comparator built by this package implements it;
// the narrower constructors only narrow the static type.
type Comparator interface {
	EqualityComparator
	OrderingComparator
}

// Comparator kinds, used as the metrics label.
const (
	KindEquality    = "equality"
	KindOrdering    = "ordering"
	KindComparator  = "comparator"
	KindCategorical = "categorical"
	KindPair        = "pair"
)

// valueComparator compares plain items of a non-nullable layout.
type valueComparator[T cmp.Ordered, A accessor[T]] struct {
	acc A
}

func (c valueComparator[T, A]) Eq(a, b int) bool {
	return c.acc.get(a) == c.acc.get(b)
}

func (c valueComparator[T, A]) Cmp(a, b int) Ordering {
	return orderValues(c.acc.get(a), c.acc.get(b))
}

// optionComparator compares Option items of a nullable layout or a resolver.
type optionComparator[T cmp.Ordered, A accessor[Option[T]]] struct {
	acc A
}

func (c optionComparator[T, A]) Eq(a, b int) bool {
	return equalOptions(c.acc.get(a), c.acc.get(b))
}

func (c optionComparator[T, A]) Cmp(a, b int) Ordering {
	return orderOptions(c.acc.get(a), c.acc.get(b))
}

// NewComparator builds a comparator over col, choosing the accessor from the
// column layout once.
func NewComparator[T cmp.Ordered](col *columnar.Column[T]) Comparator {
	observe(KindComparator, col)
	return dispatch(col)
}

// NewEqualityComparator builds an equality comparator over col.
func NewEqualityComparator[T cmp.Ordered](col *columnar.Column[T]) EqualityComparator {
	observe(KindEquality, col)
	return dispatch(col)
}

// NewOrderingComparator builds an ordering comparator over col.
//
// Null orders before every present value. An unordered pair (NaN involved) is
// decided by the left operand: NaN on the left is Less, otherwise Greater.
// Cmp(i, i) is therefore Less when position i holds NaN.
func NewOrderingComparator[T cmp.Ordered](col *columnar.Column[T]) OrderingComparator {
	observe(KindOrdering, col)
	return dispatch(col)
}

func dispatch[T cmp.Ordered](col *columnar.Column[T]) Comparator {
	switch col.Layout() {
	case columnar.LayoutSingleNoNull:
		return valueComparator[T, flatValues[T]]{acc: newFlatValues(col)}
	case columnar.LayoutSingle:
		return optionComparator[T, flatOptions[T]]{acc: newFlatOptions(col)}
	case columnar.LayoutMultiNoNull:
		return valueComparator[T, chunkedValues[T]]{acc: newChunkedValues(col)}
	default:
		return optionComparator[T, chunkedOptions[T]]{acc: newChunkedOptions(col)}
	}
}

// optionAccessor is dispatch for callers that need one item type across
// layouts. Non-nullable layouts are lifted with present.
func optionAccessor[T cmp.Ordered](col *columnar.Column[T]) accessor[Option[T]] {
	switch col.Layout() {
	case columnar.LayoutSingleNoNull:
		return present[T, flatValues[T]]{inner: newFlatValues(col)}
	case columnar.LayoutSingle:
		return newFlatOptions(col)
	case columnar.LayoutMultiNoNull:
		return present[T, chunkedValues[T]]{inner: newChunkedValues(col)}
	default:
		return newChunkedOptions(col)
	}
}

func observe(kind string, col columnar.AnyColumn) {
	metrics.ObserveComparator(kind, col.Layout().String())
	if ce := logger.Get().Check(zap.DebugLevel, "comparator built"); ce != nil {
		ce.Write(
			zap.String("kind", kind),
			zap.String("column", col.Name()),
			zap.Stringer("type", col.Type()),
			zap.Stringer("layout", col.Layout()),
			zap.Int("chunks", col.NumChunks()),
			zap.Int("rows", col.Len()),
		)
	}
}

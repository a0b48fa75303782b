package compare

import (
	"cmp"

	"go.uber.org/zap"

	"github.com/ajitpratap0/strata/pkg/columnar"
	"github.com/ajitpratap0/strata/pkg/logger"
	"github.com/ajitpratap0/strata/pkg/metrics"
)

// pairComparator compares a position of the left column with a position of
// the right column. Both sides read Option items so nullable and
// non-nullable columns can be mixed.
type pairComparator[T cmp.Ordered, L accessor[Option[T]], R accessor[Option[T]]] struct {
	left  L
	right R
}

func (c pairComparator[T, L, R]) Eq(a, b int) bool {
	return equalOptions(c.left.get(a), c.right.get(b))
}

func (c pairComparator[T, L, R]) Cmp(a, b int) Ordering {
	return orderOptions(c.left.get(a), c.right.get(b))
}

// NewPairComparator builds a comparator where Eq(a, b) and Cmp(a, b) take a
// from left and b from right. The two columns may differ in layout and
// length; a must be < left.Len() and b < right.Len().
func NewPairComparator[T cmp.Ordered](left, right *columnar.Column[T]) Comparator {
	observePair(left, right)
	return dispatchPairLeft(left, right)
}

// NewPairEqualityComparator builds a cross-column equality comparator.
func NewPairEqualityComparator[T cmp.Ordered](left, right *columnar.Column[T]) EqualityComparator {
	return NewPairComparator(left, right)
}

// NewPairOrderingComparator builds a cross-column ordering comparator.
func NewPairOrderingComparator[T cmp.Ordered](left, right *columnar.Column[T]) OrderingComparator {
	return NewPairComparator(left, right)
}

func dispatchPairLeft[T cmp.Ordered](left, right *columnar.Column[T]) Comparator {
	switch left.Layout() {
	case columnar.LayoutSingleNoNull:
		return dispatchPairRight(present[T, flatValues[T]]{inner: newFlatValues(left)}, right)
	case columnar.LayoutSingle:
		return dispatchPairRight(newFlatOptions(left), right)
	case columnar.LayoutMultiNoNull:
		return dispatchPairRight(present[T, chunkedValues[T]]{inner: newChunkedValues(left)}, right)
	default:
		return dispatchPairRight(newChunkedOptions(left), right)
	}
}

func dispatchPairRight[T cmp.Ordered, L accessor[Option[T]]](left L, right *columnar.Column[T]) Comparator {
	switch right.Layout() {
	case columnar.LayoutSingleNoNull:
		return pairComparator[T, L, present[T, flatValues[T]]]{
			left:  left,
			right: present[T, flatValues[T]]{inner: newFlatValues(right)},
		}
	case columnar.LayoutSingle:
		return pairComparator[T, L, flatOptions[T]]{left: left, right: newFlatOptions(right)}
	case columnar.LayoutMultiNoNull:
		return pairComparator[T, L, present[T, chunkedValues[T]]]{
			left:  left,
			right: present[T, chunkedValues[T]]{inner: newChunkedValues(right)},
		}
	default:
		return pairComparator[T, L, chunkedOptions[T]]{left: left, right: newChunkedOptions(right)}
	}
}

// NewCategoricalPairComparator compares resolved strings across two
// categorical columns. The columns may use different mapping modes.
func NewCategoricalPairComparator(left, right *columnar.Categorical) Comparator {
	observePair(left, right)
	return pairComparator[string, accessor[Option[string]], accessor[Option[string]]]{
		left:  categoricalAccessor(left),
		right: categoricalAccessor(right),
	}
}

func observePair(left, right columnar.AnyColumn) {
	metrics.ObserveComparator(KindPair, left.Layout().String())
	logger.Get().Debug("pair comparator built",
		zap.String("left", left.Name()),
		zap.Stringer("left_layout", left.Layout()),
		zap.String("right", right.Name()),
		zap.Stringer("right_layout", right.Layout()),
	)
}

package compare

import (
	"cmp"

	"github.com/ajitpratap0/strata/pkg/columnar"
	"github.com/ajitpratap0/strata/pkg/strataerrors"
)

// ForColumn builds a comparator for a type-erased column, for callers that
// hold a columnar.AnyColumn (a table column looked up by name) rather than a
// typed column.
func ForColumn(col columnar.AnyColumn) (Comparator, error) {
	switch c := col.(type) {
	case *columnar.Column[int32]:
		return NewComparator(c), nil
	case *columnar.Column[int64]:
		return NewComparator(c), nil
	case *columnar.Column[uint32]:
		return NewComparator(c), nil
	case *columnar.Column[uint64]:
		return NewComparator(c), nil
	case *columnar.Column[float32]:
		return NewComparator(c), nil
	case *columnar.Column[float64]:
		return NewComparator(c), nil
	case *columnar.Column[string]:
		return NewComparator(c), nil
	case *columnar.Categorical:
		return NewCategoricalComparator(c), nil
	}
	return nil, unsupported(col)
}

// ForColumns builds a pair comparator for two type-erased columns of the
// same type.
func ForColumns(left, right columnar.AnyColumn) (Comparator, error) {
	if left.Type() != right.Type() {
		return nil, strataerrors.New(strataerrors.ErrorTypeValidation, "pair comparator needs columns of one type").
			WithDetail("left", left.Type().String()).
			WithDetail("right", right.Type().String())
	}
	switch l := left.(type) {
	case *columnar.Column[int32]:
		return pairOf(l, right)
	case *columnar.Column[int64]:
		return pairOf(l, right)
	case *columnar.Column[uint32]:
		return pairOf(l, right)
	case *columnar.Column[uint64]:
		return pairOf(l, right)
	case *columnar.Column[float32]:
		return pairOf(l, right)
	case *columnar.Column[float64]:
		return pairOf(l, right)
	case *columnar.Column[string]:
		return pairOf(l, right)
	case *columnar.Categorical:
		if r, ok := right.(*columnar.Categorical); ok {
			return NewCategoricalPairComparator(l, r), nil
		}
	}
	return nil, unsupported(left)
}

func pairOf[T cmp.Ordered](left *columnar.Column[T], right columnar.AnyColumn) (Comparator, error) {
	r, ok := right.(*columnar.Column[T])
	if !ok {
		return nil, unsupported(right)
	}
	return NewPairComparator(left, r), nil
}

func unsupported(col columnar.AnyColumn) error {
	return strataerrors.New(strataerrors.ErrorTypeCapability, "no comparator for column type").
		WithDetail("column", col.Name()).
		WithDetail("type", col.Type().String())
}

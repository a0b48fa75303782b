package compare

import (
	"cmp"
)

// Ordering is the result of Cmp.
type Ordering int8

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "Less"
	case Equal:
		return "Equal"
	case Greater:
		return "Greater"
	default:
		return "Invalid"
	}
}

// Reverse flips Less and Greater.
func (o Ordering) Reverse() Ordering { return -o }

// Option is the item type of nullable accessors. The zero value is null.
type Option[T any] struct {
	Value T
	Valid bool
}

// Some wraps a present value.
func Some[T any](v T) Option[T] { return Option[T]{Value: v, Valid: true} }

// None returns a null.
func None[T any]() Option[T] { return Option[T]{} }

// partialCompare is the natural order; ok is false when a and b are unordered.
func partialCompare[T cmp.Ordered](a, b T) (o Ordering, ok bool) {
	switch {
	case a < b:
		return Less, true
	case a > b:
		return Greater, true
	case a == b:
		return Equal, true
	}
	return Equal, false
}

// fallback orders an unordered pair by its left operand: NaN on the left is
// Less, anything else is Greater. This includes NaN against itself.
func fallback[T cmp.Ordered](a T) Ordering {
	if a != a { //nolint:staticcheck // NaN test without assuming a float type
		return Less
	}
	return Greater
}

func orderValues[T cmp.Ordered](a, b T) Ordering {
	if o, ok := partialCompare(a, b); ok {
		return o
	}
	return fallback(a)
}

func equalOptions[T comparable](a, b Option[T]) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Value == b.Value
}

// orderOptions lifts orderValues: null before present, null equal to null.
func orderOptions[T cmp.Ordered](a, b Option[T]) Ordering {
	switch {
	case !a.Valid && !b.Valid:
		return Equal
	case !a.Valid:
		return Less
	case !b.Valid:
		return Greater
	}
	return orderValues(a.Value, b.Value)
}

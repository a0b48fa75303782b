// Package compare builds element comparators over columnar storage.
//
// # Overview
//
// A comparator answers two questions about arbitrary logical positions of a
// column: are the elements equal (Eq) and how do they order (Cmp). It is built
// once per algorithmic pass and then called many times by sort, group-by,
// join and dedup code that is itself generic over the element type.
//
// All layout branching is paid at construction. The dispatcher inspects the
// column once (one chunk or many, null mask or not), picks one of four
// accessor specializations and wraps it in a generic comparator struct. Eq
// and Cmp never re-inspect the layout.
//
// # Contract
//
// Eq and Cmp are unchecked: every position must be < Len() of the column the
// comparator was built from. Out-of-range positions are a caller bug with no
// defined result (a runtime panic or a wrong answer), never an error value.
// Validate positions once per batch with CheckIndices, or use the checked
// Column.Get when positions come from outside.
//
// A comparator borrows its column. Columns are immutable after they are
// built, so a comparator stays valid for as long as it is referenced and is
// safe for concurrent use by any number of goroutines.
//
// # Null and NaN policy
//
// Equality uses the element's native ==: null equals null, null never equals
// a present value, and NaN is unequal to everything including itself.
//
// Ordering places null before every present value. When two present values
// have no natural order (a NaN is involved) the left operand decides: a NaN
// on the left yields Less, otherwise Greater. So Cmp(i, i) is Less when i
// holds NaN. This breaks reflexivity on purpose; downstream sorts rely on
// the tie-break direction for deterministic output.
//
// # Usage Example
//
//	cmp := compare.NewOrderingComparator(col)
//	slices.SortStableFunc(perm, func(a, b int) int {
//		return int(cmp.Cmp(a, b))
//	})
//
// Categorical columns resolve codes through their Local or Global mapping
// and compare the resolved strings:
//
//	eq := compare.NewCategoricalEqualityComparator(cat)
package compare

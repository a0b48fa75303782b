package compare

import (
	"github.com/ajitpratap0/strata/pkg/columnar"
	"github.com/ajitpratap0/strata/pkg/strataerrors"
)

// localCategorical resolves a code by indexing the column's own dictionary.
type localCategorical[A accessor[Option[uint32]]] struct {
	codes      A
	categories []string
}

func (r localCategorical[A]) get(idx int) Option[string] {
	code := r.codes.get(idx)
	if !code.Valid {
		return Option[string]{}
	}
	return Option[string]{Value: r.categories[code.Value], Valid: true}
}

// globalCategorical resolves a code through the code-to-slot table and then
// the shared dictionary. A code missing from the table is an invariant
// violation and panics.
type globalCategorical[A accessor[Option[uint32]]] struct {
	codes      A
	codeToSlot map[uint32]uint32
	categories []string
}

func (r globalCategorical[A]) get(idx int) Option[string] {
	code := r.codes.get(idx)
	if !code.Valid {
		return Option[string]{}
	}
	slot, ok := r.codeToSlot[code.Value]
	if !ok {
		strataerrors.Invariant("global categorical code missing from code-to-slot table",
			"code", code.Value,
			"position", idx)
	}
	return Option[string]{Value: r.categories[slot], Valid: true}
}

// NewCategoricalComparator builds a comparator over the resolved strings of
// a categorical column. Equality and ordering are the same for Local and
// Global columns holding the same strings; ordering is lexical.
func NewCategoricalComparator(col *columnar.Categorical) Comparator {
	observe(KindCategorical, col)
	return dispatchCategorical(col)
}

// NewCategoricalEqualityComparator builds an equality comparator over a
// categorical column.
func NewCategoricalEqualityComparator(col *columnar.Categorical) EqualityComparator {
	observe(KindCategorical, col)
	return dispatchCategorical(col)
}

// NewCategoricalOrderingComparator builds an ordering comparator over a
// categorical column.
func NewCategoricalOrderingComparator(col *columnar.Categorical) OrderingComparator {
	observe(KindCategorical, col)
	return dispatchCategorical(col)
}

func dispatchCategorical(col *columnar.Categorical) Comparator {
	codes, rev := col.Codes(), col.RevMap()
	switch codes.Layout() {
	case columnar.LayoutSingleNoNull:
		return categoricalComparator(present[uint32, flatValues[uint32]]{inner: newFlatValues(codes)}, rev)
	case columnar.LayoutSingle:
		return categoricalComparator(newFlatOptions(codes), rev)
	case columnar.LayoutMultiNoNull:
		return categoricalComparator(present[uint32, chunkedValues[uint32]]{inner: newChunkedValues(codes)}, rev)
	default:
		return categoricalComparator(newChunkedOptions(codes), rev)
	}
}

func categoricalComparator[A accessor[Option[uint32]]](codes A, rev *columnar.RevMapping) Comparator {
	if rev.Mode() == columnar.MappingGlobal {
		return optionComparator[string, globalCategorical[A]]{acc: globalCategorical[A]{
			codes:      codes,
			codeToSlot: rev.CodeToSlot(),
			categories: rev.Categories(),
		}}
	}
	return optionComparator[string, localCategorical[A]]{acc: localCategorical[A]{
		codes:      codes,
		categories: rev.Categories(),
	}}
}

// categoricalAccessor is the resolver behind an interface, for pair
// comparators whose two sides may use different mapping modes.
func categoricalAccessor(col *columnar.Categorical) accessor[Option[string]] {
	codes, rev := optionAccessor(col.Codes()), col.RevMap()
	if rev.Mode() == columnar.MappingGlobal {
		return globalCategorical[accessor[Option[uint32]]]{
			codes:      codes,
			codeToSlot: rev.CodeToSlot(),
			categories: rev.Categories(),
		}
	}
	return localCategorical[accessor[Option[uint32]]]{codes: codes, categories: rev.Categories()}
}

package columnar

import (
	"cmp"
	"slices"

	"github.com/google/uuid"

	"github.com/ajitpratap0/strata/pkg/strataerrors"
)

// MappingMode selects how categorical codes resolve to strings.
type MappingMode int

const (
	// MappingLocal indexes a per-column dictionary directly with the code
	MappingLocal MappingMode = iota
	// MappingGlobal translates the code through a code→slot table first
	MappingGlobal
)

func (m MappingMode) String() string {
	if m == MappingGlobal {
		return "global"
	}
	return "local"
}

// RevMapping turns categorical codes back into strings. It is immutable.
type RevMapping struct {
	mode       MappingMode
	categories []string
	codeToSlot map[uint32]uint32 // Global only
	cacheID    uuid.UUID         // Global only
}

// NewLocalRevMapping creates a mapping where code i resolves to categories[i].
func NewLocalRevMapping(categories []string) *RevMapping {
	return &RevMapping{mode: MappingLocal, categories: categories}
}

// NewGlobalRevMapping creates a mapping where a code resolves to
// categories[codeToSlot[code]]. Codes are ids from the cache named by cacheID.
func NewGlobalRevMapping(cacheID uuid.UUID, codeToSlot map[uint32]uint32, categories []string) *RevMapping {
	return &RevMapping{
		mode:       MappingGlobal,
		categories: categories,
		codeToSlot: codeToSlot,
		cacheID:    cacheID,
	}
}

func (r *RevMapping) Mode() MappingMode { return r.mode }

// Categories returns the dictionary the mapping resolves into.
func (r *RevMapping) Categories() []string { return r.categories }

// CodeToSlot returns the global translation table, nil for Local mappings.
func (r *RevMapping) CodeToSlot() map[uint32]uint32 { return r.codeToSlot }

// CacheID returns the identity of the cache global codes came from.
func (r *RevMapping) CacheID() uuid.UUID { return r.cacheID }

// Resolve is the checked code lookup.
func (r *RevMapping) Resolve(code uint32) (string, bool) {
	slot := code
	if r.mode == MappingGlobal {
		s, ok := r.codeToSlot[code]
		if !ok {
			return "", false
		}
		slot = s
	}
	if int(slot) >= len(r.categories) {
		return "", false
	}
	return r.categories[slot], true
}

// MergeGlobal combines two global mappings from the same cache into one that
// resolves every code of both. Slots of a keep their positions.
func MergeGlobal(a, b *RevMapping) (*RevMapping, error) {
	if a.mode != MappingGlobal || b.mode != MappingGlobal {
		return nil, strataerrors.New(strataerrors.ErrorTypeValidation, "only global mappings can be merged")
	}
	if a.cacheID != b.cacheID {
		return nil, strataerrors.New(strataerrors.ErrorTypeValidation, "global mappings come from different string caches").
			WithDetail("left", a.cacheID.String()).
			WithDetail("right", b.cacheID.String())
	}

	codeToSlot := make(map[uint32]uint32, len(a.codeToSlot)+len(b.codeToSlot))
	for code, slot := range a.codeToSlot {
		codeToSlot[code] = slot
	}
	categories := make([]string, len(a.categories), len(a.categories)+len(b.categories))
	copy(categories, a.categories)

	// Walk b's codes by slot so the merged layout is deterministic. Slots no
	// code points to are dropped; codes sharing a slot share the new one.
	codes := make([]uint32, 0, len(b.codeToSlot))
	for code, slot := range b.codeToSlot {
		if int(slot) >= len(b.categories) {
			return nil, strataerrors.New(strataerrors.ErrorTypeData, "global mapping points past its dictionary").
				WithDetail("code", code).
				WithDetail("slot", slot)
		}
		codes = append(codes, code)
	}
	slices.SortFunc(codes, func(x, y uint32) int {
		if c := cmp.Compare(b.codeToSlot[x], b.codeToSlot[y]); c != 0 {
			return c
		}
		return cmp.Compare(x, y)
	})
	moved := make(map[uint32]uint32)
	for _, code := range codes {
		if _, ok := codeToSlot[code]; ok {
			continue
		}
		slot := b.codeToSlot[code]
		next, ok := moved[slot]
		if !ok {
			next = uint32(len(categories))
			categories = append(categories, b.categories[slot])
			moved[slot] = next
		}
		codeToSlot[code] = next
	}

	return NewGlobalRevMapping(a.cacheID, codeToSlot, categories), nil
}

// Categorical is a dictionary-encoded string column: a code column plus the
// mapping that resolves codes.
type Categorical struct {
	codes *Column[uint32]
	rev   *RevMapping
}

// NewCategorical binds codes to a mapping. Every present code must resolve.
func NewCategorical(codes *Column[uint32], rev *RevMapping) (*Categorical, error) {
	for k, ch := range codes.chunks {
		for i, code := range ch.values {
			if !ch.IsValid(i) {
				continue
			}
			if _, ok := rev.Resolve(code); !ok {
				return nil, strataerrors.New(strataerrors.ErrorTypeData, "categorical code does not resolve").
					WithDetail("column", codes.name).
					WithDetail("code", code).
					WithDetail("position", codes.offsets[k]+i).
					WithDetail("mode", rev.mode.String())
			}
		}
	}
	return &Categorical{codes: codes, rev: rev}, nil
}

func (c *Categorical) Name() string           { return c.codes.name }
func (c *Categorical) Type() ColumnType       { return ColumnTypeCategorical }
func (c *Categorical) Len() int               { return c.codes.Len() }
func (c *Categorical) NullCount() int         { return c.codes.nulls }
func (c *Categorical) NumChunks() int         { return len(c.codes.chunks) }
func (c *Categorical) Layout() Layout         { return c.codes.layout }
func (c *Categorical) IsNull(idx int) bool    { return c.codes.IsNull(idx) }
func (c *Categorical) Codes() *Column[uint32] { return c.codes }
func (c *Categorical) RevMap() *RevMapping    { return c.rev }
func (c *Categorical) Mode() MappingMode      { return c.rev.mode }

// Get is the bounds-checked accessor.
func (c *Categorical) Get(idx int) (string, bool, error) {
	code, ok, err := c.codes.Get(idx)
	if err != nil || !ok {
		return "", false, err
	}
	s, _ := c.rev.Resolve(code)
	return s, true, nil
}

// ToGlobal re-encodes a Local column with ids from cache. Global columns
// are returned unchanged.
func (c *Categorical) ToGlobal(cache *StringCache) *Categorical {
	if c.rev.mode == MappingGlobal {
		return c
	}

	localToGlobal := make([]uint32, len(c.rev.categories))
	codeToSlot := make(map[uint32]uint32, len(c.rev.categories))
	for slot, s := range c.rev.categories {
		id := cache.Intern(s)
		localToGlobal[slot] = id
		codeToSlot[id] = uint32(slot)
	}

	return &Categorical{
		codes: c.remap(func(code uint32) uint32 { return localToGlobal[code] }),
		rev:   NewGlobalRevMapping(cache.ID(), codeToSlot, c.rev.categories),
	}
}

// ToLocal re-encodes a Global column so codes index its dictionary directly.
// Local columns are returned unchanged.
func (c *Categorical) ToLocal() *Categorical {
	if c.rev.mode == MappingLocal {
		return c
	}
	return &Categorical{
		codes: c.remap(func(code uint32) uint32 { return c.rev.codeToSlot[code] }),
		rev:   NewLocalRevMapping(c.rev.categories),
	}
}

// WithRevMap rebinds a Global column to a wider mapping from the same cache,
// typically one produced by MergeGlobal.
func (c *Categorical) WithRevMap(rev *RevMapping) (*Categorical, error) {
	if c.rev.mode != MappingGlobal || rev.mode != MappingGlobal || c.rev.cacheID != rev.cacheID {
		return nil, strataerrors.New(strataerrors.ErrorTypeValidation, "rev mapping is not compatible with column").
			WithDetail("column", c.Name())
	}
	return NewCategorical(c.codes, rev)
}

// Unify rebinds two Global columns from the same cache to one merged mapping,
// so both resolve through a single dictionary. Any other pair is returned
// unchanged with ok false.
func Unify(left, right *Categorical) (l, r *Categorical, ok bool, err error) {
	if left.rev.mode != MappingGlobal || right.rev.mode != MappingGlobal || left.rev.cacheID != right.rev.cacheID {
		return left, right, false, nil
	}
	if left.rev == right.rev {
		return left, right, true, nil
	}
	merged, err := MergeGlobal(left.rev, right.rev)
	if err != nil {
		return nil, nil, false, err
	}
	if l, err = left.WithRevMap(merged); err != nil {
		return nil, nil, false, err
	}
	if r, err = right.WithRevMap(merged); err != nil {
		return nil, nil, false, err
	}
	return l, r, true, nil
}

// remap copies the code column through fn, keeping chunk boundaries and
// sharing the immutable validity masks.
func (c *Categorical) remap(fn func(uint32) uint32) *Column[uint32] {
	chunks := make([]Chunk[uint32], len(c.codes.chunks))
	for k, ch := range c.codes.chunks {
		values := make([]uint32, len(ch.values))
		for i, code := range ch.values {
			if ch.IsValid(i) {
				values[i] = fn(code)
			}
		}
		chunks[k] = Chunk[uint32]{values: values, validity: ch.validity, nulls: ch.nulls}
	}
	return NewColumn(c.codes.name, chunks...)
}

// CategoricalBuilder dictionary-encodes strings as they are appended.
type CategoricalBuilder struct {
	codes      *Builder[uint32]
	dict       map[string]uint32
	categories []string
}

// NewCategoricalBuilder creates a builder cutting chunks every chunkSize rows.
func NewCategoricalBuilder(name string, chunkSize int) *CategoricalBuilder {
	return &CategoricalBuilder{
		codes: NewBuilder[uint32](name, chunkSize),
		dict:  make(map[string]uint32),
	}
}

// Append adds a present string.
func (b *CategoricalBuilder) Append(s string) {
	code, ok := b.dict[s]
	if !ok {
		code = uint32(len(b.categories))
		b.dict[s] = code
		b.categories = append(b.categories, s)
	}
	b.codes.Append(code)
}

// AppendNull adds a null position.
func (b *CategoricalBuilder) AppendNull() { b.codes.AppendNull() }

// AppendOption adds s when ok, a null otherwise.
func (b *CategoricalBuilder) AppendOption(s string, ok bool) {
	if ok {
		b.Append(s)
		return
	}
	b.AppendNull()
}

// Flush closes the current code chunk early.
func (b *CategoricalBuilder) Flush() { b.codes.Flush() }

// BuildLocal returns the column with a Local mapping.
func (b *CategoricalBuilder) BuildLocal() *Categorical {
	cat := &Categorical{
		codes: b.codes.Build(),
		rev:   NewLocalRevMapping(b.categories),
	}
	b.dict = make(map[string]uint32)
	b.categories = nil
	return cat
}

// BuildGlobal returns the column with a Global mapping over ids from cache.
func (b *CategoricalBuilder) BuildGlobal(cache *StringCache) *Categorical {
	return b.BuildLocal().ToGlobal(cache)
}

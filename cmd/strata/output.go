package main

import (
	"cmp"
	"io"
	"math"

	"github.com/goccy/go-json"

	"github.com/ajitpratap0/strata/pkg/columnar"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// valueAt renders one cell for JSON output. Nulls become nil and NaN becomes
// the string "NaN", which JSON has no number for.
func valueAt(col columnar.AnyColumn, idx int) interface{} {
	switch c := col.(type) {
	case *columnar.Column[int32]:
		return cell(c, idx)
	case *columnar.Column[int64]:
		return cell(c, idx)
	case *columnar.Column[uint32]:
		return cell(c, idx)
	case *columnar.Column[uint64]:
		return cell(c, idx)
	case *columnar.Column[float32]:
		return floatCell(cell(c, idx))
	case *columnar.Column[float64]:
		return floatCell(cell(c, idx))
	case *columnar.Column[string]:
		return cell(c, idx)
	case *columnar.Categorical:
		v, ok, err := c.Get(idx)
		if err != nil || !ok {
			return nil
		}
		return v
	}
	return nil
}

func cell[T cmp.Ordered](c *columnar.Column[T], idx int) interface{} {
	v, ok, err := c.Get(idx)
	if err != nil || !ok {
		return nil
	}
	return v
}

func floatCell(v interface{}) interface{} {
	switch f := v.(type) {
	case float32:
		if math.IsNaN(float64(f)) {
			return "NaN"
		}
	case float64:
		if math.IsNaN(f) {
			return "NaN"
		}
	}
	return v
}

// rowsAt renders the cells at positions, at most limit of them when limit > 0.
func rowsAt(col columnar.AnyColumn, positions []int, limit int) []interface{} {
	if limit > 0 && len(positions) > limit {
		positions = positions[:limit]
	}
	out := make([]interface{}, len(positions))
	for i, p := range positions {
		out[i] = valueAt(col, p)
	}
	return out
}

func truncate(positions []int, limit int) []int {
	if limit > 0 && len(positions) > limit {
		return positions[:limit]
	}
	return positions
}

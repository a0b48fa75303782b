package columnar

import (
	"sort"
	"sync"

	"github.com/ajitpratap0/strata/pkg/strataerrors"
)

// Table is a named set of equally long columns.
type Table struct {
	mu       sync.RWMutex
	columns  map[string]AnyColumn
	order    []string
	rowCount int
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{
		columns:  make(map[string]AnyColumn),
		rowCount: -1,
	}
}

// AddColumn adds a column. The first column fixes the row count.
func (t *Table) AddColumn(col AnyColumn) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.columns[col.Name()]; exists {
		return strataerrors.Newf(strataerrors.ErrorTypeValidation, "column %q already exists", col.Name())
	}
	if t.rowCount >= 0 && col.Len() != t.rowCount {
		return strataerrors.Newf(strataerrors.ErrorTypeValidation, "column %q has %d rows, table has %d", col.Name(), col.Len(), t.rowCount)
	}

	t.columns[col.Name()] = col
	t.order = append(t.order, col.Name())
	t.rowCount = col.Len()
	return nil
}

// Column retrieves a column by name
func (t *Table) Column(name string) (AnyColumn, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	col, exists := t.columns[name]
	return col, exists
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.rowCount < 0 {
		return 0
	}
	return t.rowCount
}

// ColumnCount returns the number of columns
func (t *Table) ColumnCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.columns)
}

// ColumnNames returns column names in insertion order
func (t *Table) ColumnNames() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, len(t.order))
	copy(names, t.order)
	return names
}

// SortedColumnNames returns column names alphabetically
func (t *Table) SortedColumnNames() []string {
	names := t.ColumnNames()
	sort.Strings(names)
	return names
}

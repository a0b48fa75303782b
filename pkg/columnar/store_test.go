package columnar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableAddColumn(t *testing.T) {
	table := NewTable()
	assert.Equal(t, 0, table.RowCount())

	require.NoError(t, table.AddColumn(FromSlice("id", []int64{3, 1, 2})))
	require.NoError(t, table.AddColumn(buildLabels("a", "b", "a").BuildLocal()))

	assert.Equal(t, 3, table.RowCount())
	assert.Equal(t, 2, table.ColumnCount())
	assert.Equal(t, []string{"id", "label"}, table.ColumnNames())
	assert.Equal(t, []string{"id", "label"}, table.SortedColumnNames())

	col, ok := table.Column("label")
	require.True(t, ok)
	assert.Equal(t, ColumnTypeCategorical, col.Type())

	_, ok = table.Column("missing")
	assert.False(t, ok)
}

func TestTableRejectsDuplicatesAndLengthMismatch(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.AddColumn(FromSlice("id", []int64{1, 2})))

	assert.Error(t, table.AddColumn(FromSlice("id", []int64{1, 2})))
	assert.Error(t, table.AddColumn(FromSlice("x", []float64{1})))
}

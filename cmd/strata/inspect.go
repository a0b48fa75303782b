package main

import (
	"github.com/spf13/cobra"

	"github.com/ajitpratap0/strata/pkg/columnar"
)

type columnSummary struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Layout   string `json:"layout"`
	Chunks   int    `json:"chunks"`
	Rows     int    `json:"rows"`
	Nulls    int    `json:"nulls"`
	Mapping  string `json:"mapping,omitempty"`
	Distinct int    `json:"categories,omitempty"`
}

type tableSummary struct {
	Path    string          `json:"path"`
	Rows    int             `json:"rows"`
	Columns []columnSummary `json:"columns"`
}

func newInspectCommand(a *app) *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Describe the columns of an Arrow IPC file",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTable(in)
			if err != nil {
				return err
			}
			defer t.Release()
			return writeJSON(cmd.OutOrStdout(), summarize(in, t.Table))
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "Input Arrow IPC file (required)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func summarize(path string, t *columnar.Table) tableSummary {
	s := tableSummary{Path: path, Rows: t.RowCount()}
	for _, name := range t.ColumnNames() {
		col, _ := t.Column(name)
		cs := columnSummary{
			Name:   col.Name(),
			Type:   col.Type().String(),
			Layout: col.Layout().String(),
			Chunks: col.NumChunks(),
			Rows:   col.Len(),
			Nulls:  col.NullCount(),
		}
		if cat, ok := col.(*columnar.Categorical); ok {
			cs.Mapping = cat.Mode().String()
			cs.Distinct = len(cat.RevMap().Categories())
		}
		s.Columns = append(s.Columns, cs)
	}
	return s
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/ajitpratap0/strata/pkg/ops"
)

type distinctResult struct {
	Column   string        `json:"column"`
	Rows     int           `json:"rows"`
	Distinct int           `json:"distinct"`
	First    []int         `json:"first"`
	Values   []interface{} `json:"values,omitempty"`
}

func newDistinctCommand(a *app) *cobra.Command {
	var (
		in, column string
		limit      int
		withValues bool
	)

	cmd := &cobra.Command{
		Use:   "distinct",
		Short: "List the first position of every distinct value in a column",
		Long: `List the first position of every distinct value of one column, in
position order. Nulls form a single group. Every NaN is its own group.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTable(in)
			if err != nil {
				return err
			}
			defer t.Release()

			col, err := lookupColumn(t.Table, column)
			if err != nil {
				return err
			}
			firsts, err := ops.DistinctColumn(cmd.Context(), col)
			if err != nil {
				return err
			}

			res := distinctResult{
				Column:   col.Name(),
				Rows:     col.Len(),
				Distinct: len(firsts),
				First:    truncate(firsts, limit),
			}
			if withValues {
				res.Values = rowsAt(col, firsts, limit)
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "", "Input Arrow IPC file (required)")
	_ = cmd.MarkFlagRequired("in")
	cmd.Flags().StringVar(&column, "column", "value", "Column to deduplicate")
	cmd.Flags().IntVar(&limit, "limit", 0, "Print at most this many positions (0 prints all)")
	cmd.Flags().BoolVar(&withValues, "values", false, "Also print the distinct values")
	return cmd
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/ajitpratap0/strata/pkg/columnar"
	"github.com/ajitpratap0/strata/pkg/ops"
	"github.com/ajitpratap0/strata/pkg/strataerrors"
)

type sortResult struct {
	Column      string        `json:"column"`
	Rows        int           `json:"rows"`
	Descending  bool          `json:"descending"`
	NullsLast   bool          `json:"nulls_last"`
	Parallelism int           `json:"parallelism"`
	Order       []int         `json:"order"`
	Values      []interface{} `json:"values,omitempty"`
}

func newSortCommand(a *app) *cobra.Command {
	var (
		in, column            string
		descending, nullsLast bool
		parallelism, limit    int
		withValues            bool
	)

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Arg-sort one column of an Arrow IPC file",
		Long: `Arg-sort one column and print the sorted positions as JSON.
Nulls sort first unless --nulls-last is given. Float NaN sorts after nulls and
before every number. Defaults come from the sort section of the config file.`,
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

			opts := ops.SortOptionsFromConfig(a.cfg.Sort, col)
			flags := cmd.Flags()
			if flags.Changed("descending") {
				opts.Descending = descending
			}
			if flags.Changed("nulls-last") {
				opts.NullsLast = nullsLast
			}
			if flags.Changed("parallelism") {
				opts.Parallelism = parallelism
			}

			perm, err := ops.SortColumn(cmd.Context(), col, opts)
			if err != nil {
				return err
			}

			res := sortResult{
				Column:      col.Name(),
				Rows:        col.Len(),
				Descending:  opts.Descending,
				NullsLast:   opts.NullsLast,
				Parallelism: opts.Parallelism,
				Order:       truncate(perm, limit),
			}
			if withValues {
				res.Values = rowsAt(col, perm, limit)
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "", "Input Arrow IPC file (required)")
	_ = cmd.MarkFlagRequired("in")
	cmd.Flags().StringVar(&column, "column", "value", "Column to sort")
	cmd.Flags().BoolVar(&descending, "descending", false, "Sort present values in descending order")
	cmd.Flags().BoolVar(&nullsLast, "nulls-last", false, "Place nulls after present values")
	cmd.Flags().IntVarP(&parallelism, "parallelism", "p", 0, "Sort workers, overriding sort.parallelism (1 is sequential)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Print at most this many positions (0 prints all)")
	cmd.Flags().BoolVar(&withValues, "values", false, "Also print the sorted values")
	return cmd
}

func lookupColumn(t *columnar.Table, name string) (columnar.AnyColumn, error) {
	col, ok := t.Column(name)
	if !ok {
		return nil, strataerrors.Newf(strataerrors.ErrorTypeValidation, "column %q not found", name).
			WithDetail("columns", t.ColumnNames())
	}
	return col, nil
}

package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"strokedash/internal/model"
)

var quartersCmd = &cobra.Command{
	Use:   "quarters",
	Short: "列出全部报告期及最近一次导入状态",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		imports, err := a.store.ListQuarterImports()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "QUARTER\tDATE\tSTATUS\tROWS\tCOLUMNS")
		for _, q := range model.Quarters(time.Now()) {
			status, rows, cols := "pending", "-", "-"
			if it, ok := imports[q.String()]; ok {
				status = it.Status
				rows = fmt.Sprint(it.Rows)
				cols = fmt.Sprint(it.Columns)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", q, q.Date().Format("2006-01-02"), status, rows, cols)
		}
		return w.Flush()
	},
}

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"strokedash/internal/aggregate"
	"strokedash/internal/model"
)

var (
	seriesLevel  string
	seriesEntity string
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "为单个实体重建时间序列并输出",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := model.ParseLevel(seriesLevel)
		if err != nil {
			return err
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		tables, err := a.artifacts.LoadRawTables()
		if err != nil {
			return err
		}
		series, err := aggregate.BuildEntitySeries(tables, level, seriesEntity)
		if err != nil {
			return err
		}
		if err := a.artifacts.WriteSeries(series); err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprint(w, "METRIC")
		for _, q := range series.Quarters {
			fmt.Fprintf(w, "\t%s", q)
		}
		fmt.Fprintln(w)
		for mi, metric := range series.Metrics {
			fmt.Fprint(w, metric)
			for _, v := range series.Cells[mi] {
				fmt.Fprintf(w, "\t%s", v)
			}
			fmt.Fprintln(w)
		}
		return w.Flush()
	},
}

func init() {
	seriesCmd.Flags().StringVar(&seriesLevel, "level", "Team", "层级: ISDN / Trust / Team")
	seriesCmd.Flags().StringVar(&seriesEntity, "entity", "", "实体名称")
	_ = seriesCmd.MarkFlagRequired("entity")
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/insightr/internal/metrics"
	"github.com/mark3labs/insightr/internal/report"
	"github.com/mark3labs/insightr/internal/store"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export dashboard data without opening the TUI",
}

var exportSalesCmd = &cobra.Command{
	Use:   "sales",
	Short: "Export the sales history as CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		src := metrics.NewSampleSource(cfg.SampleSeed, now)
		path, err := report.ExportSalesCSV(cfg.ExportDir, src.Sales(), now)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
		return nil
	},
}

var exportReportCmd = &cobra.Command{
	Use:   "report [analysis-id]",
	Short: "Export a markdown report of the dashboard or of one analysis",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		src := metrics.NewSampleSource(cfg.SampleSeed, now)

		if len(args) == 0 {
			path, err := report.ExportDashboardReport(cfg.ExportDir, src, now)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		}

		return withStore(func(ctx context.Context, st *store.Store) error {
			a, err := st.Get(ctx, args[0])
			if err != nil {
				return err
			}
			path, err := report.ExportReport(cfg.ExportDir, a, src)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		})
	},
}

func init() {
	exportCmd.AddCommand(exportSalesCmd)
	exportCmd.AddCommand(exportReportCmd)
}

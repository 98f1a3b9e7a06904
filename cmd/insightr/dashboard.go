package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/insightr/internal/orchestrator"
	"github.com/spf13/cobra"
)

var dashboardFlags struct {
	mcp        bool
	noValidate bool
	seed       int64
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the analytics dashboard (default)",
	Long: `Open the full-screen analytics dashboard.

The dashboard starts an embedded NATS server in <data-dir>/nats (or joins the
one a running dashboard already serves) and records analyses submitted from
the New Analysis wizard. With --mcp it also serves the analysis tools over
MCP at http://localhost:<port>/mcp.`,
	RunE: runDashboard,
}

func init() {
	registerDashboardFlags(dashboardCmd)
}

func registerDashboardFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&dashboardFlags.mcp, "mcp", false, "Serve MCP tools while the dashboard runs (default: from config)")
	cmd.Flags().BoolVar(&dashboardFlags.noValidate, "no-validate", false, "Accept wizard submissions without validating criteria")
	cmd.Flags().Int64Var(&dashboardFlags.seed, "seed", 0, "Seed for the sample data (default: from config)")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	oc := orchestrator.Config{
		DataDir:    cfg.DataDir,
		ExportDir:  cfg.ExportDir,
		MCP:        cfg.MCP,
		Validate:   cfg.Validate,
		SampleSeed: cfg.SampleSeed,
	}
	if cmd.Flags().Changed("mcp") {
		oc.MCP = dashboardFlags.mcp
	}
	if dashboardFlags.noValidate {
		oc.Validate = false
	}
	if cmd.Flags().Changed("seed") {
		oc.SampleSeed = dashboardFlags.seed
	}

	orch := orchestrator.New(oc)
	if err := orch.Start(); err != nil {
		_ = orch.Stop()
		return fmt.Errorf("failed to start dashboard: %w", err)
	}

	// Ensure cleanup always runs using defer
	defer func() {
		if err := orch.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
		}
	}()

	// SIGTERM ends the TUI through the orchestrator context
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		if _, ok := <-sigChan; ok {
			_ = orch.Stop()
		}
	}()

	return orch.Run()
}

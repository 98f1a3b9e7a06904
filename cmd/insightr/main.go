package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/mark3labs/insightr/internal/config"
	"github.com/mark3labs/insightr/internal/logger"
	"github.com/mark3labs/insightr/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "▀ █▄ █ ▄▀▀ ▀ ▄▀  █ █ ▀█▀ █▀█"
	logoText2 = "█ █ ▀█ ▄██ █ ▀▄█ █▀█  █  █▀▄"
)

// Version set via ldflags during build
var version = "dev"

// Loaded in PersistentPreRunE, then overridden by flags
var cfg *config.Config

var rootFlags struct {
	dataDir   string
	exportDir string
}

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "insightr",
	Short:             "Terminal analytics dashboard with an event-sourced analysis store",
	PersistentPreRunE: loadConfig,
	RunE:              runDashboard,
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.Current()
	line1 := theme.Gradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.Gradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	// Set Long description with logo
	rootCmd.Long = renderLogo() + `

insightr renders a business analytics dashboard in the terminal: metric cards,
charts and a sales history table. The New Analysis wizard records filter
criteria as events on embedded NATS JetStream, which the CLI and MCP clients
can list, inspect and submit to while the dashboard runs.

Running insightr without a subcommand opens the dashboard.`

	rootCmd.PersistentFlags().StringVar(&rootFlags.dataDir, "data-dir", "", "Data directory for NATS storage and UI state (default: from config)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.exportDir, "export-dir", "", "Directory receiving exports (default: from config)")
	registerDashboardFlags(rootCmd)

	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(analysisCmd)
	rootCmd.AddCommand(exportCmd)
}

// loadConfig resolves configuration with precedence
// CLI flags > ENV vars > project config > global config > defaults.
func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if rootFlags.dataDir != "" {
		loaded.DataDir = rootFlags.dataDir
	}
	if rootFlags.exportDir != "" {
		loaded.ExportDir = rootFlags.exportDir
	}
	cfg = loaded

	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return fmt.Errorf("failed to configure logger: %w", err)
	}
	logger.Debug("Config loaded: data_dir=%s export_dir=%s", cfg.DataDir, cfg.ExportDir)
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/insightr/internal/config"
	"github.com/spf13/cobra"
)

var setupFlags struct {
	project bool
	force   bool
	mcp     bool
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create insightr configuration file",
	Long: `Create an insightr configuration file with sensible defaults.

By default, creates a global config at ~/.config/insightr/insightr.yml.
Use --project to create a project-local config in the current directory.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
	setupCmd.Flags().BoolVar(&setupFlags.mcp, "mcp", false, "Enable the MCP server in the written config")
}

func runSetup(cmd *cobra.Command, args []string) error {
	// Determine target path
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	// Check if config already exists
	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	written := config.Defaults()
	written.MCP = setupFlags.mcp

	var err error
	if setupFlags.project {
		err = config.WriteProject(written)
	} else {
		err = config.WriteGlobal(written)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config written to: %s\n\n", targetPath)
	fmt.Fprintln(cmd.OutOrStdout(), "Run 'insightr' to open the dashboard.")
	return nil
}

// fileExists checks if a file exists (helper for setup command).
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

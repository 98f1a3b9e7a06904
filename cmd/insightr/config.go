package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/x/editor"
	"github.com/mark3labs/insightr/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or edit the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		header := config.ActivePath()
		if !config.Exists() {
			header = "defaults, no config file (run 'insightr setup' to write one)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", header, data)
		return nil
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the active config file in $EDITOR",
	Long: `Open the active config file in $EDITOR (or $VISUAL).

The project file ./insightr.yml is edited when it exists, otherwise the global
file. A config with default values is written first if neither exists.`,
	RunE: runConfigEdit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	path := config.ActivePath()
	if !fileExists(path) {
		if err := config.WriteGlobal(config.Defaults()); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	c, err := editor.Command("insightr", path)
	if err != nil {
		return fmt.Errorf("failed to prepare editor: %w", err)
	}
	return runEditor(c)
}

// runEditor attaches the editor to the terminal and waits for it.
func runEditor(c *exec.Cmd) error {
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}
	return nil
}

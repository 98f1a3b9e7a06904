// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for insightr.
type Config struct {
	DataDir    string `mapstructure:"data_dir" yaml:"data_dir"`
	ExportDir  string `mapstructure:"export_dir" yaml:"export_dir"`
	LogLevel   string `mapstructure:"log_level" yaml:"log_level"`
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	MCP        bool   `mapstructure:"mcp" yaml:"mcp"`
	Validate   bool   `mapstructure:"validate" yaml:"validate"`
	SampleSeed int64  `mapstructure:"sample_seed" yaml:"sample_seed"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() *Config {
	return &Config{
		DataDir:    ".insightr",
		ExportDir:  ".",
		LogLevel:   "info",
		LogFile:    "",
		MCP:        false,
		Validate:   true,
		SampleSeed: 42,
	}
}

// envKeys maps config keys to their explicit environment variables.
var envKeys = map[string]string{
	"data_dir":    "INSIGHTR_DATA_DIR",
	"export_dir":  "INSIGHTR_EXPORT_DIR",
	"log_level":   "INSIGHTR_LOG_LEVEL",
	"log_file":    "INSIGHTR_LOG_FILE",
	"mcp":         "INSIGHTR_MCP",
	"validate":    "INSIGHTR_VALIDATE",
	"sample_seed": "INSIGHTR_SAMPLE_SEED",
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("insightr")

	d := Defaults()
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("export_dir", d.ExportDir)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("mcp", d.MCP)
	v.SetDefault("validate", d.Validate)
	v.SetDefault("sample_seed", d.SampleSeed)

	// Setup ENV binding with INSIGHTR_ prefix
	v.SetEnvPrefix("INSIGHTR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit ENV bindings for better bool/int parsing
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	// Load global config first (if exists)
	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	// Merge project config on top (if exists)
	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// ActivePath returns the config file that takes precedence on disk: the
// project file if present, otherwise the global path (which may not exist yet).
func ActivePath() string {
	if fileExists(ProjectPath()) {
		return ProjectPath()
	}
	return GlobalPath()
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/insightr/insightr.yml or $XDG_CONFIG_HOME/insightr/insightr.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "insightr", "insightr.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "insightr", "insightr.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "insightr.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

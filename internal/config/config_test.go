package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points XDG_CONFIG_HOME and the working directory at a fresh temp dir
// and clears any INSIGHTR_* variables inherited from the environment.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	for _, env := range envKeys {
		t.Setenv(env, "")
		_ = os.Unsetenv(env)
	}
	return tmpDir
}

func TestGlobalPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got, want := GlobalPath(), "/custom/config/insightr/insightr.yml"; got != want {
		t.Errorf("GlobalPath() = %v, want %v", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	got := GlobalPath()
	if !filepath.IsAbs(got) {
		t.Errorf("GlobalPath() should return absolute path, got %v", got)
	}
	if filepath.Base(got) != "insightr.yml" {
		t.Errorf("GlobalPath() should end with insightr.yml, got %v", got)
	}
}

func TestProjectPath(t *testing.T) {
	if got, want := ProjectPath(), "insightr.yml"; got != want {
		t.Errorf("ProjectPath() = %v, want %v", got, want)
	}
}

func TestExists(t *testing.T) {
	isolate(t)

	if Exists() {
		t.Fatal("Exists() = true, want false when no config files exist")
	}
	if ActivePath() != GlobalPath() {
		t.Errorf("ActivePath() = %v, want global path without a project file", ActivePath())
	}

	if err := WriteProject(Defaults()); err != nil {
		t.Fatalf("WriteProject() error = %v", err)
	}
	if !Exists() {
		t.Error("Exists() = false, want true when project config exists")
	}
	if ActivePath() != ProjectPath() {
		t.Errorf("ActivePath() = %v, want project path", ActivePath())
	}
}

func TestWriteGlobal(t *testing.T) {
	isolate(t)

	cfg := &Config{
		DataDir:    ".test",
		ExportDir:  "exports",
		LogLevel:   "debug",
		LogFile:    "/tmp/test.log",
		MCP:        true,
		Validate:   false,
		SampleSeed: 7,
	}
	if err := WriteGlobal(cfg); err != nil {
		t.Fatalf("WriteGlobal() error = %v", err)
	}

	data, err := os.ReadFile(GlobalPath())
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	content := string(data)
	for _, field := range []string{
		"data_dir: .test",
		"export_dir: exports",
		"log_level: debug",
		"log_file: /tmp/test.log",
		"mcp: true",
		"validate: false",
		"sample_seed: 7",
	} {
		if !strings.Contains(content, field) {
			t.Errorf("Config file missing expected field: %s\nContent:\n%s", field, content)
		}
	}
}

func TestLoad_NoConfig(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Defaults()
	if *cfg != *want {
		t.Errorf("Load() with no config = %+v, want defaults %+v", *cfg, *want)
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	isolate(t)

	global := Defaults()
	global.DataDir = ".global"
	global.LogLevel = "warn"
	global.SampleSeed = 3
	if err := WriteGlobal(global); err != nil {
		t.Fatalf("WriteGlobal() error = %v", err)
	}

	if err := os.WriteFile(ProjectPath(), []byte("data_dir: .project\nmcp: true\n"), 0644); err != nil {
		t.Fatalf("Failed to write project config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DataDir != ".project" {
		t.Errorf("DataDir = %v, want .project", cfg.DataDir)
	}
	if !cfg.MCP {
		t.Error("MCP = false, want true from project config")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %v, want warn from global config", cfg.LogLevel)
	}
	if cfg.SampleSeed != 3 {
		t.Errorf("SampleSeed = %v, want 3 from global config", cfg.SampleSeed)
	}
}

func TestLoad_EnvOverridesFiles(t *testing.T) {
	isolate(t)

	if err := WriteProject(Defaults()); err != nil {
		t.Fatalf("WriteProject() error = %v", err)
	}
	t.Setenv("INSIGHTR_DATA_DIR", "/env/data")
	t.Setenv("INSIGHTR_VALIDATE", "false")
	t.Setenv("INSIGHTR_SAMPLE_SEED", "99")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DataDir != "/env/data" {
		t.Errorf("DataDir = %v, want /env/data", cfg.DataDir)
	}
	if cfg.Validate {
		t.Error("Validate = true, want false from env")
	}
	if cfg.SampleSeed != 99 {
		t.Errorf("SampleSeed = %v, want 99", cfg.SampleSeed)
	}
}

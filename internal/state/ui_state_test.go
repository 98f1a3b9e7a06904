package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultUIState(t *testing.T) {
	state := DefaultUIState()
	require.NotNil(t, state)
	require.True(t, state.Charts.Visible, "charts should be visible by default")
}

func TestLoadNonExistent(t *testing.T) {
	state := Load(filepath.Join(t.TempDir(), "missing"))
	require.NotNil(t, state)
	require.True(t, state.Charts.Visible)
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, Save(tmpDir, &UIState{Charts: ChartsState{Visible: false}}))

	_, err := os.Stat(filepath.Join(tmpDir, "ui-state.json"))
	require.NoError(t, err, "state file was not created")

	loaded := Load(tmpDir)
	require.False(t, loaded.Charts.Visible)
}

func TestSaveCreatesDirectory(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "subdir", "data")

	require.NoError(t, Save(dataDir, DefaultUIState()))

	_, err := os.Stat(filepath.Join(dataDir, "ui-state.json"))
	require.NoError(t, err)
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "ui-state.json"), []byte("invalid json {{{"), 0644))

	state := Load(tmpDir)
	require.True(t, state.Charts.Visible, "invalid JSON should fall back to defaults")
}

func TestLoadMissingKeysKeepDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "ui-state.json"), []byte(`{"sidebar":{"visible":false}}`), 0644))

	state := Load(tmpDir)
	require.True(t, state.Charts.Visible)
}

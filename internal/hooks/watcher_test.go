package hooks

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcher_Reloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	w, err := NewWatcher(dir)
	require.NoError(t, err)
	require.Nil(t, w.Config())
	require.NoError(t, w.Start())
	defer func() { _ = w.Stop() }()

	require.NoError(t, os.WriteFile(path, []byte("version: 1\nhooks:\n  on_submit:\n    - command: echo one\n"), 0644))
	require.Eventually(t, func() bool {
		cfg := w.Config()
		return cfg != nil && len(cfg.Hooks.OnSubmit) == 1
	}, 2*time.Second, 20*time.Millisecond)

	// A broken file keeps the last good config
	require.NoError(t, os.WriteFile(path, []byte("hooks: ["), 0644))
	time.Sleep(200 * time.Millisecond)
	require.NotNil(t, w.Config())

	require.NoError(t, os.Remove(path))
	require.Eventually(t, func() bool { return w.Config() == nil }, 2*time.Second, 20*time.Millisecond)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer func() { _ = w.Stop() }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	time.Sleep(100 * time.Millisecond)
	require.Nil(t, w.Config())
}

func TestNewWatcher_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("hooks: ["), 0644))

	_, err := NewWatcher(dir)
	require.Error(t, err)
}

package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/insightr/internal/analysis"
	"github.com/mark3labs/insightr/internal/hooks"
	"github.com/mark3labs/insightr/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_PrimaryThenNode(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	dir := t.TempDir()

	primary, err := Connect(ctx, dir)
	require.NoError(t, err)
	defer func() { _ = primary.Close() }()
	assert.True(t, primary.Primary())

	node, err := Connect(ctx, dir)
	require.NoError(t, err)
	assert.False(t, node.Primary())

	c := analysis.DefaultCriteria()
	c.Location = "Porto"
	a, err := node.Store.Submit(ctx, c, store.SubmitParams{Source: store.SourceCLI})
	require.NoError(t, err)
	require.NoError(t, node.Close())

	got, err := primary.Store.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Porto", got.Criteria.Location)
	assert.Equal(t, store.SourceCLI, got.Source)
}

func TestLink_CloseIdempotent(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	l, err := Connect(ctx, t.TempDir())
	require.NoError(t, err)
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())
}

func TestLink_ReopenAfterClose(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	dir := t.TempDir()

	first, err := Connect(ctx, dir)
	require.NoError(t, err)
	_, err = first.Store.Submit(ctx, analysis.DefaultCriteria(), store.SubmitParams{Source: store.SourceCLI})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Connect(ctx, dir)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()
	assert.True(t, second.Primary(), "port file was removed on close")

	list, err := second.Store.List(ctx, store.ListParams{})
	require.NoError(t, err)
	assert.Len(t, list, 1, "JetStream file storage persists")
}

func TestOrchestrator_StartStop(t *testing.T) {
	o := New(Config{DataDir: t.TempDir(), MCP: true, Validate: true, SampleSeed: 42})
	require.NoError(t, o.Start())
	assert.NotNil(t, o.tuiProgram.Load())
	require.NotNil(t, o.mcp)
	assert.Contains(t, o.mcp.URL(), "/mcp")

	require.NoError(t, o.Stop())
	require.NoError(t, o.Stop())
}

func TestOrchestrator_RunBeforeStart(t *testing.T) {
	o := New(Config{DataDir: t.TempDir()})
	require.Error(t, o.Run())
	require.NoError(t, o.Stop())
}

func TestOrchestrator_RunHooks(t *testing.T) {
	work := t.TempDir()
	marker := filepath.Join(work, "submitted.txt")
	hooksYAML := "version: 1\nhooks:\n  on_submit:\n    - command: echo {{source}} > " + marker + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(work, hooks.ConfigFileName), []byte(hooksYAML), 0644))

	o := New(Config{DataDir: t.TempDir(), WorkDir: work, SampleSeed: 42})
	require.NoError(t, o.Start())
	defer func() { _ = o.Stop() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	a, err := o.link.Store.Submit(ctx, analysis.DefaultCriteria(), store.SubmitParams{Source: store.SourceMCP})
	require.NoError(t, err)

	o.runHooks(a)
	data, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "mcp\n", string(data))
}

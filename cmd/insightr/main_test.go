package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/insightr/internal/analysis"
	"github.com/mark3labs/insightr/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLogo(t *testing.T) {
	lines := strings.Split(ansi.Strip(renderLogo()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, logoText1, lines[0])
	assert.Equal(t, logoText2, lines[1])
}

func TestCriteriaFromFlags(t *testing.T) {
	require.NoError(t, analysisSubmitCmd.Flags().Set("location", "Berlin"))
	require.NoError(t, analysisSubmitCmd.Flags().Set("frequency", "monthly"))
	t.Cleanup(func() {
		_ = analysisSubmitCmd.Flags().Set("location", "")
		_ = analysisSubmitCmd.Flags().Set("frequency", "")
	})

	c := criteriaFromFlags(analysisSubmitCmd)
	assert.Equal(t, "Berlin", c.Location)
	assert.Equal(t, analysis.FrequencyMonthly, c.PurchaseFrequency)
	assert.Equal(t, analysis.Age18To24, c.AgeRange, "unset flags keep defaults")
	assert.Empty(t, c.StartDate)
}

func TestSubmitFlagsCoverEveryField(t *testing.T) {
	seen := map[analysis.Field]bool{}
	for _, f := range submitFlags {
		seen[f.field] = true
		assert.NotNil(t, analysisSubmitCmd.Flags().Lookup(f.name), f.name)
	}
	for _, f := range analysis.Fields {
		assert.True(t, seen[f], "no flag for %s", f)
	}
}

func TestAnalysisCommands_EndToEnd(t *testing.T) {
	cfg = config.Defaults()
	cfg.DataDir = t.TempDir()
	cfg.ExportDir = filepath.Join(t.TempDir(), "exports")

	var out bytes.Buffer
	analysisListCmd.SetOut(&out)
	require.NoError(t, analysisListCmd.RunE(analysisListCmd, nil))
	assert.Contains(t, out.String(), "No analyses yet.")

	out.Reset()
	exportSalesCmd.SetOut(&out)
	require.NoError(t, exportSalesCmd.RunE(exportSalesCmd, nil))
	assert.Contains(t, out.String(), filepath.Join(cfg.ExportDir, "sales-"))
}

func TestConfigShow_HintsSetupWithoutConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Chdir(dir)
	cfg = config.Defaults()

	var out bytes.Buffer
	configShowCmd.SetOut(&out)
	require.NoError(t, configShowCmd.RunE(configShowCmd, nil))
	assert.Contains(t, out.String(), "run 'insightr setup'")
	assert.Contains(t, out.String(), "data_dir:")

	require.NoError(t, config.WriteGlobal(config.Defaults()))
	out.Reset()
	require.NoError(t, configShowCmd.RunE(configShowCmd, nil))
	assert.True(t, strings.HasPrefix(out.String(), "# "+config.GlobalPath()+"\n"), out.String())
}

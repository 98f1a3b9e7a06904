package tui

import (
	"errors"
	"testing"
	"time"

	"charm.land/bubbles/v2/spinner"
	"github.com/mark3labs/insightr/internal/store"
	"github.com/mark3labs/insightr/internal/tui/testfixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoAnalyses() []*store.Analysis {
	first := testfixtures.SampleAnalysis()
	second := testfixtures.SampleAnalysis()
	second.ID = "cmfixture00000000001"
	second.Criteria.Location = "Porto"
	second.Name = store.NameFor(second.Criteria)
	second.Source = store.SourceMCP
	second.SubmittedAt = testfixtures.FixedTime.Add(time.Hour)
	second.Archived = true
	return []*store.Analysis{second, first}
}

func newOpenAnalyses(t *testing.T) *AnalysesModal {
	t.Helper()
	m := NewAnalysesModal(testfixtures.NewMockSource())
	m.SetSize(testfixtures.TestTermWidth, testfixtures.TestTermHeight)
	m.Open()
	require.True(t, m.IsVisible())
	return m
}

func TestAnalysesModal_Loading(t *testing.T) {
	m := newOpenAnalyses(t)

	out := testfixtures.Plain(m.Render())
	assert.Contains(t, out, "Submitted Analyses")
	assert.Contains(t, out, "Loading analyses...")
	assert.Nil(t, m.Selected())
}

func TestAnalysesModal_Empty(t *testing.T) {
	m := newOpenAnalyses(t)
	m.SetAnalyses(nil, nil)

	assert.Contains(t, testfixtures.Plain(m.Render()), "No analyses yet")
	assert.Nil(t, m.Update(press("e")), "nothing to export")
}

func TestAnalysesModal_LoadError(t *testing.T) {
	m := newOpenAnalyses(t)
	m.SetAnalyses(nil, errors.New("stream gone"))

	assert.Contains(t, testfixtures.Plain(m.Render()), "Failed to load analyses: stream gone")
}

func TestAnalysesModal_ListAndReport(t *testing.T) {
	m := newOpenAnalyses(t)
	list := twoAnalyses()
	m.SetAnalyses(list, nil)

	out := testfixtures.Plain(m.Render())
	assert.Contains(t, out, "▸ ")
	assert.Contains(t, out, "mcp")
	assert.Contains(t, out, "archived")
	assert.Contains(t, out, "buyers-25-34-porto")
	assert.Same(t, list[0], m.Selected())
}

func TestAnalysesModal_Selection(t *testing.T) {
	m := newOpenAnalyses(t)
	list := twoAnalyses()
	m.SetAnalyses(list, nil)

	m.Update(press("down"))
	assert.Same(t, list[1], m.Selected())
	m.Update(press("j"))
	assert.Same(t, list[1], m.Selected(), "stops at the last entry")

	m.Update(press("up"))
	assert.Same(t, list[0], m.Selected())
	m.Update(press("k"))
	assert.Same(t, list[0], m.Selected(), "stops at the first entry")
}

func TestAnalysesModal_ShrinkingListClampsCursor(t *testing.T) {
	m := newOpenAnalyses(t)
	list := twoAnalyses()
	m.SetAnalyses(list, nil)
	m.Update(press("down"))

	m.SetAnalyses(list[:1], nil)
	assert.Same(t, list[0], m.Selected())
}

func TestAnalysesModal_ExportSelected(t *testing.T) {
	m := newOpenAnalyses(t)
	list := twoAnalyses()
	m.SetAnalyses(list, nil)
	m.Update(press("down"))

	cmd := m.Update(press("e"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(ExportAnalysisMsg)
	require.True(t, ok)
	assert.Same(t, list[1], msg.Analysis)
}

func TestAnalysesModal_Close(t *testing.T) {
	for _, key := range []string{"esc", "q"} {
		t.Run(key, func(t *testing.T) {
			m := newOpenAnalyses(t)
			m.Update(press(key))
			assert.False(t, m.IsVisible())
		})
	}
}

func TestAnalysesModal_SpinnerOnlyWhileLoading(t *testing.T) {
	m := NewAnalysesModal(testfixtures.NewMockSource())
	require.NotNil(t, m.Open(), "open starts the spinner")

	m.SetAnalyses(nil, nil)
	assert.Nil(t, m.Update(spinner.TickMsg{}), "ticks stop once loaded")
}

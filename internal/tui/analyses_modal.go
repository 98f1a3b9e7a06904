package tui

import (
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/insightr/internal/metrics"
	"github.com/mark3labs/insightr/internal/report"
	"github.com/mark3labs/insightr/internal/store"
	"github.com/mark3labs/insightr/internal/tui/theme"
)

const (
	analysesListWidth = 32
	analysesMaxWidth  = 120
)

// ExportAnalysisMsg asks the app to export the report of one analysis.
type ExportAnalysisMsg struct {
	Analysis *store.Analysis
}

// AnalysesModal lists submitted analyses and shows the selected one as a
// rendered markdown report.
type AnalysesModal struct {
	source   metrics.Source
	analyses []*store.Analysis
	cursor   int
	loading  bool
	err      error
	visible  bool
	report   viewport.Model
	spinner  spinner.Model // Loading spinner
	width    int
	height   int
}

// NewAnalysesModal creates a hidden analyses modal.
func NewAnalysesModal(source metrics.Source) *AnalysesModal {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Current().S().Accent

	return &AnalysesModal{
		source:  source,
		report:  viewport.New(),
		spinner: sp,
		width:   analysesMaxWidth,
		height:  30,
	}
}

// Open shows the modal in its loading state. The caller loads the list and
// delivers it with SetAnalyses.
func (m *AnalysesModal) Open() tea.Cmd {
	m.visible = true
	m.loading = true
	m.err = nil
	return m.spinner.Tick
}

// Close hides the modal.
func (m *AnalysesModal) Close() {
	m.visible = false
}

// IsVisible returns whether the modal is currently visible.
func (m *AnalysesModal) IsVisible() bool {
	return m.visible
}

// SetAnalyses replaces the list and keeps the selection in range.
func (m *AnalysesModal) SetAnalyses(analyses []*store.Analysis, err error) {
	m.loading = false
	m.err = err
	m.analyses = analyses
	if m.cursor >= len(analyses) {
		m.cursor = max(0, len(analyses)-1)
	}
	m.renderReport()
}

// Selected returns the highlighted analysis, or nil when the list is empty.
func (m *AnalysesModal) Selected() *store.Analysis {
	if m.cursor < 0 || m.cursor >= len(m.analyses) {
		return nil
	}
	return m.analyses[m.cursor]
}

// SetSize fits the modal inside a width x height terminal.
func (m *AnalysesModal) SetSize(width, height int) {
	m.width = max(analysesListWidth+20, min(analysesMaxWidth, width-4))
	m.height = max(10, height-4)
	frame := theme.Current().S().Modal
	m.report.SetWidth(m.reportWidth())
	m.report.SetHeight(max(1, m.height-frame.GetVerticalFrameSize()-2))
	m.renderReport()
}

func (m *AnalysesModal) reportWidth() int {
	inner := m.width - theme.Current().S().Modal.GetHorizontalFrameSize()
	return max(10, inner-analysesListWidth-sectionGap)
}

// Update handles keys while the modal is visible.
func (m *AnalysesModal) Update(msg tea.Msg) tea.Cmd {
	if tick, ok := msg.(spinner.TickMsg); ok {
		if !m.loading {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(tick)
		return cmd
	}

	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "esc", "q":
		m.Close()
		return nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.renderReport()
		}
		return nil
	case "down", "j":
		if m.cursor < len(m.analyses)-1 {
			m.cursor++
			m.renderReport()
		}
		return nil
	case "e":
		if a := m.Selected(); a != nil {
			return func() tea.Msg { return ExportAnalysisMsg{Analysis: a} }
		}
		return nil
	}
	var cmd tea.Cmd
	m.report, cmd = m.report.Update(msg)
	return cmd
}

// renderReport refreshes the report pane for the selected analysis.
func (m *AnalysesModal) renderReport() {
	s := theme.Current().S()
	a := m.Selected()
	if a == nil {
		m.report.SetContent(s.Muted.Render("Press n on the dashboard to start a new analysis."))
		return
	}

	md, err := report.Markdown(a, m.source)
	if err == nil {
		md, err = report.Render(md, m.reportWidth())
	}
	if err != nil {
		m.report.SetContent(s.Error.Render("Failed to render report: " + err.Error()))
		return
	}
	m.report.SetContent(md)
	m.report.GotoTop()
}

// Draw renders the modal centered over area.
func (m *AnalysesModal) Draw(scr uv.Screen, area uv.Rectangle) {
	if !m.visible {
		return
	}
	DrawCentered(scr, area, m.Render())
}

// Render builds the modal content.
func (m *AnalysesModal) Render() string {
	s := theme.Current().S()
	inner := m.width - s.Modal.GetHorizontalFrameSize()

	title := s.ModalTitle.Render("Submitted Analyses")
	hints := HintAnalyses() + s.HintSeparator.Render(" . ") + RenderHint("e", "export")
	header := title + "  " + ansi.Truncate(hints, max(0, inner-lipgloss.Width(title)-2), "…")

	var body string
	switch {
	case m.loading:
		body = m.spinner.View() + " " + s.Muted.Render("Loading analyses...")
	case m.err != nil:
		body = s.Error.Render("Failed to load analyses: " + m.err.Error())
	case len(m.analyses) == 0:
		body = s.Muted.Render("No analyses yet. Press n on the dashboard to start one.")
	default:
		body = joinRow(m.renderList(), m.report.View())
	}

	return s.Modal.Width(m.width).Render(header + "\n\n" + body)
}

func (m *AnalysesModal) renderList() string {
	s := theme.Current().S()
	var b strings.Builder
	for i, a := range m.analyses {
		marker := "  "
		nameStyle := s.Text
		if i == m.cursor {
			marker = s.Accent.Render("▸ ")
			nameStyle = s.StepActive
		}
		name := ansi.Truncate(a.Name, analysesListWidth-2, "…")
		meta := a.SubmittedAt.Format("Jan 2 15:04") + " · " + a.Source
		if a.Archived {
			meta += " · archived"
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(marker + nameStyle.Render(name) + "\n")
		b.WriteString("  " + s.Muted.Render(ansi.Truncate(meta, analysesListWidth-2, "…")))
	}
	return lipgloss.NewStyle().Width(analysesListWidth).Render(b.String())
}

// Package tui implements the full-screen dashboard: navigation bar, metric
// cards, charts, the sales table and the New Analysis wizard.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/insightr/internal/analysis"
	"github.com/mark3labs/insightr/internal/logger"
	"github.com/mark3labs/insightr/internal/metrics"
	"github.com/mark3labs/insightr/internal/report"
	"github.com/mark3labs/insightr/internal/state"
	"github.com/mark3labs/insightr/internal/store"
	"github.com/mark3labs/insightr/internal/tui/theme"
)

// errNoStore is reported when the app runs without an analysis store.
var errNoStore = errors.New("analysis store unavailable")

// Options configures an App.
type Options struct {
	// DataDir holds ui-state.json
	DataDir string
	// ExportDir receives CSV and report exports
	ExportDir string
	// Validate holds wizard submissions until the criteria are valid
	Validate bool
	// MCPURL is shown in the footer when the MCP server is running
	MCPURL string
	// Now overrides the clock used for export file names
	Now func() time.Time
	// OnSubmitted runs after a wizard submission is recorded, off the UI loop
	OnSubmitted func(*store.Analysis)
}

// App is the main Bubbletea model that manages the TUI application.
type App struct {
	// View components
	header    *Header
	dashboard *Dashboard
	footer    *Footer
	wizard    *WizardModal
	analyses  *AnalysesModal
	toast     *Toast

	layout Layout

	store     *store.Store
	source    metrics.Source
	ctx       context.Context
	dataDir   string
	exportDir string
	now       func() time.Time
	onSubmit  func(*store.Analysis)
	width     int
	height    int
	quitting  bool
}

// NewApp creates the dashboard over source, recording wizard submissions in
// st. UI preferences are restored from opts.DataDir.
func NewApp(ctx context.Context, st *store.Store, source metrics.Source, opts Options) *App {
	uiState := state.Load(opts.DataDir)

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	a := &App{
		header:    NewHeader(),
		dashboard: NewDashboard(source, uiState.Charts.Visible),
		footer:    NewFooter(opts.MCPURL),
		analyses:  NewAnalysesModal(source),
		toast:     NewToast(),
		store:     st,
		source:    source,
		ctx:       ctx,
		dataDir:   opts.DataDir,
		exportDir: opts.ExportDir,
		now:       now,
		onSubmit:  opts.OnSubmitted,
	}
	a.wizard = NewWizardModal(opts.Validate, a.submitCmd)
	return a
}

// Init loads the analyses count shown in the welcome panel.
func (a *App) Init() tea.Cmd {
	return a.loadAnalyses()
}

// Update handles incoming messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return a.handleKeyPress(msg)

	case tea.MouseWheelMsg:
		if a.wizard.IsVisible() {
			return a, nil
		}
		if a.analyses.IsVisible() {
			return a, a.analyses.Update(msg)
		}
		return a, a.dashboard.Update(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout = CalculateLayout(a.width, a.height)
		a.propagateSizes()
		return a, nil

	case AnalysisSubmittedMsg:
		logger.Info("Analysis %s submitted from %s", msg.Analysis.ID, msg.Analysis.Source)
		text := "Analysis submitted: " + msg.Analysis.Name
		if msg.Analysis.Source == store.SourceMCP {
			text = "Analysis received via MCP: " + msg.Analysis.Name
		}
		cmds := []tea.Cmd{a.toast.Show(text), a.loadAnalyses()}
		if msg.Analysis.Source == store.SourceTUI {
			cmds = append(cmds, a.afterSubmitCmd(msg.Analysis))
		}
		return a, tea.Batch(cmds...)

	case AnalysisFailedMsg:
		logger.Error("Analysis submission failed: %v", msg.Err)
		return a, a.toast.ShowError("Submission failed: " + msg.Err.Error())

	case AnalysesLoadedMsg:
		if msg.Err != nil {
			logger.Warn("Failed to load analyses: %v", msg.Err)
		} else {
			a.dashboard.SetAnalysisCount(len(msg.Analyses))
		}
		if a.analyses.IsVisible() {
			a.analyses.SetAnalyses(msg.Analyses, msg.Err)
		}
		return a, nil

	case ExportAnalysisMsg:
		return a, a.exportAnalysisCmd(msg.Analysis)

	case ExportDoneMsg:
		if msg.Err != nil {
			logger.Error("%s export failed: %v", msg.Kind, msg.Err)
			return a, a.toast.ShowError("Export failed: " + msg.Err.Error())
		}
		logger.Info("%s exported to %s", msg.Kind, msg.Path)
		return a, a.toast.Show("Exported to " + msg.Path)

	case ShowToastMsg, ToastDismissMsg:
		return a, a.toast.Update(msg)
	}

	// Cursor blinks and spinner ticks go to the open modal
	switch {
	case a.wizard.IsVisible():
		return a, a.wizard.Update(msg)
	case a.analyses.IsVisible():
		return a, a.analyses.Update(msg)
	}
	return a, nil
}

// handleKeyPress processes keyboard input using hierarchical priority routing.
// Priority: Global Keys (ctrl+c) → Wizard → Analyses Modal → Dashboard
func (a *App) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	// 0. Global keys work everywhere, even with a modal open
	if msg.String() == "ctrl+c" {
		a.quitting = true
		return a, tea.Quit
	}

	// 1. Wizard captures all keys while open
	if a.wizard.IsVisible() {
		return a, a.wizard.Update(msg)
	}

	// 2. Analyses modal
	if a.analyses.IsVisible() {
		return a, a.analyses.Update(msg)
	}

	// 3. Dashboard shortcuts, then scrolling
	switch msg.String() {
	case "q":
		a.quitting = true
		return a, tea.Quit
	case KeyNew:
		return a, a.wizard.Open()
	case KeyAnalyses:
		return a, tea.Batch(a.analyses.Open(), a.loadAnalyses())
	case KeyExportCSV:
		return a, a.exportCSVCmd()
	case KeyExportRpt:
		return a, a.exportReportCmd()
	case KeyToggleGrid:
		a.dashboard.SetChartsVisible(!a.dashboard.ChartsVisible())
		a.saveUIState()
		return a, nil
	}
	return a, a.dashboard.Update(msg)
}

// submitCmd records criteria handed over by the wizard.
func (a *App) submitCmd(c analysis.FilterCriteria) tea.Cmd {
	st := a.store
	ctx := a.ctx
	return func() tea.Msg {
		if st == nil {
			return AnalysisFailedMsg{Err: errNoStore}
		}
		an, err := st.Submit(ctx, c, store.SubmitParams{Source: store.SourceTUI})
		if err != nil {
			return AnalysisFailedMsg{Err: err}
		}
		return AnalysisSubmittedMsg{Analysis: an}
	}
}

// afterSubmitCmd runs the OnSubmitted callback as a command of its own.
func (a *App) afterSubmitCmd(an *store.Analysis) tea.Cmd {
	after := a.onSubmit
	if after == nil {
		return nil
	}
	return func() tea.Msg {
		after(an)
		return nil
	}
}

// loadAnalyses fetches the analyses list, newest first.
func (a *App) loadAnalyses() tea.Cmd {
	st := a.store
	ctx := a.ctx
	return func() tea.Msg {
		if st == nil {
			return AnalysesLoadedMsg{Err: errNoStore}
		}
		list, err := st.List(ctx, store.ListParams{})
		return AnalysesLoadedMsg{Analyses: list, Err: err}
	}
}

func (a *App) exportCSVCmd() tea.Cmd {
	dir, src, now := a.exportDir, a.source, a.now()
	return func() tea.Msg {
		path, err := report.ExportSalesCSV(dir, src.Sales(), now)
		return ExportDoneMsg{Kind: "CSV", Path: path, Err: err}
	}
}

func (a *App) exportReportCmd() tea.Cmd {
	dir, src, now := a.exportDir, a.source, a.now()
	return func() tea.Msg {
		path, err := report.ExportDashboardReport(dir, src, now)
		return ExportDoneMsg{Kind: "Report", Path: path, Err: err}
	}
}

func (a *App) exportAnalysisCmd(an *store.Analysis) tea.Cmd {
	dir, src := a.exportDir, a.source
	return func() tea.Msg {
		path, err := report.ExportReport(dir, an, src)
		if err != nil {
			err = fmt.Errorf("analysis %s: %w", an.ID, err)
		}
		return ExportDoneMsg{Kind: "Analysis report", Path: path, Err: err}
	}
}

// saveUIState persists the current UI state to disk.
func (a *App) saveUIState() {
	uiState := &state.UIState{
		Charts: state.ChartsState{
			Visible: a.dashboard.ChartsVisible(),
		},
	}
	if err := state.Save(a.dataDir, uiState); err != nil {
		logger.Warn("failed to save UI state: %v", err)
	}
}

// View renders the current view. In Bubbletea v2, this returns tea.View
// with display options like AltScreen and MouseMode.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	view.WindowTitle = "insightr"

	if a.quitting {
		// Return minimal view when quitting - exit alt screen for proper terminal restoration
		view.AltScreen = false
		view.MouseMode = 0
		view.Content = lipgloss.NewLayer("")
		return view
	}

	canvas := uv.NewScreenBuffer(a.width, a.height)
	view.Cursor = a.Draw(canvas, canvas.Bounds())
	view.Content = lipgloss.NewLayer(canvas.Render())
	view.BackgroundColor = theme.HexToColor(theme.Current().BgBase)

	return view
}

// Draw renders all components to the screen buffer.
func (a *App) Draw(scr uv.Screen, area uv.Rectangle) *tea.Cursor {
	a.header.Draw(scr, a.layout.Header)
	cursor := a.dashboard.Draw(scr, a.layout.Content)

	switch {
	case a.wizard.IsVisible():
		a.footer.SetHints(HintWizard())
	case a.analyses.IsVisible():
		a.footer.SetHints(HintAnalyses())
	default:
		a.footer.SetHints(HintDashboard())
	}
	a.footer.Draw(scr, a.layout.Footer)

	// Overlays
	a.analyses.Draw(scr, a.layout.Content)
	a.wizard.Draw(scr, a.layout.Content)

	// Draw toast last so it appears on top of everything
	if toastContent := a.toast.View(area.Dx()); toastContent != "" {
		// Bottom-right, just above the footer
		contentWidth := lipgloss.Width(toastContent)
		contentHeight := lipgloss.Height(toastContent)
		toastX := max(area.Min.X, area.Max.X-contentWidth-1)
		toastY := max(area.Min.Y, a.layout.Footer.Min.Y-contentHeight)
		uv.NewStyledString(toastContent).Draw(scr, uv.Rect(toastX, toastY, contentWidth, contentHeight))
	}

	return cursor
}

// propagateSizes pushes the current layout to every component.
func (a *App) propagateSizes() {
	a.header.SetLayoutMode(a.layout.Mode)
	a.dashboard.SetSize(a.layout.Content.Dx(), a.layout.Content.Dy(), a.layout.Mode)
	a.wizard.SetSize(a.width, a.height)
	a.analyses.SetSize(a.layout.Content.Dx(), a.layout.Content.Dy())
}

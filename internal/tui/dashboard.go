package tui

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/table"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/insightr/internal/chart"
	"github.com/mark3labs/insightr/internal/metrics"
	"github.com/mark3labs/insightr/internal/tui/theme"
)

const (
	// sectionGap is the number of blank columns between side-by-side panels
	sectionGap = 2
	// chartHeight is the plot height of every chart in rows
	chartHeight = 8
	// salesDateLayout formats the Last Purchase column
	salesDateLayout = "Jan 2, 2006"
)

// Dashboard renders the scrollable main content: welcome panel, metric
// cards, the charts grid and the sales history table.
type Dashboard struct {
	source        metrics.Source
	viewport      viewport.Model
	sales         table.Model
	chartsVisible bool
	analyses      int
	layoutMode    LayoutMode
	width         int
	height        int
}

// NewDashboard creates a dashboard over source.
func NewDashboard(source metrics.Source, chartsVisible bool) *Dashboard {
	return &Dashboard{
		source:        source,
		viewport:      viewport.New(),
		chartsVisible: chartsVisible,
	}
}

// SetSize resizes the viewport and rebuilds the content for the new width.
func (d *Dashboard) SetSize(width, height int, mode LayoutMode) {
	d.width = width
	d.height = height
	d.layoutMode = mode
	d.viewport.SetWidth(width)
	d.viewport.SetHeight(height)
	d.refresh()
}

// SetChartsVisible shows or hides the charts grid.
func (d *Dashboard) SetChartsVisible(v bool) {
	d.chartsVisible = v
	d.refresh()
}

// ChartsVisible reports whether the charts grid is shown.
func (d *Dashboard) ChartsVisible() bool {
	return d.chartsVisible
}

// SetAnalysisCount updates the number shown in the welcome panel.
func (d *Dashboard) SetAnalysisCount(n int) {
	d.analyses = n
	d.refresh()
}

// Update forwards scroll keys to the viewport.
func (d *Dashboard) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return cmd
}

// Draw renders the visible part of the dashboard.
func (d *Dashboard) Draw(scr uv.Screen, area uv.Rectangle) *tea.Cursor {
	DrawText(scr, area, d.viewport.View())
	if d.viewport.TotalLineCount() > d.viewport.Height() {
		DrawScrollIndicator(scr, area, d.viewport.ScrollPercent())
	}
	return nil
}

func (d *Dashboard) refresh() {
	if d.width <= 0 {
		return
	}
	d.sales = newSalesTable(d.source.Sales(), d.salesInnerWidth())
	d.viewport.SetContent(d.Render())
}

// Render builds the full dashboard content at the current width.
func (d *Dashboard) Render() string {
	sections := []string{d.renderWelcome(), d.renderCards()}
	if d.chartsVisible {
		sections = append(sections, d.renderCharts())
	}
	sections = append(sections, d.renderSales())
	return strings.Join(sections, "\n\n")
}

func (d *Dashboard) renderWelcome() string {
	s := theme.Current().S()

	welcome := s.Title.Render("Welcome to your Business") + "\n\n" +
		s.Muted.Render("Track your business metrics and analyze customer behavior") + "\n\n" +
		button("View Details", KeyAnalyses, true)

	count := "No analyses submitted yet"
	if d.analyses == 1 {
		count = "1 analysis submitted"
	} else if d.analyses > 1 {
		count = fmt.Sprintf("%d analyses submitted", d.analyses)
	}
	products := s.Title.Render("Products Under Analysis") + "\n" +
		s.Muted.Render(count) + "\n\n" +
		button("⤓ Export Analysis (CSV)", KeyExportCSV, true) + "\n" +
		button("⊕ New Analysis", KeyNew, false)

	if d.layoutMode == LayoutCompact {
		return panel("", welcome, d.width) + "\n" + panel("", products, d.width)
	}

	left := (d.width - sectionGap) * 2 / 3
	right := d.width - sectionGap - left
	bodies := equalize([]string{welcome, products})
	return joinRow(panel("", bodies[0], left), panel("", bodies[1], right))
}

// columns returns how many cards or charts fit side by side.
func (d *Dashboard) columns(desktop int) int {
	switch {
	case d.layoutMode == LayoutDesktop:
		return desktop
	case d.width >= 60 && desktop > 2:
		return 2
	default:
		return 1
	}
}

func (d *Dashboard) renderCards() string {
	s := theme.Current().S()
	cards := d.source.Cards()
	cols := d.columns(3)
	w := cellWidth(d.width, cols)

	bodies := make([]string, len(cards))
	for i, c := range cards {
		bodies[i] = s.CardIcon.Render(c.Icon) + "  " + s.CardTitle.Render(c.Title) + "\n\n" +
			s.CardValue.Render(c.Display()) + "\n" +
			s.Muted.Render(c.SubValue)
	}

	var rows []string
	for start := 0; start < len(bodies); start += cols {
		end := min(start+cols, len(bodies))
		row := equalize(bodies[start:end])
		rendered := make([]string, len(row))
		for i, body := range row {
			rendered[i] = s.Card.Width(w).Render(body)
		}
		rows = append(rows, joinRow(rendered...))
	}
	return strings.Join(rows, "\n")
}

func (d *Dashboard) renderCharts() string {
	cols := d.columns(2)
	w := cellWidth(d.width, cols)
	inner := max(1, w-theme.Current().S().Panel.GetHorizontalFrameSize())

	type widget struct {
		title string
		body  string
	}
	widgets := []widget{
		{"Revenue Trend", chart.Area(d.source.Revenue(), inner, chartHeight)},
		{"Sales by Category", chart.Donut(d.source.Categories(), inner)},
		{"New vs Returning Customers", chart.GroupedBar(d.source.Customers(), inner, chartHeight)},
		{"Conversion Rate", chart.Line(d.source.Conversion(), inner, chartHeight)},
	}

	var rows []string
	for start := 0; start < len(widgets); start += cols {
		end := min(start+cols, len(widgets))
		bodies := make([]string, 0, end-start)
		for _, wd := range widgets[start:end] {
			bodies = append(bodies, wd.body)
		}
		bodies = equalize(bodies)
		rendered := make([]string, len(bodies))
		for i, body := range bodies {
			rendered[i] = panel(widgets[start+i].title, body, w)
		}
		rows = append(rows, joinRow(rendered...))
	}
	return strings.Join(rows, "\n")
}

func (d *Dashboard) salesInnerWidth() int {
	return max(1, d.width-theme.Current().S().Panel.GetHorizontalFrameSize())
}

func (d *Dashboard) renderSales() string {
	actions := button("Export Report", KeyExportRpt, false) + " " + button("View Analytics", KeyAnalyses, true)
	body := lipgloss.PlaceHorizontal(d.salesInnerWidth(), lipgloss.Right, actions) + "\n\n" + d.sales.View()
	return panel("Sales History", body, d.width)
}

// salesColumns lists the sales table headings in display order.
var salesColumns = []string{"Client", "LTV", "Avg. Ticket", "Days Active", "Last Purchase"}

// newSalesTable builds a read-only table of rows sized to width.
func newSalesTable(rows []metrics.SaleRow, width int) table.Model {
	s := theme.Current().S()

	// Each cell carries one column of padding on both sides
	avail := max(len(salesColumns), width-2*len(salesColumns))
	colW := avail / len(salesColumns)
	columns := make([]table.Column, len(salesColumns))
	for i, title := range salesColumns {
		columns[i] = table.Column{Title: title, Width: colW}
	}
	columns[0].Width += avail - colW*len(salesColumns)

	tableRows := make([]table.Row, len(rows))
	for i, r := range rows {
		tableRows[i] = table.Row{
			r.Client,
			metrics.FormatCurrency(r.LTV),
			metrics.FormatCurrency(r.AvgTicket),
			strconv.Itoa(r.DaysActive),
			r.LastPurchase.Format(salesDateLayout),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithHeight(len(tableRows)+2),
		table.WithWidth(width),
		table.WithFocused(false),
	)
	t.SetStyles(table.Styles{
		Header:   s.TableHeader,
		Cell:     s.TableCell,
		Selected: lipgloss.NewStyle(),
	})
	return t
}

// cellWidth splits width into n columns separated by sectionGap.
func cellWidth(width, n int) int {
	return max(1, (width-sectionGap*(n-1))/n)
}

// joinRow places blocks side by side separated by sectionGap.
func joinRow(blocks ...string) string {
	gap := strings.Repeat(" ", sectionGap)
	parts := make([]string, 0, 2*len(blocks))
	for i, b := range blocks {
		if i > 0 {
			parts = append(parts, gap)
		}
		parts = append(parts, b)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// equalize pads bodies with trailing lines so they share one height.
func equalize(bodies []string) []string {
	h := 0
	for _, b := range bodies {
		h = max(h, lipgloss.Height(b))
	}
	out := make([]string, len(bodies))
	for i, b := range bodies {
		out[i] = b + strings.Repeat("\n", h-lipgloss.Height(b))
	}
	return out
}

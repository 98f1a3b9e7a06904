package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/insightr/internal/tui/theme"
)

// DrawText renders plain text at a position
func DrawText(scr uv.Screen, area uv.Rectangle, text string) {
	uv.NewStyledString(text).Draw(scr, area)
}

// DrawStyled renders lipgloss-styled content at a position
func DrawStyled(scr uv.Screen, area uv.Rectangle, style lipgloss.Style, text string) {
	content := style.Width(area.Dx()).Height(area.Dy()).Render(text)
	uv.NewStyledString(content).Draw(scr, area)
}

// DrawCentered draws pre-rendered content in the middle of area, clipped to it.
func DrawCentered(scr uv.Screen, area uv.Rectangle, content string) {
	w := min(lipgloss.Width(content), area.Dx())
	h := min(lipgloss.Height(content), area.Dy())
	x := area.Min.X + (area.Dx()-w)/2
	y := area.Min.Y + (area.Dy()-h)/2
	uv.NewStyledString(content).Draw(scr, uv.Rect(x, y, w, h))
}

// DrawScrollIndicator renders a scroll position indicator
func DrawScrollIndicator(scr uv.Screen, area uv.Rectangle, percent float64) {
	indicator := fmt.Sprintf(" %d%% ", int(percent*100))

	// Position at bottom-right of area
	indicatorArea := uv.Rectangle{
		Min: uv.Position{X: area.Max.X - len(indicator), Y: area.Max.Y - 1},
		Max: uv.Position{X: area.Max.X, Y: area.Max.Y},
	}

	DrawStyled(scr, indicatorArea, theme.Current().S().HintKey, indicator)
}

// panelHeader builds the "Title ────────" header line used inside panels.
func panelHeader(title string, width int) string {
	s := theme.Current().S()
	styledTitle := s.PanelTitle.Render(title)
	ruleWidth := width - lipgloss.Width(styledTitle) - 1
	if ruleWidth < 0 {
		ruleWidth = 0
	}
	return styledTitle + " " + s.PanelRule.Render(strings.Repeat("─", ruleWidth))
}

// panel wraps body in a bordered box of the given outer width with a header.
func panel(title, body string, width int) string {
	s := theme.Current().S()
	inner := max(1, width-s.Panel.GetHorizontalFrameSize())
	content := body
	if title != "" {
		content = panelHeader(title, inner) + "\n" + body
	}
	return s.Panel.Width(width).Render(content)
}

// button renders a labelled button with its shortcut key.
func button(label, shortcut string, primary bool) string {
	s := theme.Current().S()
	style := s.ButtonSecondary
	if primary {
		style = s.ButtonPrimary
	}
	if shortcut != "" {
		label += " [" + shortcut + "]"
	}
	return style.Render(label)
}

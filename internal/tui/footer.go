package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/insightr/internal/tui/theme"
)

// Footer renders the bottom bar: key hints on the left, the MCP endpoint on
// the right when one is running.
type Footer struct {
	hints  string
	mcpURL string
}

// NewFooter creates a new Footer component.
func NewFooter(mcpURL string) *Footer {
	return &Footer{hints: HintDashboard(), mcpURL: mcpURL}
}

// SetHints replaces the hint bar, e.g. while a modal is open.
func (f *Footer) SetHints(hints string) {
	f.hints = hints
}

// Draw renders the footer to the screen at the given area.
func (f *Footer) Draw(scr uv.Screen, area uv.Rectangle) *tea.Cursor {
	if area.Dy() < 1 {
		return nil
	}
	s := theme.Current().S()
	DrawStyled(scr, area, s.Footer, f.Render(area.Dx()-s.Footer.GetHorizontalFrameSize()))
	return nil
}

// Render builds the footer content for the given inner width. The hints are
// truncated first so the MCP URL stays visible.
func (f *Footer) Render(width int) string {
	s := theme.Current().S()

	right := ""
	if f.mcpURL != "" {
		right = RenderHint("mcp", f.mcpURL)
	}
	rightWidth := lipgloss.Width(right)

	left := f.hints
	if avail := width - rightWidth - 1; lipgloss.Width(left) > avail {
		left = ansi.Truncate(left, max(0, avail), "…")
	}

	gap := width - lipgloss.Width(left) - rightWidth
	if gap < 0 {
		return ansi.Truncate(left+right, width, "")
	}
	return left + s.HintDesc.Render(strings.Repeat(" ", gap)) + right
}

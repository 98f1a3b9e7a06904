package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/insightr/internal/tui/theme"
)

// navLinks are the secondary destinations shown next to the title.
var navLinks = []string{"Projects", "Support", "Latest Pages"}

// Header renders the top navigation bar.
type Header struct {
	layoutMode LayoutMode
}

// NewHeader creates a new Header component.
func NewHeader() *Header {
	return &Header{}
}

// SetLayoutMode switches between the full and compact nav bar.
func (h *Header) SetLayoutMode(mode LayoutMode) {
	h.layoutMode = mode
}

// Draw renders the header to the screen at the given area.
// Returns nil cursor since header is non-interactive.
func (h *Header) Draw(scr uv.Screen, area uv.Rectangle) *tea.Cursor {
	if area.Dy() < 1 {
		return nil
	}
	s := theme.Current().S()
	DrawStyled(scr, area, s.NavBar, h.Render(area.Dx()-s.NavBar.GetHorizontalFrameSize()))
	return nil
}

// Render builds the nav bar content for the given inner width.
func (h *Header) Render(width int) string {
	s := theme.Current().S()

	left := s.NavTitle.Render("Analytics")
	if h.layoutMode == LayoutDesktop {
		links := make([]string, len(navLinks))
		for i, l := range navLinks {
			links[i] = s.NavLink.Render(l)
		}
		left += s.NavLink.Render("    ") + strings.Join(links, s.NavLink.Render("   "))
	}

	right := s.NavIcon.Render("⍾  ⚙  ") + s.NavAvatar.Render("●")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + s.NavLink.Render(strings.Repeat(" ", gap)) + right
}

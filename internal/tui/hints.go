package tui

import (
	"strings"

	"github.com/mark3labs/insightr/internal/tui/theme"
)

// Standard key representations for consistent hints across the app.
const (
	KeyUpDown     = "↑/↓"
	KeyLeftRight  = "←/→"
	KeyEnter      = "enter"
	KeyEsc        = "esc"
	KeyTab        = "tab"
	KeyPgUpDown   = "pgup/pgdn"
	KeyQuit       = "q"
	KeyNew        = "n"
	KeyExportCSV  = "x"
	KeyExportRpt  = "r"
	KeyAnalyses   = "a"
	KeyToggleGrid = "g"
)

// RenderHint renders a single key-description pair.
// Example: RenderHint("enter", "select") -> "enter select"
func RenderHint(key, desc string) string {
	s := theme.Current().S()
	return s.HintKey.Render(key) + s.HintDesc.Render(" "+desc)
}

// RenderHintBar renders a hint bar with multiple key-description pairs.
// Pairs are separated by " . ".
// Example: RenderHintBar("up/down", "scroll", "esc", "back")
// Returns: "up/down scroll . esc back"
func RenderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	s := theme.Current().S()
	var b strings.Builder
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(s.HintSeparator.Render(" . "))
		}
		b.WriteString(RenderHint(pairs[i], pairs[i+1]))
	}
	return b.String()
}

// HintDashboard returns the dashboard key hints.
func HintDashboard() string {
	return RenderHintBar(
		KeyNew, "new analysis",
		KeyExportCSV, "export csv",
		KeyExportRpt, "export report",
		KeyAnalyses, "analyses",
		KeyToggleGrid, "charts",
		KeyUpDown, "scroll",
		KeyQuit, "quit",
	)
}

// HintWizard returns hints for the New Analysis modal.
func HintWizard() string {
	return RenderHintBar(KeyTab, "focus", KeyLeftRight, "choose", KeyEnter, "confirm", KeyEsc, "close")
}

// HintAnalyses returns hints for the analyses modal.
func HintAnalyses() string {
	return RenderHintBar(KeyUpDown, "select", KeyPgUpDown, "scroll report", KeyEsc, "close")
}

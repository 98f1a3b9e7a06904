// Package theme holds the dashboard color palette and pre-built styles.
package theme

import (
	"image/color"
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name   string
	IsDark bool

	// Brand pinks, strongest first
	Primary   string // lipgloss.Color is built from these hex strings
	Secondary string
	Tertiary  string
	Accent    string

	// Background hierarchy (dark→light)
	BgBase    string
	BgPanel   string
	BgSurface string

	// Foreground hierarchy (dim→bright)
	FgMuted  string
	FgBase   string
	FgBright string

	Border string

	// Status colors
	Success string
	Warning string
	Error   string

	// Lazy-built styles
	styles     *Styles
	stylesOnce sync.Once
}

var (
	current   = NewPink()
	currentMu sync.RWMutex
)

// Current returns the active theme.
func Current() *Theme {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}

// SetCurrent replaces the active theme.
func SetCurrent(t *Theme) {
	currentMu.Lock()
	defer currentMu.Unlock()
	current = t
}

// HexToColor converts a "#RRGGBB" string to a color usable by tea.View.
func HexToColor(hex string) color.Color {
	return lipgloss.Color(hex)
}

// S returns the pre-built styles for this theme.
// Styles are lazily initialized on first call.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

// Series returns the chart series colors, strongest first.
func (t *Theme) Series() []string {
	return []string{t.Primary, t.Secondary, t.Tertiary, t.Accent}
}

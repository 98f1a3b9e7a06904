package tui

import uv "github.com/charmbracelet/ultraviolet"

// Layout breakpoints and dimensions
const (
	// CompactWidthBreakpoint is the minimum width for the desktop grid
	CompactWidthBreakpoint = 100
	// HeaderHeight is the height of the navigation bar in rows
	HeaderHeight = 1
	// FooterHeight is the height of the footer in rows
	FooterHeight = 1
)

// LayoutMode represents the layout mode based on terminal size
type LayoutMode int

const (
	// LayoutDesktop lays cards three across and charts two across
	LayoutDesktop LayoutMode = iota
	// LayoutCompact stacks panels in a single column
	LayoutCompact
)

// Layout defines the rectangular regions for all UI components
type Layout struct {
	Mode    LayoutMode
	Area    uv.Rectangle
	Header  uv.Rectangle
	Content uv.Rectangle
	Footer  uv.Rectangle
}

// IsCompact returns true if the layout is in compact mode
func (l Layout) IsCompact() bool {
	return l.Mode == LayoutCompact
}

// CalculateLayout computes the layout rectangles based on terminal dimensions
func CalculateLayout(width, height int) Layout {
	mode := LayoutDesktop
	if width < CompactWidthBreakpoint {
		mode = LayoutCompact
	}

	area := uv.Rectangle{
		Max: uv.Position{X: width, Y: height},
	}

	headerRect, rest := uv.SplitVertical(area, uv.Fixed(min(HeaderHeight, area.Dy())))
	contentRect, footerRect := uv.SplitVertical(rest, uv.Fixed(max(0, rest.Dy()-FooterHeight)))

	return Layout{
		Mode:    mode,
		Area:    area,
		Header:  headerRect,
		Content: contentRect,
		Footer:  footerRect,
	}
}

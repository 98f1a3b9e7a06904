package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateLayout_Standard(t *testing.T) {
	l := CalculateLayout(120, 40)

	assert.Equal(t, LayoutDesktop, l.Mode)
	assert.False(t, l.IsCompact())
	assert.Equal(t, 0, l.Header.Min.Y)
	assert.Equal(t, HeaderHeight, l.Header.Dy())
	assert.Equal(t, 40-HeaderHeight-FooterHeight, l.Content.Dy())
	assert.Equal(t, FooterHeight, l.Footer.Dy())
	assert.Equal(t, 39, l.Footer.Min.Y)
	assert.Equal(t, 120, l.Content.Dx())
}

func TestCalculateLayout_CompactModeTransition(t *testing.T) {
	assert.Equal(t, LayoutCompact, CalculateLayout(CompactWidthBreakpoint-1, 40).Mode)
	assert.Equal(t, LayoutDesktop, CalculateLayout(CompactWidthBreakpoint, 40).Mode)
}

func TestCalculateLayout_NoOverlaps(t *testing.T) {
	for _, size := range [][2]int{{120, 40}, {80, 24}, {40, 3}} {
		l := CalculateLayout(size[0], size[1])
		assert.LessOrEqual(t, l.Header.Max.Y, l.Content.Min.Y)
		assert.LessOrEqual(t, l.Content.Max.Y, l.Footer.Min.Y)
		assert.Equal(t, size[1], l.Header.Dy()+l.Content.Dy()+l.Footer.Dy())
	}
}

func TestCalculateLayout_Minimum(t *testing.T) {
	l := CalculateLayout(10, 1)
	assert.Equal(t, 1, l.Header.Dy())
	assert.Equal(t, 0, l.Content.Dy())
	assert.Equal(t, 0, l.Footer.Dy())
}

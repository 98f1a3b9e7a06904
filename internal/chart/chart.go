// Package chart draws small text charts for the dashboard panels.
package chart

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/insightr/internal/metrics"
)

// Palette holds the series colors, strongest first.
var Palette = []string{"#FF45A6", "#FF85C0", "#FFB6D9", "#FFE6F2"}

// Empty is rendered in place of a chart with nothing to show.
const Empty = "No data"

// eighths are partial block glyphs used for the top cell of a column.
var eighths = []string{" ", "▁", "▂", "▃", "▄", "▅", "▆", "▇"}

func paint(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(Palette[i%len(Palette)]))
}

var axisStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))

// Area draws a filled column plot, one column group per point.
func Area(points []metrics.Point, width, height int) string {
	if len(points) == 0 || width <= 0 || height <= 0 {
		return Empty
	}

	hi := maxOf(points)
	axis := newAxis(0, hi, height)
	colW := columnWidth(width-axis.width-1, len(points))

	var b strings.Builder
	for row := height; row >= 1; row-- {
		b.WriteString(axis.label(row))
		for _, p := range points {
			b.WriteString(paint(0).Render(strings.Repeat(cell(p.Value, hi, height, row), colW)))
		}
		b.WriteByte('\n')
	}
	b.WriteString(axis.baseline(colW * len(points)))
	b.WriteString(axis.pad())
	for _, p := range points {
		b.WriteString(fit(p.Label, colW))
	}
	return b.String()
}

// GroupedBar draws two columns per category: new (first palette color) and
// returning (second), followed by a legend.
func GroupedBar(points []metrics.GroupedPoint, width, height int) string {
	if len(points) == 0 || width <= 0 || height <= 0 {
		return Empty
	}

	hi := 0.0
	for _, p := range points {
		hi = math.Max(hi, math.Max(p.New, p.Returning))
	}
	axis := newAxis(0, hi, height)
	groupW := columnWidth(width-axis.width-1, len(points))
	barW := max(1, (groupW-1)/2)
	gap := max(0, groupW-2*barW)

	var b strings.Builder
	for row := height; row >= 1; row-- {
		b.WriteString(axis.label(row))
		for _, p := range points {
			b.WriteString(paint(0).Render(strings.Repeat(cell(p.New, hi, height, row), barW)))
			b.WriteString(paint(1).Render(strings.Repeat(cell(p.Returning, hi, height, row), barW)))
			b.WriteString(strings.Repeat(" ", gap))
		}
		b.WriteByte('\n')
	}
	b.WriteString(axis.baseline(groupW * len(points)))
	b.WriteString(axis.pad())
	for _, p := range points {
		b.WriteString(fit(p.Label, groupW))
	}
	b.WriteByte('\n')
	b.WriteString(axis.pad())
	b.WriteString(paint(0).Render("■") + " New  " + paint(1).Render("■") + " Returning")
	return b.String()
}

// Line plots points on a grid scaled between the series min and max and
// joins neighbours with dotted segments.
func Line(points []metrics.Point, width, height int) string {
	if len(points) == 0 || width <= 0 || height <= 0 {
		return Empty
	}

	lo, hi := points[0].Value, points[0].Value
	for _, p := range points {
		lo = math.Min(lo, p.Value)
		hi = math.Max(hi, p.Value)
	}
	axis := newAxis(lo, hi, height)
	colW := columnWidth(width-axis.width-1, len(points))
	plotW := colW * len(points)

	rowOf := func(v float64) int {
		if hi == lo || height == 1 {
			return height / 2
		}
		return int(math.Round((v - lo) / (hi - lo) * float64(height-1)))
	}

	grid := make([][]string, height)
	for i := range grid {
		grid[i] = make([]string, plotW)
		for j := range grid[i] {
			grid[i][j] = " "
		}
	}

	xs := make([]int, len(points))
	for i := range points {
		xs[i] = i*colW + colW/2
	}
	for i := 1; i < len(points); i++ {
		x0, x1 := xs[i-1], xs[i]
		y0, y1 := float64(rowOf(points[i-1].Value)), float64(rowOf(points[i].Value))
		for x := x0 + 1; x < x1; x++ {
			t := float64(x-x0) / float64(x1-x0)
			y := int(math.Round(y0 + (y1-y0)*t))
			grid[y][x] = "·"
		}
	}
	for i, p := range points {
		grid[rowOf(p.Value)][xs[i]] = "●"
	}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		b.WriteString(axis.label(row))
		b.WriteString(paint(0).Render(strings.Join(grid[row-1], "")))
		b.WriteByte('\n')
	}
	b.WriteString(axis.baseline(plotW))
	b.WriteString(axis.pad())
	for _, p := range points {
		b.WriteString(fit(p.Label, colW))
	}
	return b.String()
}

// Donut draws the share of each point as a segmented ring bar of the given
// width followed by a legend with percentages.
func Donut(points []metrics.Point, width int) string {
	shares := Shares(points)
	if shares == nil || width <= 0 {
		return Empty
	}

	segs := apportion(shares, width)
	var b strings.Builder
	for i, n := range segs {
		b.WriteString(paint(i).Render(strings.Repeat("█", n)))
	}
	b.WriteByte('\n')

	labelW := 0
	for _, p := range points {
		labelW = max(labelW, ansi.StringWidth(p.Label))
	}
	for i, p := range points {
		b.WriteByte('\n')
		b.WriteString(paint(i).Render("●"))
		b.WriteString(fmt.Sprintf(" %-*s %5.1f%%", labelW, p.Label, shares[i]*100))
	}
	return b.String()
}

// Shares returns each point's fraction of the positive total. Negative
// values count as zero. Returns nil when there is nothing to divide.
func Shares(points []metrics.Point) []float64 {
	total := 0.0
	for _, p := range points {
		if p.Value > 0 {
			total += p.Value
		}
	}
	if total <= 0 {
		return nil
	}
	out := make([]float64, len(points))
	for i, p := range points {
		if p.Value > 0 {
			out[i] = p.Value / total
		}
	}
	return out
}

// apportion splits width cells by share using largest remainders so the
// segments always sum to width.
func apportion(shares []float64, width int) []int {
	segs := make([]int, len(shares))
	rems := make([]float64, len(shares))
	used := 0
	for i, s := range shares {
		exact := s * float64(width)
		segs[i] = int(exact)
		rems[i] = exact - float64(segs[i])
		used += segs[i]
	}
	for ; used < width; used++ {
		best := 0
		for i := range rems {
			if rems[i] > rems[best] {
				best = i
			}
		}
		segs[best]++
		rems[best] = -1
	}
	return segs
}

// cell returns the glyph for one row of a column of value v on a scale of
// [0, hi] spread over height rows. Row 1 is the bottom.
func cell(v, hi float64, height, row int) string {
	if hi <= 0 || v <= 0 {
		return " "
	}
	scaled := v / hi * float64(height)
	if scaled >= float64(row) {
		return "█"
	}
	frac := scaled - float64(row-1)
	if frac <= 0 {
		return " "
	}
	return eighths[int(frac*8)%len(eighths)]
}

func maxOf(points []metrics.Point) float64 {
	hi := 0.0
	for _, p := range points {
		hi = math.Max(hi, p.Value)
	}
	return hi
}

func columnWidth(avail, n int) int {
	return max(1, avail/n)
}

// fit centers s in w cells, truncating when it does not fit.
func fit(s string, w int) string {
	s = ansi.Truncate(s, w, "")
	sw := ansi.StringWidth(s)
	left := (w - sw) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", w-sw-left)
}

// axis renders the y-axis gutter with the top and bottom values.
type axis struct {
	top, bottom string
	height      int
	width       int
}

func newAxis(lo, hi float64, height int) axis {
	a := axis{top: compact(hi), bottom: compact(lo), height: height}
	a.width = max(ansi.StringWidth(a.top), ansi.StringWidth(a.bottom))
	return a
}

func (a axis) label(row int) string {
	text := ""
	switch {
	case row == a.height:
		text = a.top
	case row == 1:
		text = a.bottom
	}
	return axisStyle.Render(fmt.Sprintf("%*s│", a.width, text))
}

func (a axis) baseline(n int) string {
	return axisStyle.Render(strings.Repeat(" ", a.width)+"└"+strings.Repeat("─", n)) + "\n"
}

func (a axis) pad() string {
	return strings.Repeat(" ", a.width+1)
}

// compact formats axis values: 6000 -> 6k, 75 -> 75.
func compact(v float64) string {
	switch {
	case math.Abs(v) >= 1_000_000:
		return trimZero(v/1_000_000) + "M"
	case math.Abs(v) >= 1000:
		return trimZero(v/1000) + "k"
	default:
		return trimZero(v)
	}
}

func trimZero(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}

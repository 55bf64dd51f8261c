package view

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sensordonut/sensordonut/internal/card"
	"github.com/sensordonut/sensordonut/internal/render"
)

// Terminal cells are roughly twice as tall as they are wide, so each ring
// row spans two columns per unit of radius.
const (
	cellsPerPixel = 1.0 / 16
	minRingRadius = 3
	maxRingRadius = 8
	ringBlock     = "█"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(TextColor))
	textStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(TextColor))
	valueStyle = textStyle.Bold(true)
	nameStyle  = textStyle.Faint(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ErrorColor))
)

// Terminal renders m as a block of styled text no wider than width columns
// when width > 0. Columns that do not fit wrap onto more rows. Manual pixel
// offsets have no terminal equivalent; offset blocks keep their position.
func Terminal(m render.Model, width int) string {
	blocks := make([]string, len(m.Items))
	var cellW int
	for i, it := range m.Items {
		if it.Placeholder != nil {
			blocks[i] = errorStyle.Render(it.Placeholder.Message)
		} else {
			blocks[i] = terminalDonut(it.Donut)
		}
		cellW = max(cellW, lipgloss.Width(blocks[i]))
	}

	gap := max(1, int(math.Round(m.Gap*cellsPerPixel*2)))
	cols := max(1, m.Columns)
	if width > 0 {
		for cols > 1 && cols*cellW+(cols-1)*gap > width {
			cols--
		}
	}

	var rows []string
	for start := 0; start < len(blocks); start += cols {
		end := min(start+cols, len(blocks))
		var row []string
		for i := start; i < end; i++ {
			if i > start {
				row = append(row, strings.Repeat(" ", gap))
			}
			row = append(row, lipgloss.PlaceHorizontal(cellW, lipgloss.Center, blocks[i]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)

	if m.Title == "" {
		return grid
	}
	gridW := max(lipgloss.Width(grid), lipgloss.Width(m.Title))
	if width > 0 {
		gridW = max(gridW, width)
	}
	title := lipgloss.PlaceHorizontal(gridW, lipgloss.Center, titleStyle.Render(m.Title))
	return lipgloss.JoinVertical(lipgloss.Left, title, "", grid)
}

func terminalDonut(d *render.Descriptor) string {
	ring := Ring(d, ringInside(d))

	var above, below, left, right []string
	for _, g := range d.Layout.Outside() {
		lines := make([]string, 0, len(g.Blocks)+1)
		for _, b := range g.Blocks {
			lines = append(lines, styledBlock(d, b))
		}
		switch g.Position {
		case card.PositionAbove:
			above = lines
		case card.PositionBelow:
			below = lines
		case card.PositionLeft:
			left = lines
		case card.PositionRight:
			right = lines
		}
	}

	middle := []string{ring}
	if len(left) > 0 {
		middle = append([]string{lipgloss.JoinVertical(lipgloss.Right, left...), " "}, middle...)
	}
	if len(right) > 0 {
		middle = append(middle, " ", lipgloss.JoinVertical(lipgloss.Left, right...))
	}

	parts := append([]string{}, above...)
	parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Center, middle...))
	parts = append(parts, below...)
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func ringInside(d *render.Descriptor) []string {
	var out []string
	for _, b := range d.Layout.Inside() {
		out = append(out, blockText(d, b))
	}
	return out
}

func styledBlock(d *render.Descriptor, kind render.BlockKind) string {
	if kind == render.BlockValue {
		return valueStyle.Render(d.ValueText)
	}
	return nameStyle.Render(d.Name)
}

// RingRadius maps a donut's pixel size onto a radius in terminal rows.
func RingRadius(size float64) int {
	r := int(math.Round(size * cellsPerPixel))
	return min(max(r, minRingRadius), maxRingRadius)
}

// Ring draws d's ring as a grid of block characters, progress clockwise from
// 12 o'clock in the donut color and the rest in the background color. Lines
// of inside text are centered in the hole when they fit.
func Ring(d *render.Descriptor, inside []string) string {
	r := RingRadius(d.Size)
	thick := 0.6
	if d.Size > 0 {
		thick = math.Max(thick, float64(r)*d.Thickness/d.Size*2)
	}
	outer := float64(r)
	inner := math.Max(0, outer-thick)
	rows, cols := 2*r+1, 4*r+2
	filled := d.Percentage / 100

	fg := lipgloss.NewStyle().Foreground(lipgloss.Color(TermColor(d.Color)))
	bg := lipgloss.NewStyle().Foreground(lipgloss.Color(TermColor(d.BackgroundColor)))

	textRow := r - (len(inside)-1)/2
	lines := make([]string, rows)
	for y := 0; y < rows; y++ {
		dy := float64(y - r)
		cells := make([]string, cols)
		holeStart, holeEnd := -1, -1
		for x := 0; x < cols; x++ {
			dx := (float64(x) + 0.5 - float64(cols)/2) / 2
			dist := math.Hypot(dx, dy)
			switch {
			case dist < inner-0.25:
				if holeStart < 0 {
					holeStart = x
				}
				holeEnd = x
				cells[x] = " "
			case dist > outer+0.25:
				cells[x] = " "
			default:
				theta := math.Atan2(dx, -dy)
				if theta < 0 {
					theta += 2 * math.Pi
				}
				if filled > 0 && theta/(2*math.Pi) <= filled {
					cells[x] = fg.Render(ringBlock)
				} else {
					cells[x] = bg.Render(ringBlock)
				}
			}
		}
		if i := y - textRow; i >= 0 && i < len(inside) && holeStart >= 0 {
			placeText(cells, inside[i], holeStart, holeEnd)
		}
		lines[y] = strings.Join(cells, "")
	}
	return strings.Join(lines, "\n")
}

// placeText centers text over cells[start..end] when it fits.
func placeText(cells []string, text string, start, end int) {
	span := end - start + 1
	w := lipgloss.Width(text)
	if w == 0 || w > span {
		return
	}
	pad := (span - w) / 2
	cells[start] = strings.Repeat(" ", pad) + textStyle.Render(text) + strings.Repeat(" ", span-pad-w)
	for x := start + 1; x <= end; x++ {
		cells[x] = ""
	}
}

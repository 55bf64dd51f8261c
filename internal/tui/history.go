package tui

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/lipgloss"

	"github.com/sensordonut/sensordonut/internal/render"
	"github.com/sensordonut/sensordonut/internal/view"
)

const (
	// maxSamples bounds the per-entity history.
	maxSamples = 240
	// minWindow is the narrowest x span drawn, in seconds.
	minWindow = 60.0

	chartHeight = 8
)

var (
	axisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// sample is one fill percentage taken at a refresh, t seconds after start.
type sample struct {
	t, pct float64
}

// history keeps the recent fill percentages per entity.
type history struct {
	series map[string][]sample
}

func newHistory() *history {
	return &history{series: make(map[string][]sample)}
}

// record appends one sample per rendered donut. Placeholders are skipped.
func (h *history) record(items []render.Item, t float64) {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		d := it.Donut
		if d == nil || seen[d.Entity] {
			continue
		}
		seen[d.Entity] = true
		s := append(h.series[d.Entity], sample{t: t, pct: d.Percentage})
		if len(s) > maxSamples {
			s = s[len(s)-maxSamples:]
		}
		h.series[d.Entity] = s
	}
}

func (h *history) samples(entity string) []sample {
	return h.series[entity]
}

// chart draws samples as a braille line over a 0–100 % axis.
func chart(samples []sample, width, height int, color string) string {
	if width < 10 {
		width = 10
	}
	if height < 3 {
		height = 3
	}
	xMin, xMax := 0.0, minWindow
	if len(samples) > 0 {
		xMin = samples[0].t
		xMax = max(samples[len(samples)-1].t, xMin+minWindow)
	}

	lc := linechart.New(width, height, xMin, xMax, 0, 100,
		linechart.WithXYSteps(4, 2),
		linechart.WithYLabelFormatter(func(_ int, v float64) string {
			return fmt.Sprintf("%.0f%%", v)
		}),
	)
	lc.AxisStyle = axisStyle
	lc.LabelStyle = labelStyle
	lc.SetViewXRange(xMin, xMax)
	lc.SetViewYRange(0, 100)
	lc.DrawXYAxisAndLabel()

	gw, gh := lc.GraphWidth(), lc.GraphHeight()
	if gw <= 0 || gh <= 0 || len(samples) == 0 {
		return lc.View()
	}

	grid := graph.NewBrailleGrid(gw, gh, 0, float64(gw), 0, float64(gh))
	xScale := float64(gw) / (xMax - xMin)
	yScale := float64(gh) / 100

	points := make([]canvas.Point, 0, len(samples))
	for _, s := range samples {
		points = append(points, grid.GridPoint(canvas.Float64Point{
			X: (s.t - xMin) * xScale,
			Y: s.pct * yScale,
		}))
	}
	if len(points) == 1 {
		grid.Set(points[0])
	}
	for i := 1; i < len(points); i++ {
		line(grid, points[i-1], points[i])
	}

	startX := 0
	if lc.YStep() > 0 {
		startX = lc.Origin().X + 1
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(view.TermColor(color)))
	graph.DrawBraillePatterns(&lc.Canvas, canvas.Point{X: startX, Y: 0}, grid.BraillePatterns(), style)
	return lc.View()
}

// line sets every grid point between p1 and p2 (Bresenham).
func line(grid *graph.BrailleGrid, p1, p2 canvas.Point) {
	dx, dy := abs(p2.X-p1.X), abs(p2.Y-p1.Y)
	sx, sy := 1, 1
	if p1.X > p2.X {
		sx = -1
	}
	if p1.Y > p2.Y {
		sy = -1
	}
	err := dx - dy
	x, y := p1.X, p1.Y
	for {
		grid.Set(canvas.Point{X: x, Y: y})
		if x == p2.X && y == p2.Y {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

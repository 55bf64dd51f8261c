package view

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/sensordonut/sensordonut/internal/card"
	"github.com/sensordonut/sensordonut/internal/render"
)

// Chrome used by the standalone SVG.
const (
	ErrorColor = "#ff5252"
	TextColor  = "#cccccc"

	svgPadding     = 16.0
	svgTitleHeight = 34.0
	svgLineHeight  = 18.0
	svgSideWidth   = 80.0
	svgTextGap     = 8.0

	placeholderWidth  = 200.0
	placeholderHeight = 40.0
)

// DonutSVG returns the <svg> element for one donut ring: a background circle
// and a progress circle whose dash array encodes the percentage, rotated so
// the arc starts at 12 o'clock.
func DonutSVG(d *render.Descriptor) string {
	var sb strings.Builder
	size := num(math.Max(d.Size, 0))
	fmt.Fprintf(&sb, `<svg class="donut-svg" xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		size, size, size, size)
	writeRing(&sb, d, 0, 0)
	sb.WriteString(`</svg>`)
	return sb.String()
}

// writeRing draws the two circles of d with the ring's top-left corner at x,y.
func writeRing(sb *strings.Builder, d *render.Descriptor, x, y float64) {
	cx, cy := num(x+d.Arc.Center), num(y+d.Arc.Center)
	r := num(math.Max(d.Arc.Radius, 0))
	fmt.Fprintf(sb, `<g transform="rotate(-90 %s %s)">`, cx, cy)
	fmt.Fprintf(sb, `<circle class="donut-background" cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="%s"/>`,
		cx, cy, r, esc(d.BackgroundColor), num(d.Thickness))
	fmt.Fprintf(sb, `<circle class="donut-progress" cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linecap="round" stroke-dasharray="%s" stroke-dashoffset="0"/>`,
		cx, cy, r, esc(d.Color), num(d.Thickness), dashArray(d.Arc))
	sb.WriteString(`</g>`)
}

// box is the footprint of one item inside its grid cell.
type box struct {
	w, h         float64
	ringX, ringY float64
}

func donutBox(d *render.Descriptor) box {
	var top, bottom, left, right float64
	for _, g := range d.Layout.Outside() {
		if g.Offset.Absolute {
			continue
		}
		lines := float64(len(g.Blocks)) * svgLineHeight
		switch g.Position {
		case card.PositionAbove:
			top = lines + svgTextGap
		case card.PositionBelow:
			bottom = lines + svgTextGap
		case card.PositionLeft:
			left = svgSideWidth
		case card.PositionRight:
			right = svgSideWidth
		}
	}
	size := math.Max(d.Size, 0)
	return box{
		w:     left + size + right,
		h:     top + size + bottom,
		ringX: left,
		ringY: top,
	}
}

func itemBox(it render.Item) box {
	if it.Donut != nil {
		return donutBox(it.Donut)
	}
	return box{w: placeholderWidth, h: placeholderHeight}
}

// SVG renders the whole card as one standalone SVG document.
func SVG(m render.Model) string {
	cols := m.Columns
	if cols < 1 {
		cols = 1
	}
	rows := (len(m.Items) + cols - 1) / cols

	var cellW, cellH float64
	boxes := make([]box, len(m.Items))
	for i, it := range m.Items {
		boxes[i] = itemBox(it)
		cellW = math.Max(cellW, boxes[i].w)
		cellH = math.Max(cellH, boxes[i].h)
	}

	top := svgPadding
	if m.Title != "" {
		top += svgTitleHeight
	}
	width := 2*svgPadding + float64(cols)*cellW + float64(cols-1)*m.Gap
	height := top + svgPadding
	if rows > 0 {
		height += float64(rows)*cellH + float64(rows-1)*m.Gap
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" font-family="sans-serif">`,
		num(width), num(height), num(width), num(height))

	if m.Title != "" {
		fmt.Fprintf(&sb, `<text class="title" x="%s" y="%s" text-anchor="middle" font-size="18" fill="%s">%s</text>`,
			num(width/2), num(svgPadding+18), TextColor, esc(m.Title))
	}

	for i, it := range m.Items {
		col, row := i%cols, i/cols
		cellX := svgPadding + float64(col)*(cellW+m.Gap)
		cellY := top + float64(row)*(cellH+m.Gap)
		b := boxes[i]
		x := cellX + (cellW-b.w)/2
		y := cellY + (cellH-b.h)/2

		if it.Placeholder != nil {
			fmt.Fprintf(&sb, `<text class="error" x="%s" y="%s" text-anchor="middle" dominant-baseline="central" font-size="14" fill="%s">%s</text>`,
				num(x+b.w/2), num(y+b.h/2), ErrorColor, esc(it.Placeholder.Message))
			continue
		}
		writeDonut(&sb, it.Donut, b, x, y)
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

// writeDonut draws one donut inside a group. A configured icon is carried as
// data-icon for hosts that resolve icon ids; no glyph is drawn.
func writeDonut(sb *strings.Builder, d *render.Descriptor, b box, x, y float64) {
	if d.Icon != "" {
		fmt.Fprintf(sb, `<g class="donut" data-icon="%s">`, esc(d.Icon))
	} else {
		sb.WriteString(`<g class="donut">`)
	}
	defer sb.WriteString(`</g>`)

	ringX, ringY := x+b.ringX, y+b.ringY
	writeRing(sb, d, ringX, ringY)

	cx, cy := ringX+d.Size/2, ringY+d.Size/2

	inside := d.Layout.Inside()
	startY := cy - float64(len(inside)-1)*svgLineHeight/2
	for i, kind := range inside {
		writeBlock(sb, d, kind, cx, startY+float64(i)*svgLineHeight, "middle")
	}

	for _, g := range d.Layout.Outside() {
		n := float64(len(g.Blocks))
		var bx, by float64
		anchor := "middle"
		switch g.Position {
		case card.PositionAbove:
			bx, by = cx, ringY-svgTextGap-(n-0.5)*svgLineHeight
		case card.PositionBelow:
			bx, by = cx, ringY+d.Size+svgTextGap+svgLineHeight/2
		case card.PositionLeft:
			bx, by, anchor = ringX-svgTextGap, cy-(n-1)*svgLineHeight/2, "end"
		case card.PositionRight:
			bx, by, anchor = ringX+d.Size+svgTextGap, cy-(n-1)*svgLineHeight/2, "start"
		}
		if g.Offset.Absolute {
			bx, by, anchor = x+px(g.Offset.Left), y+px(g.Offset.Top)+svgLineHeight/2, "start"
		}
		for i, kind := range g.Blocks {
			writeBlock(sb, d, kind, bx, by+float64(i)*svgLineHeight, anchor)
		}
	}
}

func writeBlock(sb *strings.Builder, d *render.Descriptor, kind render.BlockKind, x, y float64, anchor string) {
	class, size, weight, text := "donut-name", "12", "400", d.Name
	if kind == render.BlockValue {
		class, size, weight, text = "donut-value", "16", "600", d.ValueText
	}
	fmt.Fprintf(sb, `<text class="%s" x="%s" y="%s" text-anchor="%s" dominant-baseline="central" font-size="%s" font-weight="%s" fill="%s">%s</text>`,
		class, num(x), num(y), anchor, size, weight, TextColor, esc(text))
}

// dashArray is the arc's dash array, or "0 0" when the ring has no radius.
func dashArray(a render.Arc) string {
	if a.Radius <= 0 {
		return "0 0"
	}
	return a.DashArray()
}

// px reads back a CSS pixel length produced by card.Length.CSS.
func px(css string) float64 {
	l, err := card.ParseLength(css)
	if err != nil {
		return 0
	}
	return l.Value
}

// num formats an SVG coordinate with at most three decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

func esc(s string) string {
	return html.EscapeString(s)
}

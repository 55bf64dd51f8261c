package render

import (
	"math"
	"strconv"
)

// Arc describes the progress ring of one donut in SVG user units.
type Arc struct {
	// Center is the x and y coordinate of the circle center (size / 2).
	Center float64 `json:"center"`

	// Radius is (size - thickness) / 2. It is not clamped, so a thickness at
	// or above size gives a non-positive radius.
	Radius float64 `json:"radius"`

	Circumference float64 `json:"circumference"`

	// Dash is the visible stroke length; Gap the invisible run after it.
	Dash float64 `json:"dash"`
	Gap  float64 `json:"gap"`
}

// ComputeArc returns the ring geometry for a donut of the given size and
// thickness filled to percentage (0–100).
func ComputeArc(size, thickness, percentage float64) Arc {
	radius := (size - thickness) / 2
	circumference := 2 * math.Pi * radius
	return Arc{
		Center:        size / 2,
		Radius:        radius,
		Circumference: circumference,
		Dash:          percentage / 100 * circumference,
		Gap:           circumference,
	}
}

// DashArray formats the stroke-dasharray attribute value "dash gap".
func (a Arc) DashArray() string {
	return formatNumber(a.Dash) + " " + formatNumber(a.Gap)
}

// formatNumber prints v in its shortest round-trip form.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package render

import (
	"sort"

	"github.com/sensordonut/sensordonut/internal/card"
)

// DefaultColor is used when a donut has no color_gradient.
const DefaultColor = "#5cd679"

// ResolveColor returns the color of the highest threshold whose From is at or
// below value. When value is below every threshold the lowest threshold's
// color is returned. Thresholds sharing a From keep their configured order.
func ResolveColor(thresholds []card.Threshold, value float64) string {
	if len(thresholds) == 0 {
		return DefaultColor
	}

	sorted := make([]card.Threshold, len(thresholds))
	copy(sorted, thresholds)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].From > sorted[j].From
	})

	for _, t := range sorted {
		if value >= t.From {
			return t.Color
		}
	}
	return sorted[len(sorted)-1].Color
}

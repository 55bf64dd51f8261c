// Package render computes the render model of a sensor donut card.
//
// Everything here is a pure function of (card configuration, entity
// snapshot): no I/O, no retained state, safe to call from any goroutine.
//
// gradient.go: ResolveColor picks the display color from an ordered
// threshold list (stable descending sort, first from <= value, floor
// fallback, default #5cd679).
//
// geometry.go: ComputeArc turns (size, thickness, percentage) into the
// radius, circumference, and stroke dash/gap pair of the progress ring.
//
// layout.go: ResolvePlacement maps a position enum onto an anchor class,
// ResolveOffset normalizes manual align_h/align_v offsets, ResolveLayout
// combines both for one donut's value and label.
//
// donut.go: ComputeDonut reads one entity's live value, normalizes it to a
// clamped percentage, and composes the Descriptor, or a Placeholder when the
// entity is missing.
//
// card.go: Compute walks the configured donuts in order and returns the
// Model with the grid parameters passed through; CardSize is the advisory
// height hint ceil(n/columns)*3 + 1.
package render

// Package card loads, validates, and watches the sensor donut card
// configuration (card.yaml).
//
// Top-level types:
//   - Card{Type, Title, Columns, Gap, Donuts}: one card, parsed from YAML or JSON
//   - Donut: one indicator: entity, range, unit override, gradient, geometry,
//     visibility flags, value/label positions, manual alignment
//   - Threshold{From, Color}: one color_gradient step
//   - Position: inside | left | right | above | below; the first-revision
//     labels center and bottom decode as aliases for inside and below
//   - Length: a signed pixel offset parsed once from a bare number or a
//     "-10px" style string
//
// Parse and Load decode the document, apply defaults (min 0, max 100,
// size 120, thickness 8, background #2f3a3f, value inside, label below,
// columns 1, gap 16), then Validate. A missing, empty or non-sequence
// donuts key fails with ErrNoDonuts. Malformed lengths and positions fail
// decoding. Both wrap ErrInvalidConfig. Out-of-range values (columns 0, a
// negative gap, thickness at or above size, a missing entity) are kept as
// written: the render model tolerates them.
//
// Watch(ctx, path, onChange) watches the file's directory with fsnotify,
// so atomic saves and a file created after start are both picked up, and
// keeps the previous card when the new content does not validate. Holder
// publishes the active card to concurrent readers.
package card

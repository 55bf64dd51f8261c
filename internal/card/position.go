package card

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Position is where a value or label is drawn relative to its donut.
type Position string

const (
	// PositionUnset marks an absent or unrecognized position. The layout
	// resolver treats it as PositionBelow.
	PositionUnset  Position = ""
	PositionInside Position = "inside"
	PositionLeft   Position = "left"
	PositionRight  Position = "right"
	PositionAbove  Position = "above"
	PositionBelow  Position = "below"
)

// Deprecated first-revision labels.
var positionAliases = map[string]Position{
	"center": PositionInside,
	"bottom": PositionBelow,
}

// ParsePosition maps s onto a Position. It reports false for unknown input.
func ParsePosition(s string) (Position, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch p := Position(s); p {
	case PositionInside, PositionLeft, PositionRight, PositionAbove, PositionBelow:
		return p, true
	}
	if p, ok := positionAliases[s]; ok {
		return p, true
	}
	return PositionUnset, false
}

// UnmarshalYAML decodes a position label. Unknown labels decode to
// PositionUnset rather than failing the card.
func (p *Position) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	*p, _ = ParsePosition(s)
	return nil
}

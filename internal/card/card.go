package card

import (
	"errors"
	"fmt"
)

// Defaults applied when a key is absent from the card document.
const (
	DefaultType            = "custom:sensor-donut-card"
	DefaultColumns         = 1
	DefaultGap             = 16.0
	DefaultMin             = 0.0
	DefaultMax             = 100.0
	DefaultSize            = 120.0
	DefaultThickness       = 8.0
	DefaultBackgroundColor = "#2f3a3f"
)

// ErrInvalidConfig is wrapped by every configuration error this package returns.
var ErrInvalidConfig = errors.New("invalid card config")

// ErrNoDonuts is returned when the donuts key is absent, empty, or not a sequence.
var ErrNoDonuts = fmt.Errorf("%w: you need to define 'donuts' in your card config", ErrInvalidConfig)

// Card is the full card configuration.
type Card struct {
	Type    string
	Title   string
	Columns int
	Gap     float64
	Donuts  []Donut
}

// Donut configures one indicator bound to a single entity.
type Donut struct {
	Name   string
	Entity string

	// Unit overrides the entity's native unit when non-nil, including when
	// it points at an empty string.
	Unit *string

	Min float64
	Max float64

	Icon string

	// ColorGradient lists threshold colors in configured order.
	ColorGradient []Threshold

	BackgroundColor string

	Size      float64
	Thickness float64

	ShowValue bool
	ShowName  bool

	ValuePosition Position
	LabelPosition Position

	// AlignH and AlignV are manual pixel offsets for the text container.
	AlignH Length
	AlignV Length
}

// Threshold assigns Color to values at or above From.
type Threshold struct {
	From  float64 `yaml:"from"`
	Color string  `yaml:"color"`
}

// DefaultDonut returns a Donut with every default applied and no entity.
func DefaultDonut() Donut {
	return Donut{
		Min:             DefaultMin,
		Max:             DefaultMax,
		BackgroundColor: DefaultBackgroundColor,
		Size:            DefaultSize,
		Thickness:       DefaultThickness,
		ShowValue:       true,
		ShowName:        true,
		ValuePosition:   PositionInside,
		LabelPosition:   PositionBelow,
	}
}

// Validate checks the only constraint that fails a whole card: at least
// one donut entry. Everything else renders as configured; columns below 1
// render as one column and geometry problems surface as diagnostics.
func (c *Card) Validate() error {
	if len(c.Donuts) == 0 {
		return ErrNoDonuts
	}
	return nil
}

package card

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LengthUnit is the unit of a Length. Pixels are the only supported unit.
type LengthUnit string

// UnitPixel is the CSS pixel unit.
const UnitPixel LengthUnit = "px"

// Length is a signed offset in pixels. The zero value is a zero offset.
type Length struct {
	Value float64
	Unit  LengthUnit

	// raw keeps a string input that already carried the px suffix so it
	// is emitted unchanged.
	raw string
}

// Px returns a pixel Length.
func Px(v float64) Length {
	return Length{Value: v, Unit: UnitPixel}
}

// ParseLength parses a bare number ("-10", "5.5") or a pixel value ("12px").
// Empty input is a zero offset; anything else is an error.
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Length{}, nil
	}
	num, suffixed := strings.CutSuffix(s, string(UnitPixel))
	num = strings.TrimSpace(num)
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || num == "" || !finite(v) {
		return Length{}, fmt.Errorf("%w: invalid length %q: want a number or a pixel value like \"-10px\"", ErrInvalidConfig, s)
	}
	l := Px(v)
	if suffixed {
		l.raw = s
	}
	return l, nil
}

// IsZero reports whether l is a zero offset.
func (l Length) IsZero() bool {
	return l.Value == 0
}

// CSS renders l as a CSS pixel length, "0px" for the zero value.
func (l Length) CSS() string {
	if l.raw != "" {
		return l.raw
	}
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + string(UnitPixel)
}

func (l Length) String() string {
	return l.CSS()
}

// UnmarshalYAML accepts numbers, pixel strings, and falsy values (null,
// false, ""), which decode to a zero offset.
func (l *Length) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: length must be a scalar", ErrInvalidConfig, value.Line)
	}
	switch value.ShortTag() {
	case "!!null":
		*l = Length{}
		return nil
	case "!!bool":
		var b bool
		if err := value.Decode(&b); err != nil {
			return err
		}
		if b {
			return fmt.Errorf("%w: line %d: length must not be true", ErrInvalidConfig, value.Line)
		}
		*l = Length{}
		return nil
	case "!!int", "!!float":
		var v float64
		if err := value.Decode(&v); err != nil {
			return err
		}
		if !finite(v) {
			return fmt.Errorf("%w: line %d: length must be finite, got %s", ErrInvalidConfig, value.Line, value.Value)
		}
		*l = Px(v)
		return nil
	}
	parsed, err := ParseLength(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*l = parsed
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

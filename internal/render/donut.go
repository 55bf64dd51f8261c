package render

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/sensordonut/sensordonut/internal/card"
	"github.com/sensordonut/sensordonut/pkg/types"
)

// EntityNotFound is appended to the donut name in a missing-entity placeholder.
const EntityNotFound = "entity not found"

// Descriptor is the fully resolved render output of one donut.
type Descriptor struct {
	Name   string `json:"name"`
	Entity string `json:"entity"`
	Icon   string `json:"icon,omitempty"`

	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
	ValueText string  `json:"value_text"`

	// Percentage is the value's position in [min, max], clamped to [0, 100].
	Percentage float64 `json:"percentage"`

	Size      float64 `json:"size"`
	Thickness float64 `json:"thickness"`
	Arc       Arc     `json:"arc"`

	Color           string `json:"color"`
	BackgroundColor string `json:"background_color"`

	Layout Layout `json:"layout"`
}

// Placeholder replaces a Descriptor when the donut's entity is absent from
// the snapshot.
type Placeholder struct {
	Name    string `json:"name"`
	Entity  string `json:"entity"`
	Message string `json:"message"`
}

// Item is one entry of the card output: exactly one of Donut and
// Placeholder is set.
type Item struct {
	Donut       *Descriptor  `json:"donut,omitempty"`
	Placeholder *Placeholder `json:"placeholder,omitempty"`
}

// ComputeDonut resolves d against live. A nil live value yields a
// Placeholder and nothing else is computed.
func ComputeDonut(d card.Donut, live *types.LiveValue) Item {
	if live == nil {
		return Item{Placeholder: &Placeholder{
			Name:    d.Name,
			Entity:  d.Entity,
			Message: d.Name + " – " + EntityNotFound,
		}}
	}

	value := ParseState(live.State)
	unit := resolveUnit(d.Unit, live.UnitOfMeasurement)
	percentage := Percentage(value, d.Min, d.Max)

	name := d.Name
	if name == "" {
		name = live.FriendlyName
	}
	if name == "" {
		name = d.Entity
	}

	return Item{Donut: &Descriptor{
		Name:            name,
		Entity:          d.Entity,
		Icon:            d.Icon,
		Value:           value,
		Unit:            unit,
		ValueText:       formatNumber(value) + unit,
		Percentage:      percentage,
		Size:            d.Size,
		Thickness:       d.Thickness,
		Arc:             ComputeArc(d.Size, d.Thickness, percentage),
		Color:           ResolveColor(d.ColorGradient, value),
		BackgroundColor: d.BackgroundColor,
		Layout:          ResolveLayout(d),
	}}
}

// Percentage maps value onto [lo, hi] as 0–100, clamped. A degenerate
// range (hi == lo) yields 0.
func Percentage(value, lo, hi float64) float64 {
	span := hi - lo
	if span == 0 {
		return 0
	}
	p := (value - lo) / span * 100
	if math.IsNaN(p) {
		return 0
	}
	return math.Min(math.Max(p, 0), 100)
}

// numericPrefix matches the leading decimal number of a state string.
var numericPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// ParseState reads the leading number of a raw entity state ("21.5",
// "21.5 °C"). Anything unparseable, including "unavailable" and infinities,
// reads as 0.
func ParseState(state string) float64 {
	m := numericPrefix.FindString(strings.TrimSpace(state))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

// IsNumeric reports whether state starts with a number ParseState can read.
func IsNumeric(state string) bool {
	return numericPrefix.MatchString(strings.TrimSpace(state))
}

// resolveUnit prefers the configured unit, even when it is empty, over the
// entity's native unit.
func resolveUnit(configured *string, native string) string {
	if configured != nil {
		return *configured
	}
	return native
}

package card

import (
	"gopkg.in/yaml.v3"
)

// rawCard mirrors the document so absent keys can be told apart from zero values.
type rawCard struct {
	Type    string    `yaml:"type"`
	Title   string    `yaml:"title"`
	Columns *int      `yaml:"columns"`
	Gap     *float64  `yaml:"gap"`
	Donuts  yaml.Node `yaml:"donuts"`
}

// UnmarshalYAML decodes the card and applies card-level defaults.
func (c *Card) UnmarshalYAML(value *yaml.Node) error {
	var raw rawCard
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Donuts.Kind != yaml.SequenceNode {
		return ErrNoDonuts
	}

	var donuts []Donut
	if err := raw.Donuts.Decode(&donuts); err != nil {
		return err
	}

	*c = Card{
		Type:    raw.Type,
		Title:   raw.Title,
		Columns: DefaultColumns,
		Gap:     DefaultGap,
		Donuts:  donuts,
	}
	if c.Type == "" {
		c.Type = DefaultType
	}
	if raw.Columns != nil {
		c.Columns = *raw.Columns
	}
	if raw.Gap != nil {
		c.Gap = *raw.Gap
	}
	return nil
}

type rawDonut struct {
	Name            string      `yaml:"name"`
	Entity          string      `yaml:"entity"`
	Unit            *string     `yaml:"unit"`
	Min             *float64    `yaml:"min"`
	Max             *float64    `yaml:"max"`
	Icon            string      `yaml:"icon"`
	ColorGradient   []Threshold `yaml:"color_gradient"`
	BackgroundColor string      `yaml:"background_color"`
	Size            *float64    `yaml:"size"`
	Thickness       *float64    `yaml:"thickness"`
	ShowValue       *bool       `yaml:"show_value"`
	ShowName        *bool       `yaml:"show_name"`
	ValuePosition   *Position   `yaml:"value_position"`
	LabelPosition   *Position   `yaml:"label_position"`
	NamePosition    *Position   `yaml:"name_position"`

	AlignHHyphen     *Length `yaml:"align-h"`
	AlignHUnderscore *Length `yaml:"align_h"`
	AlignVHyphen     *Length `yaml:"align-v"`
	AlignVUnderscore *Length `yaml:"align_v"`
}

// UnmarshalYAML decodes one donut entry on top of DefaultDonut.
//
// label_position wins over the deprecated name_position. For alignment the
// hyphenated spelling wins when both spellings carry a non-zero offset.
func (d *Donut) UnmarshalYAML(value *yaml.Node) error {
	var raw rawDonut
	if err := value.Decode(&raw); err != nil {
		return err
	}

	out := DefaultDonut()
	out.Name = raw.Name
	out.Entity = raw.Entity
	out.Unit = raw.Unit
	out.Icon = raw.Icon
	out.ColorGradient = raw.ColorGradient
	if raw.BackgroundColor != "" {
		out.BackgroundColor = raw.BackgroundColor
	}
	if raw.Min != nil {
		out.Min = *raw.Min
	}
	if raw.Max != nil {
		out.Max = *raw.Max
	}
	if raw.Size != nil {
		out.Size = *raw.Size
	}
	if raw.Thickness != nil {
		out.Thickness = *raw.Thickness
	}
	if raw.ShowValue != nil {
		out.ShowValue = *raw.ShowValue
	}
	if raw.ShowName != nil {
		out.ShowName = *raw.ShowName
	}
	if raw.ValuePosition != nil {
		out.ValuePosition = *raw.ValuePosition
	}
	switch {
	case raw.LabelPosition != nil:
		out.LabelPosition = *raw.LabelPosition
	case raw.NamePosition != nil:
		out.LabelPosition = *raw.NamePosition
	}
	out.AlignH = firstLength(raw.AlignHHyphen, raw.AlignHUnderscore)
	out.AlignV = firstLength(raw.AlignVHyphen, raw.AlignVUnderscore)

	*d = out
	return nil
}

// firstLength returns the first non-zero candidate.
func firstLength(candidates ...*Length) Length {
	for _, l := range candidates {
		if l != nil && !l.IsZero() {
			return *l
		}
	}
	return Length{}
}

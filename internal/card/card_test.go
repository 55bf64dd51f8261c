package card

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Valid(t *testing.T) {
	yaml := `
type: custom:sensor-donut-card
title: Climate
columns: 3
gap: 24
donuts:
  - name: Temp
    entity: sensor.t
    unit: "°C"
    min: -10
    max: 40
    icon: mdi:thermometer
    size: 140
    thickness: 12
    background_color: "#111111"
    show_name: false
    value_position: left
    label_position: above
    color_gradient:
      - from: 0
        color: blue
      - from: 25
        color: red
`
	c := loadFromString(t, yaml)

	if c.Title != "Climate" {
		t.Errorf("title: got %q", c.Title)
	}
	if c.Columns != 3 || c.Gap != 24 {
		t.Errorf("grid: got columns=%d gap=%g", c.Columns, c.Gap)
	}
	if len(c.Donuts) != 1 {
		t.Fatalf("donuts: got %d, want 1", len(c.Donuts))
	}
	d := c.Donuts[0]
	if d.Name != "Temp" || d.Entity != "sensor.t" {
		t.Errorf("identity: got name=%q entity=%q", d.Name, d.Entity)
	}
	if d.Unit == nil || *d.Unit != "°C" {
		t.Errorf("unit: got %v", d.Unit)
	}
	if d.Min != -10 || d.Max != 40 {
		t.Errorf("range: got [%g, %g]", d.Min, d.Max)
	}
	if d.Size != 140 || d.Thickness != 12 {
		t.Errorf("geometry: got size=%g thickness=%g", d.Size, d.Thickness)
	}
	if d.BackgroundColor != "#111111" {
		t.Errorf("background_color: got %q", d.BackgroundColor)
	}
	if !d.ShowValue || d.ShowName {
		t.Errorf("visibility: got show_value=%v show_name=%v", d.ShowValue, d.ShowName)
	}
	if d.ValuePosition != PositionLeft || d.LabelPosition != PositionAbove {
		t.Errorf("positions: got value=%q label=%q", d.ValuePosition, d.LabelPosition)
	}
	if len(d.ColorGradient) != 2 || d.ColorGradient[1] != (Threshold{From: 25, Color: "red"}) {
		t.Errorf("color_gradient: got %+v", d.ColorGradient)
	}
}

func TestLoad_Defaults(t *testing.T) {
	c := loadFromString(t, `
donuts:
  - name: Temp
    entity: sensor.t
`)

	if c.Type != DefaultType {
		t.Errorf("type: got %q, want %q", c.Type, DefaultType)
	}
	if c.Columns != DefaultColumns || c.Gap != DefaultGap {
		t.Errorf("grid defaults: got columns=%d gap=%g", c.Columns, c.Gap)
	}
	d := c.Donuts[0]
	want := DefaultDonut()
	want.Name, want.Entity = "Temp", "sensor.t"
	if d.Min != want.Min || d.Max != want.Max || d.Size != want.Size || d.Thickness != want.Thickness {
		t.Errorf("numeric defaults: got %+v", d)
	}
	if d.BackgroundColor != DefaultBackgroundColor {
		t.Errorf("background_color: got %q", d.BackgroundColor)
	}
	if !d.ShowValue || !d.ShowName {
		t.Error("show_value and show_name should default to true")
	}
	if d.ValuePosition != PositionInside || d.LabelPosition != PositionBelow {
		t.Errorf("position defaults: got value=%q label=%q", d.ValuePosition, d.LabelPosition)
	}
	if d.Unit != nil {
		t.Errorf("unit: got %q, want nil", *d.Unit)
	}
	if !d.AlignH.IsZero() || !d.AlignV.IsZero() {
		t.Errorf("align: got %v/%v, want zero", d.AlignH, d.AlignV)
	}
}

func TestLoad_ExplicitZeroesKept(t *testing.T) {
	c := loadFromString(t, `
gap: 0
donuts:
  - name: Load
    entity: sensor.load
    max: 0
    min: -5
    unit: ""
`)
	if c.Gap != 0 {
		t.Errorf("gap: got %g, want 0", c.Gap)
	}
	d := c.Donuts[0]
	if d.Max != 0 {
		t.Errorf("max: got %g, want 0", d.Max)
	}
	if d.Unit == nil || *d.Unit != "" {
		t.Errorf("unit: got %v, want pointer to empty string", d.Unit)
	}
}

func TestLoad_JSONDocument(t *testing.T) {
	c := loadFromString(t, `{"title": "Power", "donuts": [{"name": "Grid", "entity": "sensor.grid", "max": 5000}]}`)
	if c.Title != "Power" || c.Donuts[0].Max != 5000 {
		t.Errorf("json card: got %+v", c)
	}
}

func TestLoad_DonutsRequired(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing", "title: nothing here\n"},
		{"not a sequence", "donuts: sensor.t\n"},
		{"mapping", "donuts:\n  name: Temp\n"},
		{"empty list", "donuts: []\n"},
		{"empty document", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadStringErr(t, tt.yaml)
			if !errors.Is(err, ErrNoDonuts) {
				t.Fatalf("Load: got %v, want ErrNoDonuts", err)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("ErrNoDonuts should wrap ErrInvalidConfig")
			}
		})
	}
}

func TestLoad_OutOfRangeFieldsKept(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		check func(t *testing.T, c *Card)
	}{
		{
			name: "missing entity",
			yaml: "donuts:\n  - name: Temp\n",
			check: func(t *testing.T, c *Card) {
				if c.Donuts[0].Entity != "" {
					t.Errorf("entity: got %q", c.Donuts[0].Entity)
				}
			},
		},
		{
			name: "zero columns",
			yaml: "columns: 0\ndonuts:\n  - entity: sensor.t\n",
			check: func(t *testing.T, c *Card) {
				if c.Columns != 0 {
					t.Errorf("columns: got %d, want 0", c.Columns)
				}
			},
		},
		{
			name: "negative gap",
			yaml: "gap: -1\ndonuts:\n  - entity: sensor.t\n",
			check: func(t *testing.T, c *Card) {
				if c.Gap != -1 {
					t.Errorf("gap: got %g, want -1", c.Gap)
				}
			},
		},
		{
			name: "thickness equals size",
			yaml: "donuts:\n  - entity: sensor.t\n    size: 8\n    thickness: 8\n",
			check: func(t *testing.T, c *Card) {
				if c.Donuts[0].Size != 8 || c.Donuts[0].Thickness != 8 {
					t.Errorf("geometry: got size %g thickness %g", c.Donuts[0].Size, c.Donuts[0].Thickness)
				}
			},
		},
		{
			name: "zero size",
			yaml: "donuts:\n  - entity: sensor.t\n    size: 0\n",
			check: func(t *testing.T, c *Card) {
				if c.Donuts[0].Size != 0 {
					t.Errorf("size: got %g, want 0", c.Donuts[0].Size)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := loadStringErr(t, tt.yaml)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			tt.check(t, c)
		})
	}
}

func TestLoad_DegenerateRangeAllowed(t *testing.T) {
	c := loadFromString(t, "donuts:\n  - entity: sensor.t\n    min: 10\n    max: 10\n")
	if c.Donuts[0].Min != 10 || c.Donuts[0].Max != 10 {
		t.Errorf("range: got [%g, %g]", c.Donuts[0].Min, c.Donuts[0].Max)
	}
}

func TestLoad_PositionAliases(t *testing.T) {
	c := loadFromString(t, `
donuts:
  - entity: sensor.a
    value_position: center
    name_position: bottom
  - entity: sensor.b
    value_position: bottom
    name_position: center
  - entity: sensor.c
    label_position: right
    name_position: center
  - entity: sensor.d
    value_position: sideways
`)
	tests := []struct {
		value, label Position
	}{
		{PositionInside, PositionBelow},
		{PositionBelow, PositionInside},
		{PositionInside, PositionRight},
		{PositionUnset, PositionBelow},
	}
	for i, tt := range tests {
		d := c.Donuts[i]
		if d.ValuePosition != tt.value || d.LabelPosition != tt.label {
			t.Errorf("donut %d: got value=%q label=%q, want %q/%q",
				i, d.ValuePosition, d.LabelPosition, tt.value, tt.label)
		}
	}
}

func TestLoad_Alignment(t *testing.T) {
	c := loadFromString(t, `
donuts:
  - entity: sensor.a
    align_h: "-10"
    align_v: 5
  - entity: sensor.b
    align-h: 3px
    align_h: 7
    align_v: 4
    align-v: 0
  - entity: sensor.c
    align_h: ""
    align_v: false
`)
	tests := []struct {
		h, v string
	}{
		{"-10px", "5px"},
		{"3px", "4px"},
		{"0px", "0px"},
	}
	for i, tt := range tests {
		d := c.Donuts[i]
		if d.AlignH.CSS() != tt.h || d.AlignV.CSS() != tt.v {
			t.Errorf("donut %d: got %q/%q, want %q/%q", i, d.AlignH.CSS(), d.AlignV.CSS(), tt.h, tt.v)
		}
	}
}

func TestLoad_MalformedAlignment(t *testing.T) {
	_, err := loadStringErr(t, "donuts:\n  - entity: sensor.a\n    align_h: 10em\n")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Load: got %v, want ErrInvalidConfig", err)
	}
	if !strings.Contains(err.Error(), "10em") {
		t.Errorf("error should name the bad value: %v", err)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load of missing file: expected error, got nil")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist: %v", err)
	}
}

func TestHolder(t *testing.T) {
	h := NewHolder(nil)
	if h.Load() != nil {
		t.Fatal("empty holder should return nil")
	}
	c := &Card{Title: "a"}
	h.Store(c)
	if h.Load() != c {
		t.Error("Load should return the stored card")
	}
	g := h.Generation()
	h.Store(&Card{Title: "b"})
	if h.Generation() != g+1 {
		t.Errorf("Generation: got %d, want %d", h.Generation(), g+1)
	}
}

// --- helpers ----------------------------------------------------------------

func loadFromString(t *testing.T, content string) *Card {
	t.Helper()
	c, err := loadStringErr(t, content)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	return c
}

// loadStringErr writes content to a temp file and calls Load, returning any error.
func loadStringErr(t *testing.T, content string) (*Card, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "card.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp card: %v", err)
	}
	return Load(path)
}

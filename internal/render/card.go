package render

import (
	"github.com/sensordonut/sensordonut/internal/card"
	"github.com/sensordonut/sensordonut/pkg/types"
)

// Model is the render output of a whole card.
type Model struct {
	Title   string  `json:"title,omitempty"`
	Columns int     `json:"columns"`
	Gap     float64 `json:"gap"`

	// Items follows the configured donut order exactly.
	Items []Item `json:"items"`

	// CardSize is the advisory height hint for the host layout.
	CardSize int `json:"card_size"`
}

// Compute renders every configured donut against snap.
func Compute(c card.Card, snap types.Snapshot) Model {
	m := Model{
		Title:    c.Title,
		Columns:  columns(c),
		Gap:      c.Gap,
		Items:    make([]Item, 0, len(c.Donuts)),
		CardSize: CardSize(c),
	}
	for _, d := range c.Donuts {
		m.Items = append(m.Items, ComputeDonut(d, snap.Lookup(d.Entity)))
	}
	return m
}

// CardSize estimates the card height in host grid units:
// ceil(donuts / columns) * 3 + 1.
func CardSize(c card.Card) int {
	cols := columns(c)
	rows := (len(c.Donuts) + cols - 1) / cols
	return rows*3 + 1
}

// columns returns the configured column count, at least 1.
func columns(c card.Card) int {
	if c.Columns < 1 {
		return card.DefaultColumns
	}
	return c.Columns
}

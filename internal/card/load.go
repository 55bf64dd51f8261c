package card

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// Parse decodes a card document (YAML or JSON), applies defaults, and validates it.
func Parse(data []byte) (*Card, error) {
	var c Card
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("card: parse yaml: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("card: %w", err)
	}
	return &c, nil
}

// Load reads and parses the card file at path.
func Load(path string) (*Card, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("card: read file: %w", err)
	}
	return Parse(data)
}

// Holder publishes the active card to concurrent readers.
type Holder struct {
	card atomic.Pointer[Card]
	gen  atomic.Uint64
}

// NewHolder returns a Holder that initially serves c, which may be nil.
func NewHolder(c *Card) *Holder {
	h := &Holder{}
	if c != nil {
		h.card.Store(c)
	}
	return h
}

// Load returns the active card, or nil before one has been stored.
func (h *Holder) Load() *Card {
	return h.card.Load()
}

// Store replaces the active card. Callers must not modify c afterwards.
func (h *Holder) Store(c *Card) {
	h.card.Store(c)
	h.gen.Add(1)
}

// Generation counts Store calls. It changes whenever the active card does.
func (h *Holder) Generation() uint64 {
	return h.gen.Load()
}

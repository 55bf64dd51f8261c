package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ErrDuplicate is returned when a card type is registered twice.
var ErrDuplicate = errors.New("registry: card type already registered")

// CardInfo is the metadata a host shows in its card picker.
type CardInfo struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
}

// SensorDonutCard describes the card this module renders.
var SensorDonutCard = CardInfo{
	Type:        "sensor-donut-card",
	Name:        "Sensor Donut Card",
	Description: "A customizable card to display numeric sensors as donut charts",
	Version:     "1.0.0",
}

// Registry is a thread-safe set of CardInfo keyed by Type.
type Registry struct {
	mu    sync.RWMutex
	cards map[string]CardInfo
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{cards: make(map[string]CardInfo)}
}

// Register adds info. Registering an existing type returns ErrDuplicate and
// leaves the first registration in place.
func (r *Registry) Register(info CardInfo) error {
	if info.Type == "" {
		return fmt.Errorf("registry: card type is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cards[info.Type]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, info.Type)
	}
	r.cards[info.Type] = info
	return nil
}

// Lookup returns the card registered under typ.
func (r *Registry) Lookup(typ string) (CardInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.cards[typ]
	return info, ok
}

// List returns all registered cards sorted by type.
func (r *Registry) List() []CardInfo {
	r.mu.RLock()
	out := make([]CardInfo, 0, len(r.cards))
	for _, c := range r.cards {
		out = append(out, c)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

var (
	bannerName = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFA500")).
			Background(lipgloss.Color("#000000"))
	bannerVersion = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#696969"))
)

// Banner returns the startup line for info, e.g. " SENSOR-DONUT-CARD  v1.0.0 ".
func Banner(info CardInfo) string {
	return bannerName.Render(" "+strings.ToUpper(info.Type)+" ") +
		bannerVersion.Render(" v"+info.Version+" ")
}

package api

import (
	"fmt"
	"time"

	"github.com/sensordonut/sensordonut/internal/card"
	"github.com/sensordonut/sensordonut/internal/render"
	"github.com/sensordonut/sensordonut/internal/store"
)

// DiagnosticHint is one human-readable insight about why a donut looks the
// way it does.
type DiagnosticHint struct {
	// Key is a stable machine-readable identifier.
	Key string `json:"key"`
	// Level is "ok" | "info" | "warning" | "critical"
	Level string `json:"level"`
	// Title is a short label (≤ 5 words).
	Title string `json:"title"`
	// Detail is the full explanation.
	Detail string `json:"detail"`
	// Value is an optional numeric value associated with this hint.
	Value *float64 `json:"value,omitempty"`
}

// computeDiagnostics derives hints for every donut of c from the store.
// Results follow card order.
func computeDiagnostics(c *card.Card, st *store.Store, now time.Time) []DonutDiagnostics {
	snap := st.Snapshot()
	out := make([]DonutDiagnostics, 0, len(c.Donuts))
	for _, d := range c.Donuts {
		out = append(out, DonutDiagnostics{
			Name:   d.Name,
			Entity: d.Entity,
			Hints:  donutHints(d, st, snap.Lookup(d.Entity) != nil, now),
		})
	}
	return out
}

func donutHints(d card.Donut, st *store.Store, live bool, now time.Time) []DiagnosticHint {
	var hints []DiagnosticHint

	// ── Range ─────────────────────────────────────────────────────────────
	switch {
	case d.Max == d.Min:
		hints = append(hints, DiagnosticHint{
			Key:   "degenerate_range",
			Level: "warning",
			Title: "Empty range",
			Detail: fmt.Sprintf(
				"min and max are both %g, so there is no span to fill. "+
					"The ring stays empty whatever the sensor reports. Set max above min.",
				d.Min,
			),
		})
	case d.Max < d.Min:
		hints = append(hints, DiagnosticHint{
			Key:   "inverted_range",
			Level: "info",
			Title: "Inverted range",
			Detail: fmt.Sprintf(
				"max (%g) is below min (%g), so the ring fills as the value falls. "+
					"Swap them if that is not intended.",
				d.Max, d.Min,
			),
		})
	}

	// ── Geometry ──────────────────────────────────────────────────────────
	switch {
	case d.Size <= 0:
		v := d.Size
		hints = append(hints, DiagnosticHint{
			Key:   "invalid_size",
			Level: "warning",
			Title: "Donut has no size",
			Detail: fmt.Sprintf(
				"size is %g, so the ring collapses to nothing. Set a positive size in pixels.",
				d.Size,
			),
			Value: &v,
		})
	case d.Thickness >= d.Size:
		v := d.Thickness
		hints = append(hints, DiagnosticHint{
			Key:   "thickness_exceeds_size",
			Level: "warning",
			Title: "Ring too thick",
			Detail: fmt.Sprintf(
				"thickness %g is not smaller than size %g, so the ring has no hole "+
					"and is drawn with a zero radius. Lower the thickness.",
				d.Thickness, d.Size,
			),
			Value: &v,
		})
	}

	// ── Entity presence ───────────────────────────────────────────────────
	if d.Entity == "" {
		hints = append(hints, DiagnosticHint{
			Key:    "entity_unset",
			Level:  "critical",
			Title:  "No entity configured",
			Detail: "This donut has no entity key, so it can never show a value. Add an entity id.",
		})
		return hints
	}
	e, known := st.Get(d.Entity)
	switch {
	case !known:
		hints = append(hints, DiagnosticHint{
			Key:   "entity_missing",
			Level: "critical",
			Title: "Entity not found",
			Detail: fmt.Sprintf(
				"No source has reported %q yet. Check the entity id for typos and "+
					"that one of the configured sources (or a push to /api/v1/states) provides it.",
				d.Entity,
			),
		})
		return hints
	case !live:
		age := now.Sub(e.UpdatedAt).Round(time.Second)
		v := age.Seconds()
		hints = append(hints, DiagnosticHint{
			Key:   "entity_stale",
			Level: "warning",
			Title: "Value is stale",
			Detail: fmt.Sprintf(
				"%q was last received %s ago, longer than the %s state TTL, so the card "+
					"treats it as missing. Its source may be down or no longer report it.",
				d.Entity, age, st.TTL(),
			),
			Value: &v,
		})
		return hints
	}

	// ── Value ─────────────────────────────────────────────────────────────
	state := e.Value.State
	if !render.IsNumeric(state) {
		hints = append(hints, DiagnosticHint{
			Key:   "non_numeric",
			Level: "warning",
			Title: "Non-numeric state",
			Detail: fmt.Sprintf(
				"The state %q is not a number, so the donut shows 0. "+
					"This usually means the device is unavailable.",
				state,
			),
		})
	} else if d.Max != d.Min {
		value := render.ParseState(state)
		lo, hi := min(d.Min, d.Max), max(d.Min, d.Max)
		if value < lo || value > hi {
			v := value
			hints = append(hints, DiagnosticHint{
				Key:   "out_of_range",
				Level: "info",
				Title: "Value clamped",
				Detail: fmt.Sprintf(
					"The value %g lies outside %g…%g and is drawn at the nearest end of the ring.",
					value, d.Min, d.Max,
				),
				Value: &v,
			})
		}
	}

	// ── All clear ─────────────────────────────────────────────────────────
	if len(hints) == 0 {
		hints = append(hints, DiagnosticHint{
			Key:    "healthy",
			Level:  "ok",
			Title:  "All clear",
			Detail: fmt.Sprintf("%q reports a numeric value within %g…%g.", d.Entity, d.Min, d.Max),
		})
	}
	return hints
}

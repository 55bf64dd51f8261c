package api

import (
	"github.com/sensordonut/sensordonut/internal/render"
)

// CardResponse is the payload for GET /api/v1/card.
type CardResponse struct {
	render.Model
	GeneratedAt string `json:"generated_at"` // RFC3339
}

// StateResponse is one entity in GET /api/v1/states or
// GET /api/v1/states/{entity}.
type StateResponse struct {
	EntityID          string `json:"entity_id"`
	State             string `json:"state"`
	UnitOfMeasurement string `json:"unit_of_measurement,omitempty"`
	FriendlyName      string `json:"friendly_name,omitempty"`
	Icon              string `json:"icon,omitempty"`
	LastUpdated       string `json:"last_updated,omitempty"` // RFC3339, as reported by the source
	ReceivedAt        string `json:"received_at"`            // RFC3339
}

// HealthResponse is the payload for GET /healthz.
type HealthResponse struct {
	Status      string `json:"status"`
	CardLoaded  bool   `json:"card_loaded"`
	EntityCount int    `json:"entity_count"`
}

// DonutDiagnostics groups the hints for one configured donut.
type DonutDiagnostics struct {
	Name   string           `json:"name"`
	Entity string           `json:"entity"`
	Hints  []DiagnosticHint `json:"hints"`
}

type errorResponse struct {
	Error string `json:"error"`
}

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sensordonut/sensordonut/internal/config"
	"github.com/sensordonut/sensordonut/pkg/types"
)

const haStatesPath = "/api/states"

type haSource struct {
	src    config.Source
	client *http.Client
}

func (s *haSource) ID() string { return s.src.ID }

// Fetch lists every entity state known to the Home Assistant instance.
func (s *haSource) Fetch(ctx context.Context) ([]types.LiveValue, error) {
	url := strings.TrimRight(s.src.Endpoint, "/") + haStatesPath
	body, err := get(ctx, s.client, url, "application/json")
	if err != nil {
		return nil, fmt.Errorf("homeassistant %q: %w", s.src.ID, err)
	}
	defer body.Close()

	var records []types.StateRecord
	if err := json.NewDecoder(body).Decode(&records); err != nil {
		return nil, fmt.Errorf("homeassistant %q: decode states: %w", s.src.ID, err)
	}
	return toLiveValues(records), nil
}

// toLiveValues converts records, dropping those without an entity id.
func toLiveValues(records []types.StateRecord) []types.LiveValue {
	out := make([]types.LiveValue, 0, len(records))
	for _, r := range records {
		if r.EntityID == "" {
			continue
		}
		out = append(out, r.LiveValue())
	}
	return out
}

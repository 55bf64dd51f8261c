package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// LiveValue is the current reading of one entity.
type LiveValue struct {
	EntityID          string    `json:"entity_id"`
	State             string    `json:"state"`
	UnitOfMeasurement string    `json:"unit_of_measurement,omitempty"`
	FriendlyName      string    `json:"friendly_name,omitempty"`
	Icon              string    `json:"icon,omitempty"`
	LastUpdated       time.Time `json:"last_updated"`
}

// Snapshot maps entity IDs to their current values. A Snapshot is read-only
// for the duration of a render pass.
type Snapshot map[string]LiveValue

// Lookup returns the value for entityID, or nil when the entity is absent.
func (s Snapshot) Lookup(entityID string) *LiveValue {
	v, ok := s[entityID]
	if !ok {
		return nil
	}
	return &v
}

// StateRecord is a state object as served by the Home Assistant REST API
// and accepted by the push receiver.
type StateRecord struct {
	EntityID    string     `json:"entity_id" yaml:"entity_id"`
	State       string     `json:"state" yaml:"state"`
	Attributes  Attributes `json:"attributes" yaml:"attributes"`
	LastChanged string     `json:"last_changed,omitempty" yaml:"last_changed"`
	LastUpdated string     `json:"last_updated,omitempty" yaml:"last_updated"`
}

// Attributes holds the subset of entity attributes the card reads.
type Attributes struct {
	UnitOfMeasurement string `json:"unit_of_measurement,omitempty" yaml:"unit_of_measurement"`
	FriendlyName      string `json:"friendly_name,omitempty" yaml:"friendly_name"`
	DeviceClass       string `json:"device_class,omitempty" yaml:"device_class"`
	Icon              string `json:"icon,omitempty" yaml:"icon"`
}

// LiveValue flattens r. An unparseable or empty last_updated leaves the
// timestamp zero.
func (r StateRecord) LiveValue() LiveValue {
	v := LiveValue{
		EntityID:          r.EntityID,
		State:             r.State,
		UnitOfMeasurement: r.Attributes.UnitOfMeasurement,
		FriendlyName:      r.Attributes.FriendlyName,
		Icon:              r.Attributes.Icon,
	}
	if r.LastUpdated != "" {
		if t, err := time.Parse(time.RFC3339Nano, r.LastUpdated); err == nil {
			v.LastUpdated = t.UTC()
		}
	}
	return v
}

// UnmarshalJSON accepts state as a JSON string, number or boolean. Numbers
// keep their literal text.
func (r *StateRecord) UnmarshalJSON(data []byte) error {
	type plain StateRecord
	var aux struct {
		plain
		State json.RawMessage `json:"state"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = StateRecord(aux.plain)

	raw := bytes.TrimSpace(aux.State)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		r.State = ""
	case raw[0] == '"':
		if err := json.Unmarshal(raw, &r.State); err != nil {
			return fmt.Errorf("state: %w", err)
		}
	case raw[0] == '{' || raw[0] == '[':
		return fmt.Errorf("state: must be a scalar, got %s", raw)
	default:
		r.State = string(raw)
	}
	return nil
}

package receiver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/sensordonut/sensordonut/pkg/types"
)

// maxBodyBytes caps a single push request.
const maxBodyBytes = 1 << 20

// Sink is where accepted values go. *store.Store satisfies it.
type Sink interface {
	PutAll(values []types.LiveValue)
}

// Receiver validates pushed state records and stores them.
type Receiver struct {
	store Sink
}

// New creates a Receiver that writes accepted records to st.
func New(st Sink) *Receiver {
	return &Receiver{store: st}
}

// Response is the body returned for an accepted push.
type Response struct {
	Accepted int `json:"accepted"`
}

func (rc *Receiver) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "read body: " + err.Error()})
		return
	}
	if len(body) > maxBodyBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "body too large"})
		return
	}

	records, err := Decode(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	values := make([]types.LiveValue, len(records))
	for i, rec := range records {
		values[i] = rec.LiveValue()
	}
	rc.store.PutAll(values)

	slog.Debug("receiver: states stored", "count", len(values))
	writeJSON(w, http.StatusAccepted, Response{Accepted: len(values)})
}

// Decode parses a single state record or an array of them and checks that
// each has an entity_id.
func Decode(body []byte) ([]types.StateRecord, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("empty body")
	}

	var records []types.StateRecord
	if body[0] == '[' {
		if err := json.Unmarshal(body, &records); err != nil {
			return nil, fmt.Errorf("decode states: %w", err)
		}
	} else {
		var rec types.StateRecord
		if err := json.Unmarshal(body, &rec); err != nil {
			return nil, fmt.Errorf("decode state: %w", err)
		}
		records = []types.StateRecord{rec}
	}

	for i, rec := range records {
		if rec.EntityID == "" {
			return nil, fmt.Errorf("states[%d]: entity_id is required", i)
		}
	}
	return records, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("receiver: encode response", "err", err)
	}
}

package receiver_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sensordonut/sensordonut/internal/receiver"
	"github.com/sensordonut/sensordonut/internal/store"
)

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/states", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestReceiver_SingleRecord(t *testing.T) {
	st := store.New(5 * time.Minute)
	rec := post(t, receiver.New(st), `{"entity_id":"sensor.cpu","state":42,"attributes":{"unit_of_measurement":"%"}}`)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status: got %d, want 202 (body %s)", rec.Code, rec.Body)
	}
	if got := rec.Body.String(); got != "{\"accepted\":1}\n" {
		t.Errorf("body: got %q", got)
	}
	e, ok := st.Get("sensor.cpu")
	if !ok {
		t.Fatal("sensor.cpu not stored")
	}
	if e.Value.State != "42" || e.Value.UnitOfMeasurement != "%" {
		t.Errorf("stored value: got %+v", e.Value)
	}
}

func TestReceiver_Batch(t *testing.T) {
	st := store.New(5 * time.Minute)
	rec := post(t, receiver.New(st), `[
		{"entity_id":"sensor.a","state":"1"},
		{"entity_id":"sensor.b","state":"2"}
	]`)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status: got %d, want 202", rec.Code)
	}
	if st.Count() != 2 {
		t.Errorf("store count: got %d, want 2", st.Count())
	}
}

func TestReceiver_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"not json", "hello"},
		{"missing entity_id", `{"state":"1"}`},
		{"one bad record in batch", `[{"entity_id":"sensor.a","state":"1"},{"state":"2"}]`},
		{"object state", `{"entity_id":"sensor.a","state":{"x":1}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.New(5 * time.Minute)
			rec := post(t, receiver.New(st), tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rec.Code)
			}
			if st.Count() != 0 {
				t.Errorf("store count: got %d, want 0 (batch must be all-or-nothing)", st.Count())
			}
		})
	}
}

func TestReceiver_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/states", nil)
	rec := httptest.NewRecorder()
	receiver.New(store.New(time.Minute)).ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status: got %d, want 405", rec.Code)
	}
}

func TestReceiver_TooLarge(t *testing.T) {
	body := `{"entity_id":"sensor.a","state":"` + strings.Repeat("x", 1<<20) + `"}`
	rec := post(t, receiver.New(store.New(time.Minute)), body)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status: got %d, want 413", rec.Code)
	}
}

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// okHandler answers 200 "ok".
var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ok"))
})

func call(t *testing.T, mw func(http.Handler) http.Handler, header, key string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/card", nil)
	if key != "" {
		req.Header.Set(header, key)
	}
	rec := httptest.NewRecorder()
	mw(okHandler).ServeHTTP(rec, req)
	return rec
}

func TestAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		key      string
		sendHdr  string
		sendKey  string
		wantCode int
	}{
		{"mode none passes through", "none", "secret", "", "", http.StatusOK},
		{"empty key passes through", "apikey", "", "", "", http.StatusOK},
		{"correct key", "apikey", "supersecret", "x-api-key", "supersecret", http.StatusOK},
		{"header name case-insensitive", "apikey", "supersecret", "X-Api-Key", "supersecret", http.StatusOK},
		{"wrong key", "apikey", "supersecret", "x-api-key", "wrong", http.StatusUnauthorized},
		{"missing key", "apikey", "supersecret", "", "", http.StatusUnauthorized},
		{"key in wrong header", "apikey", "supersecret", "authorization", "supersecret", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, APIKey(tt.mode, "x-api-key", tt.key), tt.sendHdr, tt.sendKey)
			if rec.Code != tt.wantCode {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestAPIKey_UnauthorizedBody(t *testing.T) {
	rec := call(t, APIKey("apikey", "x-api-key", "k"), "x-api-key", "nope")
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}
	if body := rec.Body.String(); body != "{\"error\":\"invalid api key\"}\n" {
		t.Errorf("body: got %q", body)
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Valid(t *testing.T) {
	yaml := `
card_file: /etc/sensordonut/card.yaml
server:
  http_port: 9000
  cors_origins: ["http://ha.local:8123"]
  push_interval: 10s
state:
  ttl: 2m
  poll_interval: 15s
sources:
  - id: ha
    type: homeassistant
    endpoint: "http://ha.local:8123"
    auth:
      mode: bearer
      token_env: HA_TOKEN
  - id: node
    type: prometheus
    endpoint: "http://localhost:9100/metrics"
    metrics:
      - name: node_load1
        entity: sensor.load
        unit: ""
      - name: node_memory_used_percent
        unit: "%"
  - id: local
    type: file
    path: ./states.yaml
logging:
  level: debug
  format: text
`
	cfg := loadFromString(t, yaml)

	if cfg.CardFile != "/etc/sensordonut/card.yaml" {
		t.Errorf("card_file: got %q", cfg.CardFile)
	}
	if cfg.Server.HTTPPort != 9000 {
		t.Errorf("http_port: got %d", cfg.Server.HTTPPort)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "http://ha.local:8123" {
		t.Errorf("cors_origins: got %v", cfg.Server.CORSOrigins)
	}
	if cfg.Server.PushInterval != 10*time.Second {
		t.Errorf("push_interval: got %v", cfg.Server.PushInterval)
	}
	if cfg.State.TTL != 2*time.Minute {
		t.Errorf("state.ttl: got %v", cfg.State.TTL)
	}
	if cfg.State.PollInterval != 15*time.Second {
		t.Errorf("state.poll_interval: got %v", cfg.State.PollInterval)
	}
	if len(cfg.Sources) != 3 {
		t.Fatalf("sources: got %d, want 3", len(cfg.Sources))
	}
	if cfg.Sources[0].Auth.TokenEnv != "HA_TOKEN" {
		t.Errorf("sources[0].auth.token_env: got %q", cfg.Sources[0].Auth.TokenEnv)
	}
	prom := cfg.Sources[1]
	if len(prom.Metrics) != 2 {
		t.Fatalf("prometheus metrics: got %d, want 2", len(prom.Metrics))
	}
	if prom.Metrics[0].EntityID() != "sensor.load" {
		t.Errorf("metrics[0] entity: got %q", prom.Metrics[0].EntityID())
	}
	if prom.Metrics[1].EntityID() != "node_memory_used_percent" {
		t.Errorf("metrics[1] entity: got %q", prom.Metrics[1].EntityID())
	}
	if prom.Metrics[1].Unit != "%" {
		t.Errorf("metrics[1] unit: got %q", prom.Metrics[1].Unit)
	}
	if cfg.Sources[2].Path != "./states.yaml" {
		t.Errorf("file path: got %q", cfg.Sources[2].Path)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("logging: got %+v", cfg.Logging)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg := loadFromString(t, "sources: []\n")

	if cfg.CardFile != DefaultCardFile {
		t.Errorf("card_file: got %q, want %q", cfg.CardFile, DefaultCardFile)
	}
	if cfg.Server.HTTPPort != DefaultHTTPPort {
		t.Errorf("http_port: got %d, want %d", cfg.Server.HTTPPort, DefaultHTTPPort)
	}
	if cfg.Server.PushInterval != DefaultPushInterval {
		t.Errorf("push_interval: got %v, want %v", cfg.Server.PushInterval, DefaultPushInterval)
	}
	if cfg.State.TTL != DefaultStateTTL {
		t.Errorf("state.ttl: got %v, want %v", cfg.State.TTL, DefaultStateTTL)
	}
	if cfg.State.PollInterval != DefaultPollInterval {
		t.Errorf("state.poll_interval: got %v, want %v", cfg.State.PollInterval, DefaultPollInterval)
	}
	if cfg.Server.Auth.EffectiveHeader() != DefaultAuthHeader {
		t.Errorf("auth header: got %q", cfg.Server.Auth.EffectiveHeader())
	}
	if cfg.Logging.Format != DefaultLogFormat {
		t.Errorf("logging.format: got %q", cfg.Logging.Format)
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.Server.HTTPPort != DefaultHTTPPort {
		t.Errorf("http_port: got %d", cfg.Server.HTTPPort)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SENSORDONUT_SERVER_HTTP_PORT", "9191")
	t.Setenv("SENSORDONUT_STATE_TTL", "45s")
	t.Setenv("SENSORDONUT_CARD_FILE", "/tmp/other.yaml")

	cfg := loadFromString(t, "server:\n  http_port: 8000\n")

	if cfg.Server.HTTPPort != 9191 {
		t.Errorf("http_port: got %d, want 9191", cfg.Server.HTTPPort)
	}
	if cfg.State.TTL != 45*time.Second {
		t.Errorf("state.ttl: got %v, want 45s", cfg.State.TTL)
	}
	if cfg.CardFile != "/tmp/other.yaml" {
		t.Errorf("card_file: got %q", cfg.CardFile)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad port", "server:\n  http_port: 70000\n", "http_port"},
		{"zero push interval", "server:\n  push_interval: 0s\n", "push_interval"},
		{"unknown server auth", "server:\n  auth:\n    mode: mtls\n", "unknown mode"},
		{"apikey without env", "server:\n  auth:\n    mode: apikey\n", "key_env"},
		{"negative ttl", "state:\n  ttl: -1s\n", "state.ttl"},
		{"zero poll", "state:\n  poll_interval: 0s\n", "poll_interval"},
		{"missing id", "sources:\n  - type: file\n    path: x.yaml\n", "id is required"},
		{"duplicate id", "sources:\n  - {id: a, type: file, path: x}\n  - {id: a, type: file, path: y}\n", "duplicate id"},
		{"unknown type", "sources:\n  - {id: a, type: influx, endpoint: http://x}\n", "unknown type"},
		{"ha without endpoint", "sources:\n  - {id: a, type: homeassistant}\n", "endpoint is required"},
		{"file without path", "sources:\n  - {id: a, type: file}\n", "path is required"},
		{"metric without name", "sources:\n  - id: a\n    type: prometheus\n    endpoint: http://x\n    metrics:\n      - entity: sensor.x\n", "name is required"},
		{"unknown source auth", "sources:\n  - id: a\n    type: file\n    path: x\n    auth:\n      mode: mtls\n", "unknown auth mode"},
		{"bad log format", "logging:\n  format: xml\n", "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := loadStringErr(t, tt.yaml)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/sensordonut.yaml")
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestAuthConfig_EnvResolution(t *testing.T) {
	t.Setenv("TEST_SD_KEY", "k-123")
	t.Setenv("TEST_SD_TOKEN", "tok")
	t.Setenv("TEST_SD_PASS", "secret")

	a := AuthConfig{KeyEnv: "TEST_SD_KEY", TokenEnv: "TEST_SD_TOKEN", PasswordEnv: "TEST_SD_PASS"}
	if a.Key() != "k-123" {
		t.Errorf("Key: got %q", a.Key())
	}
	if a.Token() != "tok" {
		t.Errorf("Token: got %q", a.Token())
	}
	if a.Password() != "secret" {
		t.Errorf("Password: got %q", a.Password())
	}
	if (AuthConfig{}).Key() != "" {
		t.Error("empty KeyEnv should resolve to empty key")
	}

	s := ServerAuthConfig{KeyEnv: "TEST_SD_KEY", Header: "X-Custom"}
	if s.Key() != "k-123" || s.EffectiveHeader() != "X-Custom" {
		t.Errorf("server auth: key %q header %q", s.Key(), s.EffectiveHeader())
	}
}

// ── helpers ──

func loadFromString(t *testing.T, content string) *Config {
	t.Helper()
	cfg, err := Load(writeTemp(t, content))
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	return cfg
}

func loadStringErr(t *testing.T, content string) error {
	t.Helper()
	_, err := Load(writeTemp(t, content))
	return err
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sensordonut.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

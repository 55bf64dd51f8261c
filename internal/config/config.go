package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// SENSORDONUT_SERVER_HTTP_PORT.
const EnvPrefix = "SENSORDONUT"

// Default values applied when fields are absent from the config file.
const (
	DefaultCardFile     = "card.yaml"
	DefaultHTTPPort     = 8080
	DefaultPushInterval = 30 * time.Second
	DefaultStateTTL     = 5 * time.Minute
	DefaultPollInterval = 30 * time.Second
	DefaultAuthHeader   = "x-api-key"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "json"
)

// Source type names.
const (
	SourceHomeAssistant = "homeassistant"
	SourcePrometheus    = "prometheus"
	SourceFile          = "file"
)

// Config is the top-level application configuration.
type Config struct {
	// CardFile is the path of the card definition YAML.
	CardFile string        `mapstructure:"card_file" yaml:"card_file"`
	Server   ServerConfig  `mapstructure:"server"    yaml:"server"`
	State    StateConfig   `mapstructure:"state"     yaml:"state"`
	Sources  []Source      `mapstructure:"sources"   yaml:"sources"`
	Logging  LoggingConfig `mapstructure:"logging"   yaml:"logging"`
}

// ServerConfig holds the HTTP surface settings.
type ServerConfig struct {
	// HTTPPort is the port the REST API, HTML card and WebSocket hub listen on.
	HTTPPort int `mapstructure:"http_port" yaml:"http_port"`

	// CORSOrigins lists the origins allowed to call the API. Empty allows all.
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`

	// PushInterval is the WebSocket keepalive broadcast interval.
	PushInterval time.Duration `mapstructure:"push_interval" yaml:"push_interval"`

	// Auth configures how incoming API requests are authenticated.
	Auth ServerAuthConfig `mapstructure:"auth" yaml:"auth"`
}

// ServerAuthConfig configures REST API authentication.
type ServerAuthConfig struct {
	// Mode is one of: apikey | none.
	Mode string `mapstructure:"mode" yaml:"mode"`

	// KeyEnv is the name of the environment variable holding the expected API key.
	KeyEnv string `mapstructure:"key_env" yaml:"key_env"`

	// Header is the request header carrying the key. Defaults to x-api-key.
	Header string `mapstructure:"header" yaml:"header"`
}

// Key returns the server API key resolved from the environment.
func (a ServerAuthConfig) Key() string {
	return lookupEnv(a.KeyEnv)
}

// EffectiveHeader returns Header or the default header name.
func (a ServerAuthConfig) EffectiveHeader() string {
	if a.Header == "" {
		return DefaultAuthHeader
	}
	return a.Header
}

// StateConfig controls the entity store and source polling.
type StateConfig struct {
	// TTL is how long an entity value stays live without a refresh. Zero
	// keeps values forever.
	TTL time.Duration `mapstructure:"ttl" yaml:"ttl"`

	// PollInterval controls how often each source is fetched.
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
}

// Source describes one place entity states are pulled from.
type Source struct {
	// ID is a unique, human-readable identifier for this source.
	ID string `mapstructure:"id" yaml:"id"`

	// Type is one of: homeassistant | prometheus | file.
	Type string `mapstructure:"type" yaml:"type"`

	// Endpoint is the base URL (homeassistant) or metrics URL (prometheus).
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// Path is the state file read by the file source.
	Path string `mapstructure:"path" yaml:"path"`

	// Metrics selects and maps prometheus metric families. Empty exports
	// every family under its own name.
	Metrics []MetricMapping `mapstructure:"metrics" yaml:"metrics"`

	Auth AuthConfig `mapstructure:"auth" yaml:"auth"`
	TLS  TLSConfig  `mapstructure:"tls"  yaml:"tls"`
}

// MetricMapping turns one metric family into an entity.
type MetricMapping struct {
	Name   string `mapstructure:"name"   yaml:"name"`
	Entity string `mapstructure:"entity" yaml:"entity"`
	Unit   string `mapstructure:"unit"   yaml:"unit"`
}

// EntityID returns Entity, or Name when no entity id was given.
func (m MetricMapping) EntityID() string {
	if m.Entity != "" {
		return m.Entity
	}
	return m.Name
}

// AuthConfig specifies how requests to a source are authenticated.
type AuthConfig struct {
	// Mode is one of: apikey | bearer | basic | none.
	Mode string `mapstructure:"mode" yaml:"mode"`

	// Header is the HTTP header name used in apikey mode.
	Header string `mapstructure:"header" yaml:"header"`
	// KeyEnv is the name of the environment variable that holds the key value.
	KeyEnv string `mapstructure:"key_env" yaml:"key_env"`

	// TokenEnv is the name of the environment variable that holds the bearer token.
	TokenEnv string `mapstructure:"token_env" yaml:"token_env"`

	// Username is the literal basic-auth username.
	Username string `mapstructure:"username" yaml:"username"`
	// PasswordEnv is the name of the environment variable that holds the password.
	PasswordEnv string `mapstructure:"password_env" yaml:"password_env"`
}

// Key returns the API key value resolved from the environment.
func (a AuthConfig) Key() string { return lookupEnv(a.KeyEnv) }

// Token returns the bearer token value resolved from the environment.
func (a AuthConfig) Token() string { return lookupEnv(a.TokenEnv) }

// Password returns the basic-auth password resolved from the environment.
func (a AuthConfig) Password() string { return lookupEnv(a.PasswordEnv) }

// TLSConfig holds per-source TLS dial options.
type TLSConfig struct {
	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // debug | info | warn | error
	Format string `mapstructure:"format" yaml:"format"` // json | text
}

// Load reads the config file at path, layers SENSORDONUT_* environment
// overrides on top and validates the result. An empty path loads defaults
// and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("card_file", DefaultCardFile)

	v.SetDefault("server.http_port", DefaultHTTPPort)
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("server.push_interval", DefaultPushInterval)
	v.SetDefault("server.auth.mode", "none")
	v.SetDefault("server.auth.key_env", "")
	v.SetDefault("server.auth.header", DefaultAuthHeader)

	v.SetDefault("state.ttl", DefaultStateTTL)
	v.SetDefault("state.poll_interval", DefaultPollInterval)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	if cfg.CardFile == "" {
		return fmt.Errorf("card_file is required")
	}
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d out of range", cfg.Server.HTTPPort)
	}
	if cfg.Server.PushInterval <= 0 {
		return fmt.Errorf("server.push_interval must be positive")
	}
	switch cfg.Server.Auth.Mode {
	case "apikey":
		if cfg.Server.Auth.KeyEnv == "" {
			return fmt.Errorf("server.auth.key_env is required in apikey mode")
		}
	case "none", "":
	default:
		return fmt.Errorf("server.auth: unknown mode %q", cfg.Server.Auth.Mode)
	}
	if cfg.State.TTL < 0 {
		return fmt.Errorf("state.ttl must not be negative")
	}
	if cfg.State.PollInterval <= 0 {
		return fmt.Errorf("state.poll_interval must be positive")
	}

	seen := make(map[string]bool, len(cfg.Sources))
	for i, src := range cfg.Sources {
		if src.ID == "" {
			return fmt.Errorf("sources[%d]: id is required", i)
		}
		if seen[src.ID] {
			return fmt.Errorf("sources[%d]: duplicate id %q", i, src.ID)
		}
		seen[src.ID] = true

		switch src.Type {
		case SourceHomeAssistant, SourcePrometheus:
			if src.Endpoint == "" {
				return fmt.Errorf("sources[%d] %q: endpoint is required", i, src.ID)
			}
		case SourceFile:
			if src.Path == "" {
				return fmt.Errorf("sources[%d] %q: path is required", i, src.ID)
			}
		default:
			return fmt.Errorf("sources[%d] %q: unknown type %q", i, src.ID, src.Type)
		}
		for j, m := range src.Metrics {
			if m.Name == "" {
				return fmt.Errorf("sources[%d] %q: metrics[%d]: name is required", i, src.ID, j)
			}
		}
		switch src.Auth.Mode {
		case "apikey", "bearer", "basic", "none", "":
		default:
			return fmt.Errorf("sources[%d] %q: unknown auth mode %q", i, src.ID, src.Auth.Mode)
		}
	}

	switch strings.ToLower(cfg.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format: unknown format %q", cfg.Logging.Format)
	}
	return nil
}

func lookupEnv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}

// Package config loads the application settings (sensordonut.yaml).
//
// Top-level types:
//   - Config{CardFile, Server, State, Sources, Logging}: full settings tree
//   - ServerConfig: http_port, cors_origins, push_interval, auth
//   - StateConfig: ttl and poll_interval for the entity store and pollers
//   - Source: id, type (homeassistant|prometheus|file), endpoint or path,
//     metric mappings, auth, tls
//   - AuthConfig: mode (apikey|bearer|basic|none), header, key_env,
//     token_env, username, password_env; Key(), Token() and Password()
//     resolve secrets from environment variables
//
// Load(path) reads the file with viper, applies defaults (port 8080, 5m TTL,
// 30s poll, 30s push) and SENSORDONUT_* environment overrides, then validates
// required fields and enums. The card definition itself lives in a separate
// file named by card_file and is handled by package card.
package config

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	yaml "go.yaml.in/yaml/v3"
)

// Load builds the configuration from an optional file and the environment.
// Environment values override file values. getenv is usually os.Getenv.
//
// An empty path means environment only; a path that does not exist is
// reported and ignored so the same deployment can run with or without it.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := Config{}

	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			slog.Warn("config file not found, using environment only", "path", path)
		} else {
			fileCfg, err := parseFile(path)
			if err != nil {
				return Config{}, fmt.Errorf("load config: %w", err)
			}
			cfg = fileCfg
		}
	}

	applyEnv(&cfg, getenv)
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	if port := strings.TrimSpace(getenv("PORT")); port != "" {
		cfg.System.BindAddress = ":" + port
	}
	set(&cfg.System.BindAddress, "BIND_ADDRESS")
	set(&cfg.System.LogLevel, "LOG_LEVEL")

	set(&cfg.Twilio.AccountSID, "TWILIO_ACCOUNT_SID")
	set(&cfg.Twilio.AuthToken, "TWILIO_AUTH_TOKEN")
	set(&cfg.Twilio.From, "TWILIO_WHATSAPP_FROM")
	set(&cfg.Twilio.BaseURL, "TWILIO_API_BASE_URL")

	set(&cfg.Alerts.DefaultRecipient, "ADMIN_PHONE")

	set(&cfg.Auth.APIKey, "API_KEY")
	set(&cfg.Auth.APIKeyHash, "API_KEY_HASH")
}

func parseFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	jb, err := toJSON(path, data)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(jb))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return Config{}, fmt.Errorf("parse config: trailing data")
	}
	return cfg, nil
}

// toJSON converts YAML files to JSON so both formats go through the same
// strict decoder.
func toJSON(path string, data []byte) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return data, nil
	}

	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	j, err := json.Marshal(normalizeYAML(v))
	if err != nil {
		return nil, fmt.Errorf("yaml->json marshal: %w", err)
	}
	return j, nil
}

// normalizeYAML ensures all map keys are strings so the result can be JSON-marshaled.
func normalizeYAML(in any) any {
	switch x := in.(type) {
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[fmt.Sprint(k)] = normalizeYAML(v)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[k] = normalizeYAML(v)
		}
		return m
	case []any:
		for i := range x {
			x[i] = normalizeYAML(x[i])
		}
		return x
	default:
		return in
	}
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Config is the process-wide configuration. It is built once at startup
// and treated as read-only afterwards.
type Config struct {
	System SystemConfig `json:"system"`
	Twilio TwilioConfig `json:"twilio"`
	Alerts AlertsConfig `json:"alerts"`
	Auth   AuthConfig   `json:"auth"`
}

type SystemConfig struct {
	BindAddress string `json:"bind_address"`
	LogLevel    string `json:"log_level"`
}

type TwilioConfig struct {
	AccountSID string `json:"account_sid"`
	AuthToken  string `json:"auth_token"`
	From       string `json:"from"`
	BaseURL    string `json:"base_url,omitempty"`
}

type AlertsConfig struct {
	DefaultRecipient string `json:"default_recipient,omitempty"`
}

// AuthConfig holds the expected x-api-key. When both fields are empty the
// webhook runs in open mode.
type AuthConfig struct {
	APIKey     string `json:"api_key,omitempty"`
	APIKeyHash string `json:"api_key_hash,omitempty"`
}

// Enabled reports whether callers must present an API key.
func (a AuthConfig) Enabled() bool {
	return a.APIKey != "" || a.APIKeyHash != ""
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		System: SystemConfig{
			BindAddress: ":8080",
			LogLevel:    "info",
		},
		Twilio: TwilioConfig{
			BaseURL: "https://api.twilio.com",
		},
	}
}

// ApplyDefaults fills zero-value fields with defaults.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if c.System.BindAddress == "" {
		c.System.BindAddress = d.System.BindAddress
	}
	if c.System.LogLevel == "" {
		c.System.LogLevel = d.System.LogLevel
	}
	if c.Twilio.BaseURL == "" {
		c.Twilio.BaseURL = d.Twilio.BaseURL
	}
	c.Twilio.BaseURL = strings.TrimRight(c.Twilio.BaseURL, "/")
}

// Validate checks the config for missing credentials and malformed values.
func (c *Config) Validate() error {
	var errs []string

	if c.Twilio.AccountSID == "" {
		errs = append(errs, "twilio.account_sid is required (TWILIO_ACCOUNT_SID)")
	}
	if c.Twilio.AuthToken == "" {
		errs = append(errs, "twilio.auth_token is required (TWILIO_AUTH_TOKEN)")
	}
	if c.Twilio.From == "" {
		errs = append(errs, "twilio.from is required (TWILIO_WHATSAPP_FROM)")
	}
	if u, err := url.Parse(c.Twilio.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Sprintf("twilio.base_url must be a valid http(s) URL (got %q)", c.Twilio.BaseURL))
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.System.LogLevel] {
		errs = append(errs, fmt.Sprintf("system.log_level must be one of: debug, info, warn, error (got %q)", c.System.LogLevel))
	}

	if c.Auth.APIKeyHash != "" {
		if _, err := bcrypt.Cost([]byte(c.Auth.APIKeyHash)); err != nil {
			errs = append(errs, "auth.api_key_hash is not a valid bcrypt hash: "+err.Error())
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n  " + strings.Join(errs, "\n  "))
	}
	return nil
}

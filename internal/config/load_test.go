package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func requiredEnv() map[string]string {
	return map[string]string{
		"TWILIO_ACCOUNT_SID":   "AC123",
		"TWILIO_AUTH_TOKEN":    "secret",
		"TWILIO_WHATSAPP_FROM": "whatsapp:+14155238886",
	}
}

func TestLoadFromEnv(t *testing.T) {
	env := requiredEnv()
	env["ADMIN_PHONE"] = "+15550000"
	env["API_KEY"] = "k1"
	env["PORT"] = "9000"

	cfg, err := Load("", envMap(env))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Twilio.AccountSID != "AC123" || cfg.Twilio.AuthToken != "secret" || cfg.Twilio.From != "whatsapp:+14155238886" {
		t.Fatalf("unexpected twilio config: %+v", cfg.Twilio)
	}
	if cfg.Alerts.DefaultRecipient != "+15550000" {
		t.Fatalf("default recipient = %q", cfg.Alerts.DefaultRecipient)
	}
	if !cfg.Auth.Enabled() || cfg.Auth.APIKey != "k1" {
		t.Fatalf("expected auth enabled with key, got %+v", cfg.Auth)
	}
	if cfg.System.BindAddress != ":9000" {
		t.Fatalf("bind address = %q", cfg.System.BindAddress)
	}
	if cfg.System.LogLevel != "info" {
		t.Fatalf("log level = %q", cfg.System.LogLevel)
	}
	if cfg.Twilio.BaseURL != "https://api.twilio.com" {
		t.Fatalf("base url = %q", cfg.Twilio.BaseURL)
	}
}

func TestLoadOpenModeWithoutKey(t *testing.T) {
	cfg, err := Load("", envMap(requiredEnv()))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.Enabled() {
		t.Fatal("expected open mode when no key is configured")
	}
	if cfg.Alerts.DefaultRecipient != "" {
		t.Fatalf("expected no default recipient, got %q", cfg.Alerts.DefaultRecipient)
	}
}

func TestLoadMissingCredentials(t *testing.T) {
	_, err := Load("", envMap(map[string]string{"TWILIO_ACCOUNT_SID": "AC123"}))
	if err == nil {
		t.Fatal("expected error for missing credentials")
	}
	for _, want := range []string{"TWILIO_AUTH_TOKEN", "TWILIO_WHATSAPP_FROM"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
	if strings.Contains(err.Error(), "TWILIO_ACCOUNT_SID") {
		t.Errorf("error %q should not mention the provided account sid", err)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	env := requiredEnv()
	env["LOG_LEVEL"] = "verbose"
	env["API_KEY_HASH"] = "not-a-hash"
	env["TWILIO_API_BASE_URL"] = "ftp://example"

	_, err := Load("", envMap(env))
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"log_level", "api_key_hash", "base_url"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestLoadAcceptsBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("k1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	env := requiredEnv()
	env["API_KEY_HASH"] = string(hash)

	cfg, err := Load("", envMap(env))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Auth.Enabled() {
		t.Fatal("expected auth enabled")
	}
}

func TestLoadYAMLFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rowalert.yaml")
	data := `
system:
  bind_address: ":7000"
  log_level: debug
twilio:
  account_sid: ACfile
  auth_token: filetoken
  from: "whatsapp:+1000"
  base_url: "http://127.0.0.1:9999/"
alerts:
  default_recipient: "+1999"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path, envMap(map[string]string{"TWILIO_AUTH_TOKEN": "envtoken"}))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Twilio.AuthToken != "envtoken" {
		t.Fatalf("env should override file, got %q", cfg.Twilio.AuthToken)
	}
	if cfg.Twilio.AccountSID != "ACfile" || cfg.System.BindAddress != ":7000" || cfg.System.LogLevel != "debug" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Twilio.BaseURL != "http://127.0.0.1:9999" {
		t.Fatalf("base url not trimmed: %q", cfg.Twilio.BaseURL)
	}
	if cfg.Alerts.DefaultRecipient != "+1999" {
		t.Fatalf("default recipient = %q", cfg.Alerts.DefaultRecipient)
	}
}

func TestLoadJSONFileRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rowalert.json")
	if err := os.WriteFile(path, []byte(`{"twilio":{"account_sid":"AC1"},"monitors":[]}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Load(path, envMap(requiredEnv())); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoadMissingFileFallsBackToEnv(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), envMap(requiredEnv()))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Twilio.AccountSID != "AC123" {
		t.Fatalf("account sid = %q", cfg.Twilio.AccountSID)
	}
}

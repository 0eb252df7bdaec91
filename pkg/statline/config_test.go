package statline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harunnryd/statline/pkg/errorsx"
)

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "statsd:\n  host: metrics.internal\n  port: 8125\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Enabled {
		t.Fatalf("enabled must default to false")
	}
	if cfg.Prefix != "statsd" {
		t.Fatalf("expected default prefix, got %q", cfg.Prefix)
	}
	if cfg.Host != "metrics.internal" || cfg.Port != 8125 {
		t.Fatalf("unexpected endpoint %s:%d", cfg.Host, cfg.Port)
	}
}

func TestLoadConfigAbsentBlockIsDisabled(t *testing.T) {
	path := writeConfig(t, "environment: development\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Enabled {
		t.Fatalf("absent block must be disabled")
	}
	if cfg.Prefix != "statsd" {
		t.Fatalf("expected default prefix, got %q", cfg.Prefix)
	}
}

func TestLoadConfigFullBlock(t *testing.T) {
	path := writeConfig(t, `statsd:
  enabled: true
  host: metrics.internal
  port: 9125
  prefix: myapp
  dns_servers:
    - 10.0.0.53:53
    - 10.0.0.54
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !cfg.Enabled || cfg.Host != "metrics.internal" || cfg.Port != 9125 || cfg.Prefix != "myapp" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if len(cfg.DNSServers) != 2 || cfg.DNSServers[0] != "10.0.0.53:53" {
		t.Fatalf("unexpected dns servers %v", cfg.DNSServers)
	}
}

func TestLoadConfigExpandsEnv(t *testing.T) {
	t.Setenv("STATSD_HOST", "10.9.8.7")
	path := writeConfig(t, "statsd:\n  host: ${STATSD_HOST}\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Host != "10.9.8.7" {
		t.Fatalf("expected env expansion, got %q", cfg.Host)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestFromSettingsWeakTyping(t *testing.T) {
	cfg, err := FromSettings(map[string]any{
		"enabled": "true",
		"host":    "metrics.internal",
		"port":    "8125",
	})
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !cfg.Enabled || cfg.Host != "metrics.internal" || cfg.Port != 8125 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Prefix != "statsd" {
		t.Fatalf("expected default prefix, got %q", cfg.Prefix)
	}
}

func TestFromSettingsRejectsUnknownKeys(t *testing.T) {
	_, err := FromSettings(map[string]any{"hots": "metrics.internal"})
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !errorsx.HasReason(err, errorsx.ReasonConfigInvalid) {
		t.Fatalf("expected config reason, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	if err := (Config{}).Validate(); err != nil {
		t.Fatalf("disabled config must validate, got %v", err)
	}
	if err := (Config{Enabled: true, Host: "metrics.internal", Port: 8125}).Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	err := Config{Enabled: true, Port: 8125}.Validate()
	if err == nil || !errorsx.HasReason(err, errorsx.ReasonConfigInvalid) {
		t.Fatalf("expected config reason for missing host, got %v", err)
	}
	err = Config{Enabled: true, Host: "metrics.internal"}.Validate()
	if err == nil || !errorsx.HasReason(err, errorsx.ReasonConfigInvalid) {
		t.Fatalf("expected config reason for missing port, got %v", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

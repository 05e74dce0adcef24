package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `
google:
  credentials_file: /etc/agent/credentials.json
  token_dir: /var/lib/agent/tokens
memory:
  path: /var/lib/agent/sessions.db
metrics:
  enabled: true
  addr: ":9191"
logging:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Google.TokenDir != "/var/lib/agent/tokens" {
		t.Errorf("TokenDir = %q, want /var/lib/agent/tokens", cfg.Google.TokenDir)
	}
	if cfg.Metrics.Addr != ":9191" {
		t.Errorf("Metrics.Addr = %q, want :9191", cfg.Metrics.Addr)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: warn
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Google.TokenDir != "token_files" {
		t.Errorf("TokenDir = %q, want default token_files", cfg.Google.TokenDir)
	}
	if cfg.Memory.Path != "sessions.db" {
		t.Errorf("Memory.Path = %q, want default sessions.db", cfg.Memory.Path)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = false, want default true")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatal("Load() expected error for missing file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "google: [not a mapping")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected error for invalid YAML")
	}
}

func TestValidateRejectsBadLevel(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: verbose
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected error for unknown log level")
	}
}

func TestValidateRejectsEmptyTokenDir(t *testing.T) {
	path := writeConfig(t, `
google:
  token_dir: ""
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected error for empty token dir")
	}
}

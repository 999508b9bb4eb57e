package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"mdvault/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Vault != DefaultVaultPath {
		t.Errorf("expected default vault, got %s", cfg.Vault)
	}
	if cfg.Debounce != time.Second {
		t.Errorf("expected 1s debounce, got %s", cfg.Debounce)
	}
	if cfg.Sort != domain.SortNameAsc {
		t.Errorf("expected name-asc, got %s", cfg.Sort)
	}
	if cfg.Echoes != DefaultEchoes() {
		t.Errorf("unexpected echoes: %+v", cfg.Echoes)
	}
	if !cfg.Index.Enabled {
		t.Error("index should be enabled by default")
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
vault: /data/notes
sort: modified-desc
debounce: 250ms
log_level: debug
index:
  enabled: false
echoes:
  rename: 1
  move: 1
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Vault != "/data/notes" {
		t.Errorf("vault = %s", cfg.Vault)
	}
	if cfg.Sort != domain.SortModifiedDesc {
		t.Errorf("sort = %s", cfg.Sort)
	}
	if cfg.Debounce != 250*time.Millisecond {
		t.Errorf("debounce = %s", cfg.Debounce)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level = %s", cfg.LogLevel)
	}
	if cfg.Index.Enabled {
		t.Error("index should be disabled")
	}
	if cfg.Echoes.Rename != 1 || cfg.Echoes.Move != 1 {
		t.Errorf("rename/move echoes not applied: %+v", cfg.Echoes)
	}
	if cfg.Echoes.Copy != 2 || cfg.Echoes.Create != 1 {
		t.Errorf("unset echoes should keep defaults: %+v", cfg.Echoes)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("MDVAULT_VAULT", "/env/notes")
	t.Setenv("MDVAULT_ECHOES_SAVE", "3")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Vault != "/env/notes" {
		t.Errorf("vault = %s", cfg.Vault)
	}
	if cfg.Echoes.Save != 3 {
		t.Errorf("echoes.save = %d", cfg.Echoes.Save)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown sort", content: "sort: size-asc\n"},
		{name: "negative echo", content: "echoes:\n  create: -1\n"},
		{name: "malformed yaml", content: "vault: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSaveVaultPath(t *testing.T) {
	path := writeConfig(t, "sort: name-desc\n")

	if err := SaveVaultPath(path, "/saved/vault"); err != nil {
		t.Fatalf("SaveVaultPath failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Vault != "/saved/vault" {
		t.Errorf("vault = %s", cfg.Vault)
	}
	if cfg.Sort != domain.SortNameDesc {
		t.Errorf("existing settings must survive, sort = %s", cfg.Sort)
	}
}

func TestSaveVaultPath_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	if err := SaveVaultPath(path, "/v"); err != nil {
		t.Fatalf("SaveVaultPath failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
}

func TestVaultPath_Env(t *testing.T) {
	t.Setenv("MDVAULT_VAULT", "/from/env")
	if got := VaultPath(); got != "/from/env" {
		t.Errorf("got %s", got)
	}
}

func TestVaultPath_ConfigFile(t *testing.T) {
	t.Setenv("MDVAULT_VAULT", "")
	path := writeConfig(t, "vault: /from/file\n")

	orig := ConfigPath
	ConfigPath = func() string { return path }
	defer func() { ConfigPath = orig }()

	if got := VaultPath(); got != "/from/file" {
		t.Errorf("got %s", got)
	}
}

// Copyright 2025 Certen Protocol

package config

import (
	"os"
	"testing"

	"github.com/certen/fogdb/pkg/limits"
)

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("MAX_DOC_SIZE")
	os.Unsetenv("MAX_ENTRY_SIZE")
	os.Unsetenv("VAULT_DATA_DIR")
	os.Unsetenv("LOG_LEVEL")

	cfg := Load()
	if cfg.MaxDocSize != limits.MaxDocSize {
		t.Errorf("MaxDocSize = %d, want %d", cfg.MaxDocSize, limits.MaxDocSize)
	}
	if cfg.MaxEntrySize != limits.MaxEntrySize {
		t.Errorf("MaxEntrySize = %d, want %d", cfg.MaxEntrySize, limits.MaxEntrySize)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	os.Setenv("MAX_DOC_SIZE", "2048")
	defer os.Unsetenv("MAX_DOC_SIZE")

	cfg := Load()
	if cfg.MaxDocSize != 2048 {
		t.Errorf("MaxDocSize = %d, want 2048", cfg.MaxDocSize)
	}
}

func TestLoadBootstrapConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/bootstrap.yaml"
	if err := os.WriteFile(path, []byte("vault:\n  kind: memory\n"), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := LoadBootstrapConfig(path)
	if err != nil {
		t.Fatalf("LoadBootstrapConfig: %v", err)
	}
	if cfg.Vault.Kind != "memory" {
		t.Errorf("Vault.Kind = %q, want memory", cfg.Vault.Kind)
	}
	if cfg.Schema.EntryField != "body" {
		t.Errorf("Schema.EntryField = %q, want body", cfg.Schema.EntryField)
	}
}

func TestLoadBootstrapConfigEnvSubstitution(t *testing.T) {
	os.Setenv("FOGDB_VAULT_DIR", "/tmp/custom-vault")
	defer os.Unsetenv("FOGDB_VAULT_DIR")

	dir := t.TempDir()
	path := dir + "/bootstrap.yaml"
	content := "vault:\n  kind: memory\n  data_dir: ${FOGDB_VAULT_DIR}\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := LoadBootstrapConfig(path)
	if err != nil {
		t.Fatalf("LoadBootstrapConfig: %v", err)
	}
	if cfg.Vault.DataDir != "/tmp/custom-vault" {
		t.Errorf("Vault.DataDir = %q, want /tmp/custom-vault", cfg.Vault.DataDir)
	}
}

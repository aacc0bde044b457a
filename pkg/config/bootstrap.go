// Copyright 2025 Certen Protocol
//
// BootstrapConfig — a YAML-tagged settings file for a schema/vault
// bootstrap program (none ships in this repository), grounded on the
// teacher's pkg/config/anchor_config.go
// (YAML-tagged struct tree, ${VAR}-substitution, Duration wrapper
// type). Trimmed to what a standalone schema/vault bootstrap actually
// needs: no contract/gas/CometBFT settings, since none of that is in
// scope here.

package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// BootstrapConfig describes a static schema/vault setup: which schema
// fields to build and where to keep vault key material.
type BootstrapConfig struct {
	Vault  VaultSettings  `yaml:"vault"`
	Schema SchemaSettings `yaml:"schema"`
}

// VaultSettings configures which Vault implementation a bootstrap
// program wires up.
type VaultSettings struct {
	Kind      string   `yaml:"kind"` // "memory" or "persistent"
	DataDir   string   `yaml:"data_dir"`
	KeyExpiry Duration `yaml:"key_expiry"`
}

// SchemaSettings names the bootstrapped document's fields and size bound.
type SchemaSettings struct {
	EntryField string `yaml:"entry_field"`
	MaxBodyLen int    `yaml:"max_body_len"`
}

// Duration wraps time.Duration for YAML unmarshaling, accepting
// strings like "30s" rather than raw nanosecond integers.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d Duration) Duration() time.Duration { return time.Duration(d) }

var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		varName := groups[1]
		defaultValue := ""
		if len(groups) >= 4 {
			defaultValue = groups[3]
		}
		if v := os.Getenv(varName); v != "" {
			return v
		}
		return defaultValue
	})
}

// LoadBootstrapConfig reads and parses a BootstrapConfig file, with
// ${VAR_NAME} / ${VAR_NAME:-default} substitution against the process
// environment before YAML parsing.
func LoadBootstrapConfig(path string) (*BootstrapConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	expanded := substituteEnvVars(string(data))

	var cfg BootstrapConfig
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *BootstrapConfig) applyDefaults() {
	if c.Vault.Kind == "" {
		c.Vault.Kind = "memory"
	}
	if c.Vault.DataDir == "" {
		c.Vault.DataDir = "./data/vault"
	}
	if c.Schema.EntryField == "" {
		c.Schema.EntryField = "body"
	}
	if c.Schema.MaxBodyLen == 0 {
		c.Schema.MaxBodyLen = 4096
	}
}

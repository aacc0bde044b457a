// Copyright 2025 Certen Protocol
//
// Config holds the runtime knobs a host process reads from its
// environment. No package in this module takes a Config as input.
// Grounded on the teacher's
// pkg/config/config.go: plain getEnv*-with-default helpers, a single
// flat struct, no framework.

package config

import (
	"os"
	"strconv"

	"github.com/certen/fogdb/pkg/limits"
)

// Config is the environment-derived runtime configuration for a
// process embedding this module.
type Config struct {
	// MaxDocSize is read from MAX_DOC_SIZE. pkg/document and pkg/wire
	// enforce the compile-time limits.MaxDocSize constant, not this
	// value.
	MaxDocSize int

	// MaxEntrySize is read from MAX_ENTRY_SIZE. pkg/entry and pkg/wire
	// enforce the compile-time limits.MaxEntrySize constant, not this
	// value.
	MaxEntrySize int

	// VaultDataDir is the base directory for PersistentVault's
	// cometbft-db store.
	VaultDataDir string

	// LogLevel selects verbosity for a host program; the library itself
	// logs nothing (spec.md's out-of-scope service layer owns
	// observability).
	LogLevel string
}

// Load reads Config from the environment, applying the same defaults
// as pkg/limits' compile-time constants when a variable is unset.
func Load() Config {
	return Config{
		MaxDocSize:   getEnvInt("MAX_DOC_SIZE", limits.MaxDocSize),
		MaxEntrySize: getEnvInt("MAX_ENTRY_SIZE", limits.MaxEntrySize),
		VaultDataDir: getEnv("VAULT_DATA_DIR", "./data/vault"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

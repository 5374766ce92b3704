// Copyright 2026 The Roomsnap Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for roomsnap.
//
// Configuration is loaded from a single YAML file specified by:
//   - ROOMSNAP_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery beyond the built-in
// defaults. This keeps configuration deterministic and auditable: what
// the file says (plus documented defaults) is what runs.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config is the roomsnap configuration.
type Config struct {
	// Homeserver is the base URL of the Matrix homeserver
	// (e.g., "https://matrix.example.com").
	Homeserver string `yaml:"homeserver"`

	// Output is the path the room snapshot JSON is written to after a
	// successful run.
	Output string `yaml:"output"`

	// SyncTimeoutMS is the server-side long-poll budget, in
	// milliseconds, passed to the /sync endpoint.
	SyncTimeoutMS int `yaml:"sync_timeout_ms"`

	// PasswordFile is an optional path to a file containing the login
	// password ("-" reads stdin). Empty means prompt interactively.
	PasswordFile string `yaml:"password_file"`
}

// Default returns the default configuration. These defaults are the
// base that the config file (if any) and command-line flags override.
func Default() *Config {
	return &Config{
		Homeserver:    "http://localhost:8008",
		Output:        "matrix_chats.json",
		SyncTimeoutMS: 30000,
	}
}

// Load loads configuration from the ROOMSNAP_CONFIG environment
// variable. When the variable is unset, the defaults are returned —
// roomsnap is usable with flags alone.
func Load() (*Config, error) {
	configPath := os.Getenv("ROOMSNAP_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merging over
// the defaults. Environment variables do not override config values;
// the only expansion performed is ${VAR} and ${VAR:-default} patterns
// in path fields, for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.Output = expandVars(cfg.Output)
	cfg.PasswordFile = expandVars(cfg.PasswordFile)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Homeserver == "" {
		errs = append(errs, fmt.Errorf("homeserver is required"))
	}
	if c.Output == "" {
		errs = append(errs, fmt.Errorf("output is required"))
	}
	if c.SyncTimeoutMS < 0 {
		errs = append(errs, fmt.Errorf("sync_timeout_ms must not be negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// expandVars expands ${VAR} and ${VAR:-default} patterns from the
// process environment.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

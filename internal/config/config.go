package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigDir is the per-project directory holding config and the run history DB.
const ConfigDir = ".nestforge"

// Config represents the flat nestforge project configuration
type Config struct {
	Version     string `json:"version"`
	Project     string `json:"project,omitempty"`      // Project name used in generated headers
	SourceRoot  string `json:"source_root,omitempty"`  // Where generated code lands, default "src"
	InstallDeps bool   `json:"install_deps,omitempty"` // Install npm packages after generation
}

// Default returns the configuration written by `nestforge init`.
func Default(project string) *Config {
	return &Config{
		Version:    "1",
		Project:    project,
		SourceRoot: "src",
	}
}

// LoadConfig reads .nestforge/config.json from the specified directory.
// Resolution order: cwd only (no home fallback).
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigDir, "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	cfgDir := filepath.Join(dir, ConfigDir)
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", ConfigDir, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(cfgDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

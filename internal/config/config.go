package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	shellwords "github.com/mattn/go-shellwords"
)

// Config represents dit configuration
type Config struct {
	Compose ComposeConfig `json:"compose"`
	History HistoryConfig `json:"history"`
	Color   ColorConfig   `json:"color"`
}

// ComposeConfig holds container-engine settings
type ComposeConfig struct {
	// Command is the container engine binary; compose subcommands are
	// invoked as "<command> compose ...".
	Command string `json:"command,omitempty"`
	// File overrides the compose file passed via -f.
	File string `json:"file,omitempty"`
	// ExtraArgs is a shell-style string of arguments inserted after
	// "compose" on every invocation, e.g. "--profile dev".
	ExtraArgs string `json:"extra_args,omitempty"`
	// DefaultService is the service `dit sh` opens when none is named.
	DefaultService string `json:"default_service,omitempty"`
}

// HistoryConfig holds branch-ledger settings
type HistoryConfig struct {
	// Path overrides the ledger file location.
	Path string `json:"path,omitempty"`
}

// ColorConfig holds color settings
type ColorConfig struct {
	// UI overrides automatic color detection when set; nil leaves the
	// terminal detection in charge.
	UI *bool `json:"ui,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Compose: ComposeConfig{
			Command: "docker",
		},
	}
}

// globalConfigPath returns the path to the global config file
func globalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".ditconfig"), nil
}

// projectConfigPath returns the path to the per-project config file
func projectConfigPath(dir string) string {
	return filepath.Join(dir, ".ditconfig")
}

// Load loads configuration from the global config file merged with the
// project config file in dir. Project config takes precedence.
func Load(dir string) (*Config, error) {
	cfg := DefaultConfig()

	if globalPath, err := globalConfigPath(); err == nil {
		if data, err := os.ReadFile(globalPath); err == nil {
			var globalCfg Config
			if err := json.Unmarshal(data, &globalCfg); err == nil {
				mergeConfig(cfg, &globalCfg)
			}
		}
	}

	if data, err := os.ReadFile(projectConfigPath(dir)); err == nil {
		var projectCfg Config
		if err := json.Unmarshal(data, &projectCfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", projectConfigPath(dir), err)
		}
		mergeConfig(cfg, &projectCfg)
	}

	return cfg, nil
}

// SaveGlobal saves configuration to the global config file
func SaveGlobal(cfg *Config) error {
	globalPath, err := globalConfigPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(globalPath, data, 0644)
}

// mergeConfig overlays non-empty fields of src onto dst
func mergeConfig(dst, src *Config) {
	if src.Compose.Command != "" {
		dst.Compose.Command = src.Compose.Command
	}
	if src.Compose.File != "" {
		dst.Compose.File = src.Compose.File
	}
	if src.Compose.ExtraArgs != "" {
		dst.Compose.ExtraArgs = src.Compose.ExtraArgs
	}
	if src.Compose.DefaultService != "" {
		dst.Compose.DefaultService = src.Compose.DefaultService
	}
	if src.History.Path != "" {
		dst.History.Path = src.History.Path
	}
	if src.Color.UI != nil {
		dst.Color.UI = src.Color.UI
	}
}

// ComposeExtraArgs splits the configured extra_args string into argv
// tokens, honoring shell quoting.
func (c *Config) ComposeExtraArgs() ([]string, error) {
	if c.Compose.ExtraArgs == "" {
		return nil, nil
	}
	args, err := shellwords.Parse(c.Compose.ExtraArgs)
	if err != nil {
		return nil, fmt.Errorf("parse compose.extra_args: %w", err)
	}
	return args, nil
}

// LedgerPath returns the configured ledger location, or fallback when
// unset.
func (c *Config) LedgerPath(fallback string) string {
	if c.History.Path != "" {
		return c.History.Path
	}
	return fallback
}

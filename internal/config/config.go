// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for rexidian.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/jeranaias/rexidian/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Storage backends for the settings blob.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ErrInvalidBackend is returned by Validate for an unknown backend name.
var ErrInvalidBackend = errors.New("invalid storage backend")

// Config represents the complete rexidian configuration.
type Config struct {
	// DataDir holds the settings blob. A leading "~" expands to the home
	// directory.
	DataDir string `toml:"data_dir"`

	// Backend is the settings storage: "file", "sqlite" or "memory".
	Backend string `toml:"backend"`

	// ResponseDelay is the simulated latency before an assistant reply.
	ResponseDelay Duration `toml:"response_delay"`

	// Seed seeds the reply picker; 0 seeds from the clock.
	Seed int64 `toml:"seed"`

	Log LogConfig `toml:"log"`
	UI  UIConfig  `toml:"ui"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error
	Level string `toml:"level"`
	// Format is "text" or "json"
	Format string `toml:"format"`
	// File enables a rotating log file when set
	File string `toml:"file"`
}

// UIConfig contains terminal UI configuration.
type UIConfig struct {
	// RenderMarkdown renders assistant turns and templates with glamour
	RenderMarkdown bool `toml:"render_markdown"`
}

// Duration is a time.Duration written as a Go duration string.
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", text)
	}
	d.Duration = parsed
	return nil
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		DataDir:       "~/.rexidian",
		Backend:       BackendFile,
		ResponseDelay: Duration{time.Second},
		Seed:          0,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		UI: UIConfig{
			RenderMarkdown: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the rexidian configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "could not determine home directory")
	}
	return filepath.Join(home, ".rexidian"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ResolvedDataDir returns DataDir with "~" expanded.
func (c *Config) ResolvedDataDir() (string, error) {
	dir := c.DataDir
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "could not determine home directory")
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	return filepath.Clean(dir), nil
}

// SettingsPath returns the file backing the settings blob for the configured
// backend. The memory backend has no file and returns "".
func (c *Config) SettingsPath() (string, error) {
	if c.Backend == BackendMemory {
		return "", nil
	}
	dir, err := c.ResolvedDataDir()
	if err != nil {
		return "", err
	}
	if c.Backend == BackendSQLite {
		return filepath.Join(dir, "rexidian.db"), nil
	}
	return filepath.Join(dir, "data.json"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads ~/.rexidian/config.toml over the defaults. A missing file is not
// an error. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, cfg.Validate()
	}
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, cfg.Validate()
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}
	if err := LoadTOML(cfg, path); err != nil {
		return nil, errors.Wrapf(err, "failed to load config from %s", path)
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// LoadTOML decodes path into cfg and fills unset fields with defaults.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return errors.Wrap(err, "failed to decode TOML file")
	}
	return fillDefaults(cfg, md)
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config, md toml.MetaData) error {
	defaults := Default()

	if cfg.DataDir == "" {
		cfg.DataDir = defaults.DataDir
	}
	if cfg.Backend == "" {
		cfg.Backend = defaults.Backend
	}
	if !md.IsDefined("response_delay") {
		cfg.ResponseDelay = defaults.ResponseDelay
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaults.Log.Format
	}
	if !md.IsDefined("ui", "render_markdown") {
		cfg.UI.RenderMarkdown = defaults.UI.RenderMarkdown
	}

	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to path with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# rexidian configuration file")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return errors.Wrap(err, "failed to encode config")
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap returns the sentinel behind the error, if any.
func (e ValidationError) Unwrap() error {
	return e.Err
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Is reports whether any contained error matches target.
func (e ValidateErrors) Is(target error) bool {
	for _, err := range e {
		if err.Err != nil && errors.Is(err.Err, target) {
			return true
		}
	}
	return false
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	switch c.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		errs = append(errs, ValidationError{
			Field:   "backend",
			Message: fmt.Sprintf("must be file, sqlite or memory, got %q", c.Backend),
			Err:     ErrInvalidBackend,
		})
	}

	if c.Backend != BackendMemory && strings.TrimSpace(c.DataDir) == "" {
		errs = append(errs, ValidationError{Field: "data_dir", Message: "must not be empty"})
	}

	if c.ResponseDelay.Duration < 0 {
		errs = append(errs, ValidationError{Field: "response_delay", Message: "must not be negative"})
	}

	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("unknown level %q", c.Log.Level),
		})
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Message: fmt.Sprintf("must be text or json, got %q", c.Log.Format),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies REXIDIAN_* environment variables. Unparseable
// numeric or duration values are ignored.
func (c *Config) ApplyEnvOverrides() {
	if dir := os.Getenv("REXIDIAN_DATA_DIR"); dir != "" {
		c.DataDir = dir
	}
	if backend := os.Getenv("REXIDIAN_BACKEND"); backend != "" {
		c.Backend = strings.ToLower(backend)
	}
	if delay := os.Getenv("REXIDIAN_RESPONSE_DELAY"); delay != "" {
		if d, err := time.ParseDuration(delay); err == nil {
			c.ResponseDelay = Duration{d}
		}
	}
	if seed := os.Getenv("REXIDIAN_SEED"); seed != "" {
		if n, err := strconv.ParseInt(seed, 10, 64); err == nil {
			c.Seed = n
		}
	}
	if level := os.Getenv("REXIDIAN_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if format := os.Getenv("REXIDIAN_LOG_FORMAT"); format != "" {
		c.Log.Format = format
	}
	if file := os.Getenv("REXIDIAN_LOG_FILE"); file != "" {
		c.Log.File = file
	}
	if render := os.Getenv("REXIDIAN_RENDER_MARKDOWN"); render != "" {
		c.UI.RenderMarkdown = render == "1" || strings.ToLower(render) == "true"
	}
}

// String returns the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return buf.String()
}

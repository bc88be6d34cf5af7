// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/saveit/internal/model"
	"github.com/jeranaias/saveit/internal/suggestion"
	"github.com/jeranaias/saveit/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete saveit configuration.
type Config struct {
	Data       DataConfig       `toml:"data" json:"data"`
	List       ListConfig       `toml:"list" json:"list"`
	Suggestion SuggestionConfig `toml:"suggestion" json:"suggestion"`
	UI         UIConfig         `toml:"ui" json:"ui"`
	Log        LogConfig        `toml:"log" json:"log"`
}

// DataConfig controls where issues are stored.
type DataConfig struct {
	// Path is the sqlite database file (empty = ~/.saveit/saveit.db)
	Path string `toml:"path" json:"path"`
	// SampleOnEmpty seeds the sample issues when the database has none
	SampleOnEmpty bool `toml:"sample_on_empty" json:"sample_on_empty"`
}

// ListConfig controls the list command.
type ListConfig struct {
	// DefaultSort is used when list is given no argument: freq, chro or tag
	DefaultSort string `toml:"default_sort" json:"default_sort"`
}

// SuggestionConfig controls the suggestion engine.
type SuggestionConfig struct {
	// Enabled lists the kinds offered: tag, statement, command
	Enabled []string `toml:"enabled" json:"enabled"`
	// MaxResults caps the candidate list (0 = unlimited)
	MaxResults int `toml:"max_results" json:"max_results"`
}

// UIConfig contains display settings.
type UIConfig struct {
	// Theme is "dark", "light" or "auto"
	Theme string `toml:"theme" json:"theme"`
	// Compact hides descriptions in the list output
	Compact bool `toml:"compact" json:"compact"`
}

// LogConfig controls the structured log.
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `toml:"level" json:"level"`
	// Path is the log file (empty = ~/.saveit/saveit.log)
	Path string `toml:"path" json:"path"`
}

// Default returns a Config with all default values.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			SampleOnEmpty: true,
		},
		List: ListConfig{
			DefaultSort: "chro",
		},
		Suggestion: SuggestionConfig{
			Enabled:    []string{"tag", "statement", "command"},
			MaxResults: 0,
		},
		UI: UIConfig{
			Theme: "auto",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// Dir returns the saveit configuration directory path. SAVEIT_HOME replaces
// ~/.saveit when set.
func Dir() (string, error) {
	if dir := os.Getenv("SAVEIT_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".saveit"), nil
}

// PathTOML returns the path to the TOML config file.
func PathTOML() (string, error) {
	return inDir("config.toml")
}

// PathJSON returns the path to the JSON config file.
func PathJSON() (string, error) {
	return inDir("config.json")
}

// HistoryPath returns the REPL history file.
func HistoryPath() (string, error) {
	return inDir("history")
}

// EnsureDir ensures the config directory exists.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

func inDir(name string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// DataPath returns the configured database file, or the default location.
func (c *Config) DataPath() (string, error) {
	if c.Data.Path != "" {
		return c.Data.Path, nil
	}
	return inDir("saveit.db")
}

// LogPath returns the configured log file, or the default location.
func (c *Config) LogPath() (string, error) {
	if c.Log.Path != "" {
		return c.Log.Path, nil
	}
	return inDir("saveit.log")
}

// =============================================================================
// TYPED ACCESSORS
// =============================================================================

// SortType returns the parsed list.default_sort.
func (c *Config) SortType() (model.SortType, error) {
	return model.ParseSortType(c.List.DefaultSort)
}

// SuggestionKinds returns the parsed suggestion.enabled.
func (c *Config) SuggestionKinds() ([]suggestion.Kind, error) {
	return suggestion.ParseKinds(c.Suggestion.Enabled)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	for _, locate := range []func() (string, error){PathTOML, PathJSON} {
		path, err := locate()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. Files ending in .json are read as JSON, anything else as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Locate returns the config file Load would read: the TOML file, else an
// existing JSON file. The TOML path is returned when neither exists.
func Locate() (string, error) {
	tomlPath, err := PathTOML()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	if jsonPath, err := PathJSON(); err == nil {
		if _, err := os.Stat(jsonPath); err == nil {
			return jsonPath, nil
		}
	}
	return tomlPath, nil
}

// LoadFile reads path as written, without environment overrides, for
// editing. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}
	var err error
	switch _, statErr := os.Stat(path); {
	case os.IsNotExist(statErr):
		return Default(), nil
	case strings.HasSuffix(path, ".json"):
		err = LoadJSON(cfg, path)
	default:
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveFile writes cfg to path as JSON or TOML depending on its extension.
func SaveFile(cfg *Config, path string) error {
	if strings.HasSuffix(path, ".json") {
		return SaveJSON(cfg, path)
	}
	return SaveTOML(cfg, path)
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	fillDefaults(cfg, md.IsDefined)
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}

	var raw map[string]map[string]json.RawMessage
	_ = json.Unmarshal(data, &raw)
	fillDefaults(cfg, func(key ...string) bool {
		if len(key) != 2 {
			return false
		}
		_, ok := raw[key[0]][key[1]]
		return ok
	})
	return nil
}

// fillDefaults fills in any missing values with defaults. defined reports
// whether a key was present in the file, so an explicit false survives.
func fillDefaults(cfg *Config, defined func(key ...string) bool) {
	defaults := Default()

	if !defined("data", "sample_on_empty") {
		cfg.Data.SampleOnEmpty = defaults.Data.SampleOnEmpty
	}
	if cfg.List.DefaultSort == "" {
		cfg.List.DefaultSort = defaults.List.DefaultSort
	}
	if !defined("suggestion", "enabled") {
		cfg.Suggestion.Enabled = defaults.Suggestion.Enabled
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# saveit configuration file")
	fmt.Fprintln(&buf, "# Generated by saveit - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
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
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if _, err := c.SortType(); err != nil {
		errs = append(errs, ValidationError{
			Field:   "list.default_sort",
			Message: fmt.Sprintf("invalid sort '%s', must be one of: freq, chro, tag", c.List.DefaultSort),
		})
	}

	if _, err := c.SuggestionKinds(); err != nil {
		errs = append(errs, ValidationError{
			Field:   "suggestion.enabled",
			Message: fmt.Sprintf("invalid kinds %v, each must be one of: tag, statement, command", c.Suggestion.Enabled),
		})
	}

	if c.Suggestion.MaxResults < 0 {
		errs = append(errs, ValidationError{
			Field:   "suggestion.max_results",
			Message: fmt.Sprintf("must be zero or positive, got %d", c.Suggestion.MaxResults),
		})
	}

	validThemes := map[string]bool{"auto": true, "dark": true, "light": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
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

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported variables:
//   - SAVEIT_DATA: overrides data.path
//   - SAVEIT_SAMPLE: overrides data.sample_on_empty
//   - SAVEIT_SORT: overrides list.default_sort
//   - SAVEIT_SUGGEST: overrides suggestion.enabled (comma separated)
//   - SAVEIT_MAX_SUGGESTIONS: overrides suggestion.max_results
//   - SAVEIT_THEME: overrides ui.theme
//   - SAVEIT_LOG_LEVEL: overrides log.level
//   - SAVEIT_LOG_PATH: overrides log.path
func (c *Config) ApplyEnvOverrides() {
	if path := os.Getenv("SAVEIT_DATA"); path != "" {
		c.Data.Path = path
	}
	if sample := os.Getenv("SAVEIT_SAMPLE"); sample != "" {
		c.Data.SampleOnEmpty = sample == "1" || strings.ToLower(sample) == "true"
	}
	if sort := os.Getenv("SAVEIT_SORT"); sort != "" {
		c.List.DefaultSort = sort
	}
	if kinds := os.Getenv("SAVEIT_SUGGEST"); kinds != "" {
		c.Suggestion.Enabled = nil
		for _, k := range strings.Split(kinds, ",") {
			if k = strings.TrimSpace(k); k != "" {
				c.Suggestion.Enabled = append(c.Suggestion.Enabled, k)
			}
		}
	}
	if limit := os.Getenv("SAVEIT_MAX_SUGGESTIONS"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil {
			c.Suggestion.MaxResults = n
		}
	}
	if theme := os.Getenv("SAVEIT_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if level := os.Getenv("SAVEIT_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if path := os.Getenv("SAVEIT_LOG_PATH"); path != "" {
		c.Log.Path = path
	}
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Suggestion.Enabled = append([]string(nil), c.Suggestion.Enabled...)
	return &clone
}

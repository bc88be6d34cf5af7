// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/saveit/internal/model"
	"github.com/jeranaias/saveit/internal/suggestion"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

// isolate points the config directory at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SAVEIT_HOME", dir)
	for _, key := range []string{
		"SAVEIT_DATA", "SAVEIT_SAMPLE", "SAVEIT_SORT", "SAVEIT_SUGGEST",
		"SAVEIT_MAX_SUGGESTIONS", "SAVEIT_THEME", "SAVEIT_LOG_LEVEL", "SAVEIT_LOG_PATH",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	sort, err := cfg.SortType()
	require.NoError(t, err)
	assert.Equal(t, model.SortChronological, sort)

	kinds, err := cfg.SuggestionKinds()
	require.NoError(t, err)
	assert.Equal(t, suggestion.AllKinds(), kinds)
	assert.True(t, cfg.Data.SampleOnEmpty)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path, err := cfg.DataPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "saveit.db"), path)
}

func TestLoadTOML(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), `
[data]
path = "/tmp/issues.db"
sample_on_empty = false

[list]
default_sort = "freq"

[suggestion]
enabled = ["tag"]
max_results = 5
`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/issues.db", cfg.Data.Path)
	assert.False(t, cfg.Data.SampleOnEmpty, "explicit false must survive defaults")
	assert.Equal(t, "freq", cfg.List.DefaultSort)
	assert.Equal(t, []string{"tag"}, cfg.Suggestion.Enabled)
	assert.Equal(t, 5, cfg.Suggestion.MaxResults)
	assert.Equal(t, "auto", cfg.UI.Theme, "missing keys take defaults")
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadJSONFallback(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.json"), `{"list": {"default_sort": "tag"}, "ui": {"compact": true}}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "tag", cfg.List.DefaultSort)
	assert.True(t, cfg.UI.Compact)
	assert.True(t, cfg.Data.SampleOnEmpty)
	assert.Equal(t, Default().Suggestion.Enabled, cfg.Suggestion.Enabled)
}

func TestLoadFromPath_Invalid(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	writeFile(t, path, `
[list]
default_sort = "alphabetical"

[suggestion]
enabled = ["tag", "fuzzy"]
max_results = -1
`)

	_, err := LoadFromPath(path)
	require.Error(t, err)

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	fields := make([]string, 0, len(verrs))
	for _, v := range verrs {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{"list.default_sort", "suggestion.enabled", "suggestion.max_results"}, fields)
}

func TestLoadFromPath_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	writeFile(t, path, "[list\n")

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("SAVEIT_DATA", "/data/x.db")
	t.Setenv("SAVEIT_SAMPLE", "false")
	t.Setenv("SAVEIT_SORT", "tag")
	t.Setenv("SAVEIT_SUGGEST", "statement, command")
	t.Setenv("SAVEIT_MAX_SUGGESTIONS", "3")
	t.Setenv("SAVEIT_LOG_LEVEL", "debug")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "/data/x.db", cfg.Data.Path)
	assert.False(t, cfg.Data.SampleOnEmpty)
	assert.Equal(t, "tag", cfg.List.DefaultSort)
	assert.Equal(t, []string{"statement", "command"}, cfg.Suggestion.Enabled)
	assert.Equal(t, 3, cfg.Suggestion.MaxResults)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	dir := isolate(t)

	cfg := Default()
	cfg.List.DefaultSort = "freq"
	cfg.Suggestion.Enabled = []string{"command"}
	cfg.Data.SampleOnEmpty = false
	require.NoError(t, SaveFile(cfg, filepath.Join(dir, "config.toml")))

	loaded, err := LoadFromPath(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	jsonPath := filepath.Join(dir, "config.json")
	require.NoError(t, SaveFile(cfg, jsonPath))
	loaded, err = LoadFromPath(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestClone(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()
	clone.Suggestion.Enabled[0] = "changed"
	assert.Equal(t, "tag", cfg.Suggestion.Enabled[0])
}

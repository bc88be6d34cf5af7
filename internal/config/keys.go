// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// KEY ACCESS
// =============================================================================

// ErrUnknownKey is wrapped when Get or Set is given a key that does not exist.
var ErrUnknownKey = errors.New("unknown config key")

// keys lists every settable key in file order.
var keys = []string{
	"data.path",
	"data.sample_on_empty",
	"list.default_sort",
	"suggestion.enabled",
	"suggestion.max_results",
	"ui.theme",
	"ui.compact",
	"log.level",
	"log.path",
}

// Keys returns the dotted names accepted by Get and Set.
func Keys() []string {
	return append([]string(nil), keys...)
}

// Get returns the value of a dotted key as text.
func (c *Config) Get(key string) (string, error) {
	switch strings.ToLower(key) {
	case "data.path":
		return c.Data.Path, nil
	case "data.sample_on_empty":
		return strconv.FormatBool(c.Data.SampleOnEmpty), nil
	case "list.default_sort":
		return c.List.DefaultSort, nil
	case "suggestion.enabled":
		return strings.Join(c.Suggestion.Enabled, ","), nil
	case "suggestion.max_results":
		return strconv.Itoa(c.Suggestion.MaxResults), nil
	case "ui.theme":
		return c.UI.Theme, nil
	case "ui.compact":
		return strconv.FormatBool(c.UI.Compact), nil
	case "log.level":
		return c.Log.Level, nil
	case "log.path":
		return c.Log.Path, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Set parses value into a dotted key and validates the result. On a
// validation failure the config is left unchanged.
func (c *Config) Set(key, value string) error {
	next := c.Clone()
	value = strings.TrimSpace(value)

	switch strings.ToLower(key) {
	case "data.path":
		next.Data.Path = value
	case "data.sample_on_empty":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		next.Data.SampleOnEmpty = b
	case "list.default_sort":
		next.List.DefaultSort = strings.ToLower(value)
	case "suggestion.enabled":
		next.Suggestion.Enabled = splitList(value)
	case "suggestion.max_results":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		next.Suggestion.MaxResults = n
	case "ui.theme":
		next.UI.Theme = strings.ToLower(value)
	case "ui.compact":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		next.UI.Compact = b
	case "log.level":
		next.Log.Level = strings.ToLower(value)
	case "log.path":
		next.Log.Path = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*c = *next
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}

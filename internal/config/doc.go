// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads, edits and watches the saveit settings file.
//
// The file lives in ~/.saveit (or $SAVEIT_HOME) as config.toml, with
// config.json accepted when no TOML file exists. Values missing from the file
// keep their defaults, and SAVEIT_* variables win over both when loading for
// use. LoadFile skips the environment so "saveit config set" never writes an
// override back to disk.
//
// Settings are addressed by dotted keys such as "suggestion.max_results";
// see Keys, Config.Get and Config.Set.
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	kinds, err := cfg.SuggestionKinds()
//
// Watch calls back with the reloaded config (or the load error) each time the
// file is written:
//
//	err := config.Watch(ctx, path, func(cfg *config.Config, err error) { ... })
package config

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the saveit command-line interface.
//
// # Commands Overview
//
//   - saveit: Interactive prompt with caret-aware completion (Tab)
//   - saveit tui: Full-screen interface with a live suggestion list
//   - saveit exec LINE: Run one command line and exit
//   - saveit suggest --caret N LINE: Print the suggestions for LINE at N
//   - saveit version: Print version information
//
// # Global Flags
//
//   - --config PATH: Config file (default ~/.saveit/config.toml)
//   - --data PATH: Issue database, overriding data.path
//   - --verbose: Debug logging
//
// # Usage
//
//	os.Exit(cli.Execute())
package cli

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the saveit packages.
//
// # Key Functions
//
// Errors:
//   - PreconditionError: a required argument was missing or out of range
//   - ConfigurationError: an unknown strategy selector was given
//
// Text:
//   - RuneLen, RuneSlice: character-offset helpers for caret arithmetic
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	if _, err := model.ParseSortType(arg); err != nil {
//	    var cfgErr *util.ConfigurationError
//	    if errors.As(err, &cfgErr) {
//	        fmt.Println(cfgErr.Usage)
//	    }
//	}
package util

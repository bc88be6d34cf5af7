// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package suggestion provides caret-aware autocomplete for saveit command lines.
//
// Given the raw text of the input line and the caret position, the Engine
// works out which argument the user is typing, picks the Variant for that
// argument's marker, filters the matching known values and reports the exact
// character span an accepted candidate should replace.
//
// # Key Types
//
//   - Engine: tokenizes the line and dispatches to a Variant
//   - Kind: closed set of suggestible argument kinds (tag, statement, command)
//   - Variant: one evaluation bound to its candidate accessor and anchors
//   - Result: ordered candidates, a status line and the replacement span
//   - Navigator: selection state for cycling through a Result
//
// # Usage
//
//	engine, err := suggestion.NewEngine(registry, suggestion.Config{})
//	result, err := engine.Suggest(store, "addtag 1 t/urg", 14)
//	// result.Values -> [{urgent urgent}], result.Start 11, result.End 14
//	line, caret := result.Apply("addtag 1 t/urg", result.Values[0])
//
// Candidate sets are read through CandidateSource on every call and never
// cached, since they can change between keystrokes.
package suggestion

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package parser tokenizes saveit command lines into argument maps.
//
// A command line such as
//
//	add s/NullPointer in parser d/Crashes on empty input t/bug t/urgent
//
// is scanned for the argument markers ("s/", "d/", "t/", ...) the active
// command expects. Each recognized marker becomes an Anchor that remembers
// where it was typed, and the text up to the next anchor becomes its value.
// Text before the first anchor is the preamble.
//
// # Key Types
//
//   - Prefix: identity of an argument marker, plus the StartMarker/EndMarker sentinels
//   - Anchor: a Prefix at a concrete character position in the input
//   - Occurrence: an Anchor together with the value typed after it
//   - ArgumentMultimap: marker -> ordered values, with caret-aware anchor lookups
//
// # Positions
//
// Every position in this package is a character (rune) offset into the raw
// input, the same unit text inputs report for their cursor.
//
// # Usage
//
//	args, err := parser.Tokenize(line, parser.PrefixTag, parser.PrefixStatement)
//	if err != nil {
//	    return err
//	}
//	tags := args.GetAllValues(parser.PrefixTag)
//	anchor, ok := args.FindPrecedingPrefixKey(caret)
package parser

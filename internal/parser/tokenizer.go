// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package parser

import (
	"sort"
	"strings"
	"unicode"

	"github.com/jeranaias/saveit/internal/util"
)

// =============================================================================
// TOKENIZER
// =============================================================================

// Tokenize scans raw for the given markers and returns the argument map.
//
// A marker is recognized at position p only when its text starts at p and p
// is 0 or follows whitespace, so "http://x.io/t/1" never yields a "t/" anchor.
// When several markers match at the same position the longest one wins.
// Each value is the trimmed text between its marker and the next anchor (or
// the end of input); the text before the first anchor is the preamble.
//
// Input with no recognized markers is not an error: it is all preamble.
// An empty or sentinel marker in prefixes is a *util.PreconditionError.
func Tokenize(raw string, prefixes ...Prefix) (*ArgumentMultimap, error) {
	for _, p := range prefixes {
		if p.IsSentinel() || p.text == "" {
			return nil, &util.PreconditionError{
				Op:     "parser.Tokenize",
				Arg:    "prefixes",
				Reason: "must contain only non-empty markers",
			}
		}
	}

	runes := []rune(raw)
	anchors := findAnchors(runes, prefixes)
	return extractArguments(runes, anchors), nil
}

// findAnchors returns all recognized anchors in ascending position order.
func findAnchors(runes []rune, prefixes []Prefix) []Anchor {
	if len(prefixes) == 0 {
		return nil
	}

	// Longest first so "nt/" is preferred over a shorter marker at the same spot.
	candidates := make([]Prefix, len(prefixes))
	copy(candidates, prefixes)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Len() > candidates[j].Len()
	})
	markers := make([][]rune, len(candidates))
	for i, p := range candidates {
		markers[i] = []rune(p.text)
	}

	var anchors []Anchor
	for pos := 0; pos < len(runes); {
		matched := 0
		if pos == 0 || unicode.IsSpace(runes[pos-1]) {
			for i, marker := range markers {
				if hasRunePrefix(runes[pos:], marker) {
					anchors = append(anchors, Anchor{Prefix: candidates[i], Position: pos})
					matched = len(marker)
					break
				}
			}
		}
		if matched > 0 {
			pos += matched
		} else {
			pos++
		}
	}
	return anchors
}

// extractArguments slices the values between consecutive anchors.
func extractArguments(runes []rune, anchors []Anchor) *ArgumentMultimap {
	m := NewArgumentMultimap()

	preambleEnd := len(runes)
	if len(anchors) > 0 {
		preambleEnd = anchors[0].Position
	}
	m.put(Anchor{Prefix: StartMarker, Position: 0}, trimmed(runes[:preambleEnd]))

	for i, anchor := range anchors {
		valueEnd := len(runes)
		if i+1 < len(anchors) {
			valueEnd = anchors[i+1].Position
		}
		m.put(anchor, trimmed(runes[anchor.End():valueEnd]))
	}

	m.end = Anchor{Prefix: EndMarker, Position: len(runes)}
	m.hasEnd = true
	return m
}

func hasRunePrefix(s, prefix []rune) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i, r := range prefix {
		if s[i] != r {
			return false
		}
	}
	return true
}

func trimmed(runes []rune) string {
	return strings.TrimSpace(string(runes))
}

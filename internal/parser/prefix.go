// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package parser

import (
	"strconv"
	"unicode/utf8"
)

// =============================================================================
// PREFIX
// =============================================================================

type sentinel uint8

const (
	notSentinel sentinel = iota
	startSentinel
	endSentinel
)

// Prefix identifies an argument marker such as "t/". Two prefixes are equal
// when their marker text is equal; a Prefix carries no position, so it is safe
// to use as a map key however many times the marker repeats in the input.
type Prefix struct {
	text string
	kind sentinel
}

var (
	// StartMarker keys the preamble. It never appears literally in input.
	StartMarker = Prefix{kind: startSentinel}

	// EndMarker bounds the tokenized sequence at the input's length.
	EndMarker = Prefix{kind: endSentinel}
)

// NewPrefix returns the marker identity for text.
func NewPrefix(text string) Prefix {
	return Prefix{text: text}
}

// Text returns the delimiter text; empty for sentinels.
func (p Prefix) Text() string {
	return p.text
}

// Len returns the delimiter length in characters.
func (p Prefix) Len() int {
	return utf8.RuneCountInString(p.text)
}

// IsSentinel reports whether p is StartMarker or EndMarker.
func (p Prefix) IsSentinel() bool {
	return p.kind != notSentinel
}

func (p Prefix) String() string {
	switch p.kind {
	case startSentinel:
		return "<start>"
	case endSentinel:
		return "<end>"
	}
	return p.text
}

// =============================================================================
// ANCHOR
// =============================================================================

// Anchor is one occurrence of a Prefix at a character position in the raw input.
type Anchor struct {
	Prefix   Prefix
	Position int
}

// End returns the position just past the marker text.
func (a Anchor) End() int {
	return a.Position + a.Prefix.Len()
}

func (a Anchor) String() string {
	return a.Prefix.String() + "@" + strconv.Itoa(a.Position)
}

// Occurrence pairs an Anchor with the value typed after it.
// Position is -1 for values added with Put rather than found by Tokenize.
type Occurrence struct {
	Anchor
	Value string
}

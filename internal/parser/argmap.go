// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package parser

import (
	"sort"
	"strings"
)

// =============================================================================
// ARGUMENT MULTIMAP
// =============================================================================

// ArgumentMultimap maps each Prefix to the values typed after it, in the order
// they were encountered. Values are never reordered once added, so the last
// value is always the most recent occurrence. Every occurrence keeps its own
// position, which the caret lookups use.
//
// A map returned by Tokenize is not modified afterwards and is not shared
// between parses.
type ArgumentMultimap struct {
	entries []Occurrence     // all occurrences in insertion order
	index   map[Prefix][]int // prefix -> indexes into entries
	end     Anchor
	hasEnd  bool
}

// NewArgumentMultimap returns an empty map.
func NewArgumentMultimap() *ArgumentMultimap {
	return &ArgumentMultimap{index: make(map[Prefix][]int)}
}

// Put appends value to prefix's sequence. Values added this way have no
// position and are ignored by the caret lookups.
func (m *ArgumentMultimap) Put(prefix Prefix, value string) {
	m.put(Anchor{Prefix: prefix, Position: -1}, value)
}

func (m *ArgumentMultimap) put(anchor Anchor, value string) {
	m.index[anchor.Prefix] = append(m.index[anchor.Prefix], len(m.entries))
	m.entries = append(m.entries, Occurrence{Anchor: anchor, Value: value})
}

// GetValue returns the last value of prefix. The second result is false when
// prefix was never seen.
func (m *ArgumentMultimap) GetValue(prefix Prefix) (string, bool) {
	idx := m.index[prefix]
	if len(idx) == 0 {
		return "", false
	}
	return m.entries[idx[len(idx)-1]].Value, true
}

// GetAllValues returns a copy of every value of prefix in encounter order.
// The result is empty, never nil, when prefix was never seen.
func (m *ArgumentMultimap) GetAllValues(prefix Prefix) []string {
	idx := m.index[prefix]
	values := make([]string, 0, len(idx))
	for _, i := range idx {
		values = append(values, m.entries[i].Value)
	}
	return values
}

// Occurrences returns a copy of every occurrence of prefix in encounter order.
func (m *ArgumentMultimap) Occurrences(prefix Prefix) []Occurrence {
	idx := m.index[prefix]
	occs := make([]Occurrence, 0, len(idx))
	for _, i := range idx {
		occs = append(occs, m.entries[i])
	}
	return occs
}

// GetPreamble returns the text before the first anchor, or "".
func (m *ArgumentMultimap) GetPreamble() string {
	preamble, _ := m.GetValue(StartMarker)
	return preamble
}

// ArePrefixesPresent reports whether every prefix has at least one value.
func (m *ArgumentMultimap) ArePrefixesPresent(prefixes ...Prefix) bool {
	for _, p := range prefixes {
		if len(m.index[p]) == 0 {
			return false
		}
	}
	return true
}

// Prefixes returns the distinct non-sentinel prefixes in first-seen order.
func (m *ArgumentMultimap) Prefixes() []Prefix {
	var prefixes []Prefix
	seen := make(map[Prefix]bool)
	for _, e := range m.entries {
		if e.Prefix.IsSentinel() || seen[e.Prefix] {
			continue
		}
		seen[e.Prefix] = true
		prefixes = append(prefixes, e.Prefix)
	}
	return prefixes
}

// =============================================================================
// CARET LOOKUPS
// =============================================================================

// Anchors returns the scanned anchors in ascending position order, followed
// by the EndMarker anchor. The preamble's StartMarker is not included.
func (m *ArgumentMultimap) Anchors() []Anchor {
	var anchors []Anchor
	for _, e := range m.entries {
		if e.Position < 0 || e.Prefix.IsSentinel() {
			continue
		}
		anchors = append(anchors, e.Anchor)
	}
	sort.SliceStable(anchors, func(i, j int) bool {
		return anchors[i].Position < anchors[j].Position
	})
	if m.hasEnd {
		anchors = append(anchors, m.end)
	}
	return anchors
}

// FindPrecedingPrefixKey returns the nearest anchor whose marker text ends at
// or before caret. The second result is false when the caret lies in the
// preamble, before any anchor has been completely typed.
func (m *ArgumentMultimap) FindPrecedingPrefixKey(caret int) (Anchor, bool) {
	var found Anchor
	ok := false
	for _, a := range m.Anchors() {
		if a.Prefix == EndMarker || a.End() > caret {
			continue
		}
		if !ok || a.Position > found.Position {
			found, ok = a, true
		}
	}
	return found, ok
}

// FindSucceedingPrefixKey returns the anchor that follows current, which is
// the exclusive boundary of current's value. When nothing follows, current
// itself is returned.
func (m *ArgumentMultimap) FindSucceedingPrefixKey(current Anchor) Anchor {
	for _, a := range m.Anchors() {
		if a == current {
			continue
		}
		if a.Position > current.Position ||
			(a.Position == current.Position && current.Prefix == StartMarker) {
			return a
		}
	}
	return current
}

// =============================================================================
// SERIALIZATION AND EQUALITY
// =============================================================================

// Serialize rebuilds a command line from the preamble followed by every
// marker/value pair in encounter order. Tokenizing the result with Prefixes()
// yields a map Equal to m, provided no value itself contains a marker that
// follows whitespace.
func (m *ArgumentMultimap) Serialize() string {
	var parts []string
	if preamble := m.GetPreamble(); preamble != "" {
		parts = append(parts, preamble)
	}
	for _, e := range m.entries {
		if e.Prefix.IsSentinel() {
			continue
		}
		parts = append(parts, e.Prefix.text+e.Value)
	}
	return strings.Join(parts, " ")
}

// Equal reports whether m and other hold the same preamble and the same value
// sequence for every prefix. Positions are not compared.
func (m *ArgumentMultimap) Equal(other *ArgumentMultimap) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.GetPreamble() != other.GetPreamble() {
		return false
	}
	if len(m.Prefixes()) != len(other.Prefixes()) {
		return false
	}
	for _, p := range m.Prefixes() {
		a, b := m.GetAllValues(p), other.GetAllValues(p)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}

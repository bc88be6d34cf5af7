// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggestion

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/jeranaias/saveit/internal/parser"
)

// =============================================================================
// CANDIDATE SOURCE
// =============================================================================

// CandidateSource supplies the known values suggestions are drawn from.
// It is only read, once per evaluation.
type CandidateSource interface {
	CurrentTagSet() []string
	CurrentIssueStatementSet() []string
}

// =============================================================================
// VARIANT
// =============================================================================

// Variant is a single evaluation of one Kind. It closes over the accessor for
// its candidates, the partial text already typed and the two anchors that
// bound the argument being completed.
type Variant struct {
	Kind       Kind
	Partial    string
	Preceding  parser.Anchor
	Succeeding parser.Anchor

	candidates func() []string
}

// newVariant binds kind to the matching accessor of source.
func newVariant(kind Kind, source CandidateSource, commands func() []string,
	partial string, preceding, succeeding parser.Anchor) Variant {
	v := Variant{
		Kind:       kind,
		Partial:    partial,
		Preceding:  preceding,
		Succeeding: succeeding,
	}
	switch kind {
	case KindTagName:
		v.candidates = source.CurrentTagSet
	case KindIssueStatement:
		v.candidates = source.CurrentIssueStatementSet
	case KindCommandWord:
		v.candidates = commands
	}
	return v
}

// Span returns the replacement span. It starts right after the preceding
// marker; it ends before the whitespace that precedes the succeeding marker,
// or at the end of input when nothing follows.
func (v Variant) Span() (start, end int) {
	start = v.Preceding.End()
	end = v.Succeeding.Position
	if v.Succeeding.Prefix != parser.EndMarker {
		end--
	}
	return start, end
}

// Evaluate filters the candidates by case-insensitive prefix match against
// the partial text and returns them sorted case-insensitively.
func (v Variant) Evaluate() Result {
	folder := cases.Fold()
	partial := folder.String(strings.TrimLeftFunc(v.Partial, unicode.IsSpace))

	type match struct {
		value string
		key   string
	}
	var matches []match
	seen := make(map[string]bool)
	if v.candidates != nil {
		for _, c := range v.candidates() {
			if seen[c] {
				continue
			}
			seen[c] = true
			key := folder.String(c)
			if strings.HasPrefix(key, partial) {
				matches = append(matches, match{value: c, key: key})
			}
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].key != matches[j].key {
			return matches[i].key < matches[j].key
		}
		return matches[i].value < matches[j].value
	})

	values := make([]Value, 0, len(matches))
	for _, m := range matches {
		values = append(values, Value{Label: m.value, Insertion: v.insertion(m.value)})
	}

	start, end := v.Span()
	status := v.Kind.status()
	if len(values) == 0 {
		status = StatusNoCandidates
	}
	return Result{Values: values, Status: status, Start: start, End: end}
}

// insertion returns the text inserted for value. Command words carry a
// trailing space so the user can go straight on to the arguments.
func (v Variant) insertion(value string) string {
	if v.Kind == KindCommandWord {
		return value + " "
	}
	return value
}

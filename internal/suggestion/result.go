// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggestion

import "github.com/jeranaias/saveit/internal/util"

// Status lines reported with a Result.
const (
	StatusTagName        = "Existing tags"
	StatusIssueStatement = "Existing issue statements"
	StatusCommandWord    = "Commands"
	StatusNoCandidates   = "No candidates"
)

// Value is one candidate: what to show and what to insert.
type Value struct {
	Label     string
	Insertion string
}

// Result is the answer to one suggestion request. It is built fresh for every
// request and is not meant to be kept across keystrokes.
type Result struct {
	Values []Value
	Status string

	// Start and End delimit the half-open character span [Start, End) of the
	// raw input that an accepted Value replaces.
	Start int
	End   int
}

// emptyResult is returned when nothing can be suggested at caret.
func emptyResult(caret int) Result {
	return Result{Status: StatusNoCandidates, Start: caret, End: caret}
}

// Empty reports whether the result has no candidates.
func (r Result) Empty() bool {
	return len(r.Values) == 0
}

// Labels returns the display labels in order.
func (r Result) Labels() []string {
	labels := make([]string, len(r.Values))
	for i, v := range r.Values {
		labels[i] = v.Label
	}
	return labels
}

// Apply replaces the result's span in raw with v's insertion text and returns
// the new text with the caret placed right after the insertion.
func (r Result) Apply(raw string, v Value) (string, int) {
	n := util.RuneLen(raw)
	text := util.RuneSlice(raw, 0, r.Start) + v.Insertion + util.RuneSlice(raw, r.End, n)
	return text, r.Start + util.RuneLen(v.Insertion)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggestion

// =============================================================================
// NAVIGATOR
// =============================================================================

// Navigator holds the selection state while the user cycles through a Result.
type Navigator struct {
	// Input is the raw text the result was computed for.
	Input string

	Result Result

	// Selected is the highlighted index, -1 when nothing is highlighted.
	Selected int

	// Visible reports whether there is anything to show.
	Visible bool
}

// NewNavigator returns a navigator with nothing selected.
func NewNavigator() *Navigator {
	return &Navigator{Selected: -1}
}

// Update replaces the current result and highlights its first candidate.
func (n *Navigator) Update(input string, result Result) {
	n.Input = input
	n.Result = result
	n.Visible = !result.Empty()
	n.Selected = -1
	if n.Visible {
		n.Selected = 0
	}
}

// Reset hides the navigator.
func (n *Navigator) Reset() {
	n.Update("", Result{})
}

// Next moves the highlight forward, wrapping around.
func (n *Navigator) Next() {
	if count := len(n.Result.Values); count > 0 {
		n.Selected = (n.Selected + 1) % count
	}
}

// Prev moves the highlight backward, wrapping around.
func (n *Navigator) Prev() {
	count := len(n.Result.Values)
	if count == 0 {
		return
	}
	n.Selected--
	if n.Selected < 0 {
		n.Selected = count - 1
	}
}

// Current returns the highlighted value.
func (n *Navigator) Current() (Value, bool) {
	if n.Selected < 0 || n.Selected >= len(n.Result.Values) {
		return Value{}, false
	}
	return n.Result.Values[n.Selected], true
}

// Accept applies the highlighted value to Input and returns the new text and
// caret. ok is false when nothing is highlighted.
func (n *Navigator) Accept() (text string, caret int, ok bool) {
	v, ok := n.Current()
	if !ok {
		return n.Input, 0, false
	}
	text, caret = n.Result.Apply(n.Input, v)
	return text, caret, true
}

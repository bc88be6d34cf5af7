// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/saveit/internal/suggestion"
	"github.com/jeranaias/saveit/internal/ui/styles"
)

// =============================================================================
// SUGGESTION POPUP COMPONENT
// =============================================================================

// DefaultMaxVisible is the number of rows shown before the list scrolls.
const DefaultMaxVisible = 8

// SuggestionPopup displays the suggestions for the current caret position.
type SuggestionPopup struct {
	nav        *suggestion.Navigator
	hidden     bool
	maxVisible int
	width      int
	theme      *styles.Theme
}

// NewSuggestionPopup creates an empty popup.
func NewSuggestionPopup(theme *styles.Theme) *SuggestionPopup {
	return &SuggestionPopup{
		nav:        suggestion.NewNavigator(),
		maxVisible: DefaultMaxVisible,
		width:      40,
		theme:      theme,
	}
}

// Update shows result, computed for input, with its first value highlighted.
func (p *SuggestionPopup) Update(input string, result suggestion.Result) {
	p.nav.Update(input, result)
	p.hidden = false
}

// Hide closes the popup until the next Update.
func (p *SuggestionPopup) Hide() {
	p.hidden = true
}

// Clear drops the current result.
func (p *SuggestionPopup) Clear() {
	p.nav.Reset()
}

// Visible reports whether the popup has values to show.
func (p *SuggestionPopup) Visible() bool {
	return !p.hidden && p.nav.Visible
}

// Result returns the result being shown.
func (p *SuggestionPopup) Result() suggestion.Result {
	return p.nav.Result
}

// Selected returns the highlighted index, -1 when there is none.
func (p *SuggestionPopup) Selected() int {
	return p.nav.Selected
}

// Next highlights the next value.
func (p *SuggestionPopup) Next() {
	p.nav.Next()
}

// Prev highlights the previous value.
func (p *SuggestionPopup) Prev() {
	p.nav.Prev()
}

// Accept returns the input with the highlighted value applied, and the caret
// after the inserted text. The popup closes.
func (p *SuggestionPopup) Accept() (text string, caret int, ok bool) {
	if !p.Visible() {
		return "", 0, false
	}
	text, caret, ok = p.nav.Accept()
	if ok {
		p.nav.Reset()
	}
	return text, caret, ok
}

// SetWidth sets the popup width.
func (p *SuggestionPopup) SetWidth(width int) {
	if width > 0 {
		p.width = width
	}
}

// SetMaxVisible sets the number of rows shown at once.
func (p *SuggestionPopup) SetMaxVisible(n int) {
	if n > 0 {
		p.maxVisible = n
	}
}

// window returns the visible index range [start, end), keeping the selected
// row near the middle.
func (p *SuggestionPopup) window() (start, end int) {
	count := len(p.nav.Result.Values)
	end = count
	if count <= p.maxVisible {
		return 0, end
	}
	start = p.nav.Selected - p.maxVisible/2
	if start < 0 {
		start = 0
	}
	end = start + p.maxVisible
	if end > count {
		end = count
		start = end - p.maxVisible
	}
	return start, end
}

// View renders the popup, or "" when it is not visible.
func (p *SuggestionPopup) View() string {
	if !p.Visible() {
		return ""
	}

	inner := p.width - 4 // border and padding
	if inner < 8 {
		inner = 8
	}

	result := p.nav.Result
	start, end := p.window()

	lines := []string{p.theme.PopupStatus.Render(result.Status)}
	if start > 0 {
		lines = append(lines, p.theme.PopupMore.Render(fmt.Sprintf("  ↑ %d more", start)))
	}
	for i := start; i < end; i++ {
		label := runewidth.FillRight(runewidth.Truncate(result.Values[i].Label, inner, "…"), inner)
		style := p.theme.PopupItem
		if i == p.nav.Selected {
			style = p.theme.PopupSelected
		}
		lines = append(lines, style.Render(label))
	}
	if rest := len(result.Values) - end; rest > 0 {
		lines = append(lines, p.theme.PopupMore.Render(fmt.Sprintf("  ↓ %d more", rest)))
	}

	return p.theme.PopupBox.
		Width(p.width - 2).
		MaxWidth(p.width).
		Render(strings.Join(lines, "\n"))
}

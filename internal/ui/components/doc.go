// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable pieces of the saveit full-screen prompt.

SuggestionPopup (popup.go) lists the suggestions for the caret position below
the input line. It keeps the highlight in a suggestion.Navigator and renders a
scrolling window around it:

	popup := components.NewSuggestionPopup(theme)
	popup.Update(input, result)
	popup.Next()
	text, caret, ok := popup.Accept()
*/
package components

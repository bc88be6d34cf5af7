// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard bindings of the shell.
type KeyMap struct {
	Submit   key.Binding
	Accept   key.Binding
	Next     key.Binding
	Prev     key.Binding
	Dismiss  key.Binding
	Quit     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "run"),
		),
		Accept: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "complete"),
		),
		Next: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓/C-n", "next suggestion"),
		),
		Prev: key.NewBinding(
			key.WithKeys("up", "ctrl+p", "shift+tab"),
			key.WithHelp("↑/C-p", "previous suggestion"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "hide suggestions"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
	}
}

// ShortHelp returns the bindings shown under the input line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.Next, k.Submit, k.Dismiss, k.Quit}
}

// FullHelp returns all bindings.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Accept, k.Next, k.Prev},
		{k.Dismiss, k.PageUp, k.PageDown, k.Quit},
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/saveit/internal/commands"
	"github.com/jeranaias/saveit/internal/suggestion"
	"github.com/jeranaias/saveit/internal/ui/components"
	"github.com/jeranaias/saveit/internal/ui/styles"
)

// =============================================================================
// MODEL
// =============================================================================

// Backend runs command lines and computes suggestions.
type Backend interface {
	Execute(ctx context.Context, line string) (commands.Result, error)
	Complete(line string, caret int) (suggestion.Result, error)
}

// RenderFunc turns the outcome of a command into transcript text.
type RenderFunc func(result commands.Result, err error) string

const (
	promptText    = "saveit> "
	defaultWidth  = 80
	defaultHeight = 24
)

// Model is the Bubble Tea model of the shell.
type Model struct {
	ctx     context.Context
	backend Backend
	render  RenderFunc
	theme   *styles.Theme
	keys    KeyMap
	help    help.Model

	input      textinput.Model
	popup      *components.SuggestionPopup
	transcript viewport.Model
	lines      []string

	// lastInput and lastCaret are what the popup was computed for.
	lastInput string
	lastCaret int

	status   string
	running  bool
	quitting bool

	width  int
	height int
}

// New creates a shell over backend. theme is "dark", "light" or "auto".
func New(ctx context.Context, backend Backend, render RenderFunc, theme string) Model {
	t := styles.NewTheme(theme)

	ti := textinput.New()
	ti.Prompt = promptText
	ti.PromptStyle = t.Prompt
	ti.TextStyle = t.Output
	ti.Placeholder = "type help, Tab completes"
	ti.PlaceholderStyle = t.Placeholder
	ti.Focus()

	m := Model{
		ctx:        ctx,
		backend:    backend,
		render:     render,
		theme:      t,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		input:      ti,
		popup:      components.NewSuggestionPopup(t),
		transcript: viewport.New(defaultWidth, defaultHeight-2),
		lastCaret:  -1,
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Value returns the input line.
func (m Model) Value() string {
	return m.input.Value()
}

// Caret returns the caret position in the input line.
func (m Model) Caret() int {
	return m.input.Position()
}

// Transcript returns everything printed so far.
func (m Model) Transcript() []string {
	return m.lines
}

// Popup returns the suggestion popup.
func (m Model) Popup() *components.SuggestionPopup {
	return m.popup
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.input.Width = width - len(promptText) - 1
	m.popup.SetWidth(min(width, 60))
	m.help.Width = width
	m.transcript.Width = width
	m.transcript.Height = max(1, height-2)
	m.transcript.GotoBottom()
}

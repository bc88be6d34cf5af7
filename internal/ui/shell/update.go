// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles a message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case ExecutedMsg:
		return m.handleExecuted(msg)

	case ConfigReloadedMsg:
		m.status = "configuration reloaded"
		m.refreshSuggestions(true)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Accept):
		if text, caret, ok := m.popup.Accept(); ok {
			m.input.SetValue(text)
			m.input.SetCursor(caret)
			m.lastInput, m.lastCaret = text, caret
			return m, nil
		}
		m.refreshSuggestions(true)
		return m, nil

	case key.Matches(msg, m.keys.Next):
		if m.popup.Visible() {
			m.popup.Next()
		}
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		if m.popup.Visible() {
			m.popup.Prev()
		}
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		m.popup.Hide()
		return m, nil

	case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.status = ""
	m.refreshSuggestions(false)
	return m, cmd
}

// submit sends the input line to the backend. Blank lines are dropped.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.running {
		return m, nil
	}
	line := m.input.Value()
	m.input.SetValue("")
	m.popup.Clear()
	m.lastInput, m.lastCaret = "", 0
	if strings.TrimSpace(line) == "" {
		return m, nil
	}

	m.running = true
	m.appendTranscript(m.theme.Echo.Render(promptText + line))
	return m, m.executeCmd(line)
}

func (m Model) handleExecuted(msg ExecutedMsg) (tea.Model, tea.Cmd) {
	m.running = false
	if out := m.render(msg.Result, msg.Err); out != "" {
		m.appendTranscript(out)
	}
	if msg.Err == nil && msg.Result.Exit {
		m.quitting = true
		return m, tea.Quit
	}
	// Candidate sets may have changed.
	m.refreshSuggestions(true)
	return m, nil
}

// refreshSuggestions recomputes the popup for the current input and caret.
// Unless force is set nothing happens when neither changed.
func (m *Model) refreshSuggestions(force bool) {
	value, caret := m.input.Value(), m.input.Position()
	if !force && value == m.lastInput && caret == m.lastCaret {
		return
	}
	m.lastInput, m.lastCaret = value, caret

	if strings.TrimSpace(value) == "" {
		m.popup.Clear()
		return
	}
	result, err := m.backend.Complete(value, caret)
	if err != nil {
		m.popup.Clear()
		m.status = err.Error()
		return
	}
	m.popup.Update(value, result)
}

func (m *Model) appendTranscript(text string) {
	m.lines = append(m.lines, text)
	m.transcript.SetContent(strings.Join(m.lines, "\n"))
	m.transcript.GotoBottom()
}

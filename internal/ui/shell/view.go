// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the transcript, the input line, the popup and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	popup := m.popup.View()
	footer := m.footer()

	// The popup takes its rows from the transcript.
	vp := m.transcript
	reserved := 1 + lipgloss.Height(footer)
	if popup != "" {
		reserved += lipgloss.Height(popup)
	}
	atBottom := vp.AtBottom()
	vp.Height = max(1, m.height-reserved)
	if atBottom {
		vp.GotoBottom()
	}

	parts := []string{vp.View(), m.input.View()}
	if popup != "" {
		parts = append(parts, popup)
	}
	parts = append(parts, footer)
	return strings.Join(parts, "\n")
}

func (m Model) footer() string {
	if m.status != "" {
		return m.theme.StatusBar.Render(m.status)
	}
	if m.running {
		return m.theme.Hint.Render("running...")
	}
	return m.help.View(m.keys)
}

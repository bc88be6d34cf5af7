// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/saveit/internal/commands"
)

// ExecutedMsg carries the outcome of a submitted line.
type ExecutedMsg struct {
	Line   string
	Result commands.Result
	Err    error
}

// ConfigReloadedMsg is sent after the configuration file changed and was
// applied. The shell recomputes the suggestions at the caret.
type ConfigReloadedMsg struct{}

// executeCmd runs line on the backend outside the update loop.
func (m Model) executeCmd(line string) tea.Cmd {
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		result, err := backend.Execute(ctx, line)
		return ExecutedMsg{Line: line, Result: result, Err: err}
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// WatchFunc follows configuration changes until ctx is done and calls
// onApplied after each applied change.
type WatchFunc func(ctx context.Context, onApplied func())

// Run starts the shell on the alternate screen and blocks until it exits.
// watch may be nil.
func Run(ctx context.Context, m Model, in io.Reader, out io.Writer, watch WatchFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	if watch != nil {
		go watch(ctx, func() { p.Send(ConfigReloadedMsg{}) })
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styles of the full-screen prompt.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile

	// Transcript
	Echo    lipgloss.Style
	Output  lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style

	// Input line
	Prompt      lipgloss.Style
	Placeholder lipgloss.Style
	StatusBar   lipgloss.Style
	Hint        lipgloss.Style

	// Suggestion popup
	PopupBox      lipgloss.Style
	PopupStatus   lipgloss.Style
	PopupItem     lipgloss.Style
	PopupSelected lipgloss.Style
	PopupMore     lipgloss.Style
}

// NewTheme returns the theme for "dark", "light" or "auto".
func NewTheme(mode string) *Theme {
	t := &Theme{ColorProfile: termenv.ColorProfile()}
	switch mode {
	case "dark":
		t.IsDark = true
	case "light":
		t.IsDark = false
	default:
		t.IsDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(t.IsDark)
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.Echo = lipgloss.NewStyle().Foreground(TextSecondary)
	t.Output = lipgloss.NewStyle().Foreground(TextPrimary)
	t.Error = lipgloss.NewStyle().Foreground(Rose)
	t.Success = lipgloss.NewStyle().Foreground(Emerald)

	t.Prompt = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.Placeholder = lipgloss.NewStyle().Foreground(TextMuted)
	t.StatusBar = lipgloss.NewStyle().Foreground(Amber)
	t.Hint = lipgloss.NewStyle().Foreground(TextMuted)

	t.PopupBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(0, 1)
	t.PopupStatus = lipgloss.NewStyle().Foreground(Amber).Italic(true)
	t.PopupItem = lipgloss.NewStyle().Foreground(TextPrimary)
	t.PopupSelected = lipgloss.NewStyle().
		Background(Purple).
		Foreground(Surface).
		Bold(true)
	t.PopupMore = lipgloss.NewStyle().Foreground(TextMuted)
}

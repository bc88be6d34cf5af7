// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - The config subcommand: show, get, set, reset and path.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/jeranaias/saveit/internal/config"
)

// =============================================================================
// CONFIG STYLES
// =============================================================================

var (
	configSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("255")) // White

	configKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")) // Light gray

	configValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82")) // Green

	configPathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)
)

// =============================================================================
// CONFIG COMMAND
// =============================================================================

// configFile returns the file the config subcommand edits.
func configFile(st *rootState) (string, error) {
	if st.opts.ConfigPath != "" {
		return st.opts.ConfigPath, nil
	}
	return config.Locate()
}

func newConfigCommand(st *rootState) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Show or change settings",
		Annotations: map[string]string{skipApp: "true"},
		Args:        usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.OutOrStdout(), st, jsonOut)
		},
	}
	cmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output as JSON")

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the effective settings, environment overrides included",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.OutOrStdout(), st, jsonOut)
		},
	}

	get := &cobra.Command{
		Use:       "get KEY",
		Short:     "Print one setting",
		Args:      usageArgs(cobra.ExactArgs(1)),
		ValidArgs: config.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(st.opts.ConfigPath)
			if err != nil {
				return err
			}
			value, err := cfg.Get(args[0])
			if err != nil {
				return fmt.Errorf("%w (keys: %s)", err, strings.Join(config.Keys(), ", "))
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one setting in the config file",
		Example: `  saveit config set list.default_sort tag
  saveit config set suggestion.enabled tag,command`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFile(st)
			if err != nil {
				return err
			}
			cfg, err := config.LoadFile(path)
			if err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := config.EnsureDir(); err != nil {
				return err
			}
			if err := config.SaveFile(cfg, path); err != nil {
				return err
			}
			value, _ := cfg.Get(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n",
				RenderConditional(SuccessStyle, "[OK]"), args[0], value)
			return nil
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Write the default settings to the config file",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFile(st)
			if err != nil {
				return err
			}
			if err := config.EnsureDir(); err != nil {
				return err
			}
			if err := config.SaveFile(config.Default(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Reset %s\n", RenderConditional(SuccessStyle, "[OK]"), path)
			return nil
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFile(st)
			if err != nil {
				return err
			}
			if jsonOut {
				_, statErr := os.Stat(path)
				return NewJSONResponse("config path", ConfigData{Path: path, Exists: statErr == nil}).
					Print(cmd.OutOrStdout())
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.AddCommand(show, get, set, reset, path)
	return cmd
}

// showConfig prints every key grouped by section.
func showConfig(w io.Writer, st *rootState, jsonOut bool) error {
	cfg, _, err := loadConfig(st.opts.ConfigPath)
	if err != nil {
		return err
	}
	path, err := configFile(st)
	if err != nil {
		return err
	}
	_, statErr := os.Stat(path)

	settings := make(map[string]string, len(config.Keys()))
	for _, key := range config.Keys() {
		settings[key], _ = cfg.Get(key)
	}

	if jsonOut {
		return NewJSONResponse("config show", ConfigData{
			Path:     path,
			Exists:   statErr == nil,
			Settings: settings,
		}).Print(w)
	}

	fmt.Fprintln(w, RenderConditional(TitleStyle, "saveit Configuration"))
	fmt.Fprintln(w, RenderSeparator(41))

	keyWidth := 0
	for _, key := range config.Keys() {
		keyWidth = max(keyWidth, runewidth.StringWidth(key[strings.Index(key, ".")+1:]))
	}

	section := ""
	for _, key := range config.Keys() {
		head, name, _ := strings.Cut(key, ".")
		if head != section {
			section = head
			fmt.Fprintln(w)
			fmt.Fprintln(w, RenderConditional(configSectionStyle, "["+section+"]"))
		}
		value := settings[key]
		if value == "" {
			value = "(default)"
		}
		fmt.Fprintf(w, "  %s  %s\n",
			RenderConditional(configKeyStyle, runewidth.FillRight(name+":", keyWidth+1)),
			RenderConditional(configValueStyle, value))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, RenderSeparator(41))
	note := ""
	if statErr != nil {
		note = " (not created yet)"
	}
	fmt.Fprintf(w, "Config file: %s%s\n", RenderConditional(configPathStyle, path), note)
	return nil
}

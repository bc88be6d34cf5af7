// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command line entry points for saveit.
package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jeranaias/saveit/internal/commands"
	"github.com/jeranaias/saveit/internal/config"
	"github.com/jeranaias/saveit/internal/suggestion"
	"github.com/jeranaias/saveit/internal/ui/shell"
	"github.com/jeranaias/saveit/internal/util"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// skipApp marks subcommands that run without opening the issue database.
const skipApp = "saveit/skip-app"

// =============================================================================
// ROOT COMMAND
// =============================================================================

type rootState struct {
	opts Options
	app  *App
}

// NewRootCommand builds the saveit command tree.
func NewRootCommand() *cobra.Command {
	st := &rootState{}

	root := &cobra.Command{
		Use:   "saveit",
		Short: "saveit - remember issues and how you solved them",
		Long: `saveit keeps a small database of issues, their solutions and tags.

Without a subcommand it starts an interactive prompt. Type help there to see
the available commands; Tab completes tags, issue statements and commands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsApp(cmd) {
				return nil
			}
			app, err := NewApp(cmd.Context(), st.opts)
			if err != nil {
				return err
			}
			st.app = app
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if st.app == nil {
				return nil
			}
			err := st.app.Close()
			st.app = nil
			return err
		},
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd.Context(), st.app, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	root.PersistentFlags().StringVarP(&st.opts.ConfigPath, "config", "c", "", "config file (default ~/.saveit/config.toml)")
	root.PersistentFlags().StringVar(&st.opts.DataPath, "data", "", "issue database file (overrides data.path)")
	root.PersistentFlags().BoolVarP(&st.opts.Verbose, "verbose", "v", false, "log debug output")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	})

	root.AddCommand(
		newTUICommand(st),
		newExecCommand(st),
		newSuggestCommand(st),
		newConfigCommand(st),
		newDoctorCommand(st),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		NewRenderer(os.Stderr, config.Default().UI, 0, false).Error(err, commands.NewRegistry())
		return GetExitCode(err)
	}
	return ExitSuccess
}

// needsApp reports whether cmd and its parents all need the database.
func needsApp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipApp] != "" {
			return false
		}
	}
	return true
}

// usageArgs tags argument validation failures so they exit with the usage
// code.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		return nil
	}
}

// =============================================================================
// SUBCOMMANDS
// =============================================================================

func newTUICommand(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the full-screen prompt with a live suggestion popup",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), st.app, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func newExecCommand(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "exec LINE...",
		Short: "Run one command line and exit",
		Example: `  saveit exec list sort/tag
  saveit exec 'add s/Build fails d/Missing env var t/ci'`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := st.app
			line := strings.Join(args, " ")
			result, err := app.Execute(cmd.Context(), line)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			NewRenderer(out, app.UI(), GetTerminalWidth(), isTerminalWriter(out)).Render(result)
			return nil
		},
	}
}

func newSuggestCommand(st *rootState) *cobra.Command {
	var (
		caret   int
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "suggest LINE...",
		Short: "Print the suggestions for a command line at a caret position",
		Long: `Print the suggestions for a command line.

The caret is a character offset into LINE; by default it sits at the end.`,
		Example: `  saveit suggest 'find t/urg'
  saveit suggest --caret 6 --json 'find t/urg s/x'`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			line := strings.Join(args, " ")
			pos := caret
			if pos < 0 {
				pos = util.RuneLen(line)
			}
			result, err := st.app.Completer.Complete(line, pos)
			if err != nil {
				return err
			}
			return writeSuggestions(cmd.OutOrStdout(), line, pos, result, jsonOut)
		},
	}
	cmd.Flags().IntVar(&caret, "caret", -1, "caret position in characters (default end of line)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}

func writeSuggestions(w io.Writer, line string, caret int, result suggestion.Result, jsonOut bool) error {
	if jsonOut {
		data := SuggestData{
			Input:  line,
			Caret:  caret,
			Status: result.Status,
			Start:  result.Start,
			End:    result.End,
			Values: make([]SuggestValue, len(result.Values)),
		}
		for i, v := range result.Values {
			data.Values[i] = SuggestValue{Label: v.Label, Insertion: v.Insertion}
		}
		return NewJSONResponse("suggest", data).Print(w)
	}

	fmt.Fprintf(w, "%s [%d,%d)\n", RenderConditional(TitleStyle, result.Status), result.Start, result.End)
	for _, label := range result.Labels() {
		fmt.Fprintf(w, "  %s\n", label)
	}
	return nil
}

func newVersionCommand() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        usageArgs(cobra.NoArgs),
		Annotations: map[string]string{skipApp: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			data := VersionData{
				Version:   Version,
				GitCommit: GitCommit,
				BuildDate: BuildDate,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			if jsonOut {
				return NewJSONResponse("version", data).Print(cmd.OutOrStdout())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saveit %s (commit %s, built %s, %s, %s)\n",
				data.Version, data.GitCommit, data.BuildDate, data.GoVersion, data.Platform)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}

// =============================================================================
// TUI
// =============================================================================

func runTUI(ctx context.Context, app *App, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := shell.New(ctx, app, func(result commands.Result, err error) string {
		var buf bytes.Buffer
		r := NewRenderer(&buf, app.UI(), GetTerminalWidth(), ColorsEnabled())
		if err != nil {
			r.Error(err, app.Registry)
		} else {
			r.Render(result)
		}
		return strings.TrimRight(buf.String(), "\n")
	}, app.UI().Theme)
	return shell.Run(ctx, model, in, out, app.WatchConfig)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Line-oriented interactive prompt.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/jeranaias/saveit/internal/config"
)

// =============================================================================
// LINE READERS
// =============================================================================

// lineReader yields one input line per call and io.EOF at the end.
type lineReader interface {
	ReadLine(prompt string) (string, error)
	Close()
}

// linerReader reads from the terminal with history and Tab completion.
type linerReader struct {
	line        *liner.State
	historyFile string
	logger      *zap.Logger
}

func newLinerReader(app *App) *linerReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetTabCompletionStyle(liner.TabPrints)
	line.SetWordCompleter(app.Completer.WordCompleter)

	r := &linerReader{line: line, logger: app.Logger}
	if path, err := config.HistoryPath(); err == nil {
		r.historyFile = path
		if f, err := os.Open(path); err == nil {
			_, _ = line.ReadHistory(f)
			f.Close()
		}
	}
	return r
}

func (r *linerReader) ReadLine(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", io.EOF
		}
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history with owner-only permissions and restores the terminal.
func (r *linerReader) Close() {
	defer r.line.Close()
	if r.historyFile == "" {
		return
	}
	if err := config.EnsureDir(); err != nil {
		return
	}
	f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		r.logger.Debug("cannot save history", zap.Error(err))
		return
	}
	defer f.Close()
	_, _ = r.line.WriteHistory(f)
}

// scanReader reads plain lines, e.g. from a pipe.
type scanReader struct {
	scanner *bufio.Scanner
}

func (r *scanReader) ReadLine(string) (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

func (r *scanReader) Close() {}

// =============================================================================
// REPL
// =============================================================================

// runREPL executes lines from in until exit, end of input or ctx is done.
// Command failures are printed and do not stop the loop.
func runREPL(ctx context.Context, app *App, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go app.WatchConfig(ctx, nil)

	interactive := in == os.Stdin && IsTTY()
	var reader lineReader
	if interactive {
		reader = newLinerReader(app)
	} else {
		reader = &scanReader{scanner: bufio.NewScanner(in)}
	}
	defer reader.Close()

	prompt := ""
	if interactive {
		prompt = "saveit> "
		fmt.Fprintln(out, RenderConditional(DimStyle, "Type help for commands, Tab to complete, Ctrl+D to quit."))
	}

	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := reader.ReadLine(prompt)
		if errors.Is(err, io.EOF) {
			if interactive {
				fmt.Fprintln(out)
			}
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		r := NewRenderer(out, app.UI(), GetTerminalWidth(), interactive && ColorsEnabled())
		result, err := app.Execute(ctx, line)
		if err != nil {
			r.Error(err, app.Registry)
			continue
		}
		r.Render(result)
		if result.Exit {
			return nil
		}
	}
}

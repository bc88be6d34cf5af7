// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/saveit/internal/commands"
	"github.com/jeranaias/saveit/internal/config"
	"github.com/jeranaias/saveit/internal/model"
)

// =============================================================================
// RENDERER
// =============================================================================

// Renderer writes command results to a terminal or a pipe.
type Renderer struct {
	out      io.Writer
	width    int
	compact  bool
	markdown *glamour.TermRenderer // nil writes markdown as plain text
}

// NewRenderer creates a renderer. styled enables markdown rendering for the
// detail view; it should only be set when out is a terminal.
func NewRenderer(out io.Writer, ui config.UIConfig, width int, styled bool) *Renderer {
	r := &Renderer{out: out, width: width, compact: ui.Compact}
	if r.width <= 0 {
		r.width = DefaultTerminalWidth
	}
	if styled {
		style := "light"
		if HasDarkBackground(ui.Theme) {
			style = "dark"
		}
		md, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(r.width),
		)
		if err == nil {
			r.markdown = md
		}
	}
	return r
}

// Render writes result.
func (r *Renderer) Render(result commands.Result) {
	switch {
	case result.Detail != nil:
		r.renderDetail(result.Detail)
	case result.Help != nil:
		r.renderHelp(result.Help, result.Message)
		return
	case result.Issues != nil:
		r.renderList(result.Issues)
	}
	if result.Message != "" {
		fmt.Fprintln(r.out, RenderConditional(SuccessStyle, result.Message))
	}
}

// Error writes err, followed by a correction hint for a mistyped command
// word when registry knows a close match.
func (r *Renderer) Error(err error, registry *commands.Registry) {
	DisplayError(r.out, err)
	if hint := didYouMean(err, registry); hint != "" {
		fmt.Fprintln(r.out, RenderConditional(DimStyle, hint))
	}
}

// renderList writes one issue per line: index, statement padded to a common
// display width, then tags. Descriptions follow on their own line unless the
// compact layout is on.
func (r *Renderer) renderList(issues []model.Issue) {
	if len(issues) == 0 {
		return
	}

	indexWidth := len(strconv.Itoa(len(issues))) + 1
	statementWidth := 0
	for i := range issues {
		if w := runewidth.StringWidth(issues[i].Statement); w > statementWidth {
			statementWidth = w
		}
	}
	if limit := r.width / 2; statementWidth > limit {
		statementWidth = limit
	}

	for i := range issues {
		issue := &issues[i]
		index := runewidth.FillLeft(strconv.Itoa(i+1)+".", indexWidth)
		statement := runewidth.FillRight(runewidth.Truncate(issue.Statement, statementWidth, "…"), statementWidth)

		var tags []string
		for _, tag := range issue.Tags {
			tags = append(tags, RenderConditional(TagStyle, "["+tag+"]"))
		}
		line := RenderConditional(IndexStyle, index) + " " + statement
		if len(tags) > 0 {
			line += "  " + strings.Join(tags, " ")
		}
		fmt.Fprintln(r.out, strings.TrimRight(line, " "))

		if !r.compact {
			pad := strings.Repeat(" ", indexWidth+1)
			desc := runewidth.Truncate(issue.Description, r.width-indexWidth-1, "…")
			fmt.Fprintln(r.out, pad+RenderConditional(DimStyle, desc))
		}
	}
}

// renderDetail writes the issue as markdown.
func (r *Renderer) renderDetail(issue *model.Issue) {
	content := issue.Markdown()
	if r.markdown != nil {
		if rendered, err := r.markdown.Render(content); err == nil {
			content = rendered
		}
	}
	fmt.Fprint(r.out, content)
	if !strings.HasSuffix(content, "\n") {
		fmt.Fprintln(r.out)
	}
}

// renderHelp writes a command table, or the full usage for a single command.
func (r *Renderer) renderHelp(cmds []*commands.Command, message string) {
	if len(cmds) == 1 {
		fmt.Fprintln(r.out, cmds[0].Usage)
		return
	}

	fmt.Fprintln(r.out, RenderConditional(TitleStyle, message))
	nameWidth := 0
	for _, cmd := range cmds {
		if w := runewidth.StringWidth(cmd.Name); w > nameWidth {
			nameWidth = w
		}
	}
	for _, cmd := range cmds {
		name := runewidth.FillRight(cmd.Name, nameWidth)
		fmt.Fprintf(r.out, "  %s  %s\n", RenderConditional(LabelStyle, name), cmd.Description)
	}
	fmt.Fprintln(r.out, RenderConditional(DimStyle, "Type help COMMAND for its parameters. Press Tab to complete tags, statements and commands."))
}

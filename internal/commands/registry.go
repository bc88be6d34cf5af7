// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/jeranaias/saveit/internal/model"
	"github.com/jeranaias/saveit/internal/parser"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command represents a command that can be executed.
type Command struct {
	// Name is the primary command name (e.g., "addtag")
	Name string

	// Aliases are alternative names (e.g., "quit" for "exit")
	Aliases []string

	// Description is shown in help
	Description string

	// Usage shows argument syntax and an example
	Usage string

	// Prefixes are the markers the arguments are tokenized with
	Prefixes []parser.Prefix

	// Handler is the function that executes the command
	Handler func(ctx context.Context, env *Env, inv Invocation) (Result, error)
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
}

// NewRegistry creates a new command registry with all built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command to the registry.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd
	}
}

// Get retrieves a command by name or alias. Command words are
// case-insensitive.
func (r *Registry) Get(name string) *Command {
	name = strings.ToLower(name)
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// All returns all registered commands sorted by name.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name < cmds[j].Name
	})
	return cmds
}

// CommandWords returns every name and alias, sorted.
func (r *Registry) CommandWords() []string {
	words := make([]string, 0, len(r.commands)+len(r.aliases))
	for name := range r.commands {
		words = append(words, name)
	}
	for alias := range r.aliases {
		words = append(words, alias)
	}
	sort.Strings(words)
	return words
}

// PrefixesFor returns the markers of the command that raw starts with, or
// nil when the first word is not a command.
func (r *Registry) PrefixesFor(raw string) []parser.Prefix {
	if cmd := r.Get(commandWord(raw)); cmd != nil {
		return cmd.Prefixes
	}
	return nil
}

// commandWord returns the first whitespace-delimited word of raw.
func commandWord(raw string) string {
	fields := strings.FieldsFunc(raw, unicode.IsSpace)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	r.Register(&Command{
		Name:        "add",
		Description: "Adds an issue",
		Usage: "add: Adds an issue.\n" +
			"Parameters: s/STATEMENT d/DESCRIPTION [t/TAG]... [l/LINK [r/REMARK]]\n" +
			"Example: add s/Java NullPointer d/cannot find object t/bug",
		Prefixes: []parser.Prefix{
			parser.PrefixStatement, parser.PrefixDescription, parser.PrefixTag,
			parser.PrefixSolutionLink, parser.PrefixRemark,
		},
		Handler: handleAdd,
	})

	r.Register(&Command{
		Name:        "addtag",
		Description: "Adds tags to an issue",
		Usage: "addtag: Adds tags to the issue at INDEX.\n" +
			"Parameters: INDEX t/TAG [t/TAG]...\n" +
			"Example: addtag 1 t/urgent",
		Prefixes: []parser.Prefix{parser.PrefixTag},
		Handler:  handleAddTag,
	})

	r.Register(&Command{
		Name:        "solution",
		Description: "Adds a solution to an issue",
		Usage: "solution: Adds a solution to the issue at INDEX.\n" +
			"Parameters: INDEX l/LINK [r/REMARK]\n" +
			"Example: solution 1 l/https://stackoverflow.com/ r/accepted answer",
		Prefixes: []parser.Prefix{parser.PrefixSolutionLink, parser.PrefixRemark},
		Handler:  handleSolution,
	})

	r.Register(&Command{
		Name:        "refactortag",
		Description: "Renames a tag on every issue",
		Usage: "refactortag: Renames a tag on every issue that has it.\n" +
			"Parameters: t/OLD nt/NEW\n" +
			"Example: refactortag t/bug nt/defect",
		Prefixes: []parser.Prefix{parser.PrefixTag, parser.PrefixNewTag},
		Handler:  handleRefactorTag,
	})

	r.Register(&Command{
		Name:        "list",
		Description: "Lists issues",
		Usage:       model.SortUsage,
		Handler:     handleList,
	})

	r.Register(&Command{
		Name:        "find",
		Description: "Finds issues containing any keyword",
		Usage: "find: Finds issues whose statement, description or tags contain any keyword.\n" +
			"Parameters: KEYWORD [KEYWORD]...\n" +
			"Example: find java segfault",
		Handler: handleFind,
	})

	r.Register(&Command{
		Name:        "select",
		Description: "Shows an issue in detail",
		Usage:       "select: Shows the issue at INDEX in detail.\nParameters: INDEX\nExample: select 1",
		Handler:     handleSelect,
	})

	r.Register(&Command{
		Name:        "delete",
		Description: "Deletes an issue",
		Usage:       "delete: Deletes the issue at INDEX.\nParameters: INDEX\nExample: delete 1",
		Handler:     handleDelete,
	})

	r.Register(&Command{
		Name:        "export",
		Description: "Exports all issues to a file",
		Usage:       "export: Writes all issues to PATH as JSON, Markdown or HTML, chosen by extension.\nParameters: PATH\nExample: export issues.md",
		Handler:     handleExport,
	})

	r.Register(&Command{
		Name:        "help",
		Description: "Shows available commands",
		Usage:       "help: Shows available commands.\nParameters: [COMMAND]\nExample: help addtag",
		Handler:     handleHelp,
	})

	r.Register(&Command{
		Name:        "exit",
		Aliases:     []string{"quit"},
		Description: "Exits saveit",
		Usage:       "exit: Exits saveit.",
		Handler:     handleExit,
	})
}

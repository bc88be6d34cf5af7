// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the saveit command language.
//
// A command line is a command word followed by arguments. Arguments are a
// free-form preamble (an index, a sort mode, keywords) and marker-introduced
// values such as "s/" for the statement or "t/" for a tag.
//
// # Key Types
//
//   - Registry: All commands, looked up by name or alias
//   - Parser: Splits a line into its command and tokenized arguments
//   - Result: What a handler produced, for the front end to render
//   - Completer: Caret-aware completion backed by the suggestion engine
//
// # Built-in Commands
//
//   - add s/STATEMENT d/DESCRIPTION [t/TAG]... [l/LINK [r/REMARK]]
//   - addtag INDEX t/TAG...
//   - solution INDEX l/LINK [r/REMARK]
//   - refactortag t/OLD nt/NEW
//   - list [freq|chro|tag]
//   - find KEYWORD...
//   - select INDEX
//   - delete INDEX
//   - export PATH
//   - help [COMMAND]
//   - exit
//
// # Usage
//
//	registry := commands.NewRegistry()
//	parser := commands.NewParser(registry, env)
//	result, err := parser.Execute(ctx, "addtag 1 t/urgent")
package commands

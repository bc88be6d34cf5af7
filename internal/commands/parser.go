// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/jeranaias/saveit/internal/parser"
)

// =============================================================================
// INVOCATION
// =============================================================================

// Invocation is a parsed command line.
type Invocation struct {
	// Command is the matched command
	Command *Command

	// Word is the command word as typed
	Word string

	// Raw is the original line
	Raw string

	// Args are the arguments after the command word, tokenized with the
	// command's markers
	Args *parser.ArgumentMultimap
}

// Preamble returns the text between the command word and the first marker.
func (inv Invocation) Preamble() string {
	return inv.Args.GetPreamble()
}

// =============================================================================
// PARSER
// =============================================================================

// Parser turns command lines into invocations and runs them.
type Parser struct {
	registry *Registry
	env      *Env
}

// NewParser creates a parser that executes against env.
func NewParser(registry *Registry, env *Env) *Parser {
	return &Parser{registry: registry, env: env}
}

// Registry returns the registry the parser looks commands up in.
func (p *Parser) Registry() *Registry {
	return p.registry
}

// PrefixesFor returns the markers relevant to line.
func (p *Parser) PrefixesFor(line string) []parser.Prefix {
	return p.registry.PrefixesFor(line)
}

// CommandWords returns every command name and alias.
func (p *Parser) CommandWords() []string {
	return p.registry.CommandWords()
}

// Parse splits line into its command word and arguments.
func (p *Parser) Parse(line string) (Invocation, error) {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	word := commandWord(trimmed)
	if word == "" {
		return Invocation{}, &CommandError{Reason: "no command entered", Usage: "Type help to see all commands."}
	}

	cmd := p.registry.Get(word)
	if cmd == nil {
		return Invocation{}, &CommandError{
			Command: word,
			Err:     ErrUnknownCommand,
			Usage:   "Type help to see all commands.",
		}
	}

	args, err := parser.Tokenize(trimmed[len(word):], cmd.Prefixes...)
	if err != nil {
		return Invocation{}, fmt.Errorf("tokenizing %s arguments: %w", cmd.Name, err)
	}
	return Invocation{Command: cmd, Word: word, Raw: line, Args: args}, nil
}

// Execute parses line and runs its handler. A blank line does nothing.
func (p *Parser) Execute(ctx context.Context, line string) (Result, error) {
	if strings.TrimSpace(line) == "" {
		return Result{}, nil
	}

	inv, err := p.Parse(line)
	if err != nil {
		return Result{}, err
	}

	p.env.logger().Debug("executing command",
		zap.String("command", inv.Command.Name),
		zap.String("preamble", inv.Preamble()),
		zap.Int("markers", len(inv.Args.Prefixes())))

	result, err := inv.Command.Handler(ctx, p.env, inv)
	if err != nil {
		p.env.logger().Debug("command failed", zap.String("command", inv.Command.Name), zap.Error(err))
		return Result{}, err
	}
	return result, nil
}

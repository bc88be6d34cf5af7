// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"sync"

	"go.uber.org/zap"

	"github.com/jeranaias/saveit/internal/suggestion"
	"github.com/jeranaias/saveit/internal/util"
)

// =============================================================================
// COMPLETER
// =============================================================================

// Completer handles completion of command lines at the caret. It reads the
// candidate values from source on every request.
type Completer struct {
	source suggestion.CandidateSource
	logger *zap.Logger

	mu     sync.RWMutex
	engine *suggestion.Engine
}

// NewCompleter creates a completer for the commands in registry.
func NewCompleter(registry *Registry, source suggestion.CandidateSource, cfg suggestion.Config) (*Completer, error) {
	if registry == nil {
		return nil, &util.PreconditionError{Op: "commands.NewCompleter", Arg: "registry"}
	}
	c := &Completer{source: source, logger: cfg.Logger}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	engine, err := suggestion.NewEngine(registry, cfg)
	if err != nil {
		return nil, err
	}
	c.engine = engine
	return c, nil
}

// Reconfigure swaps the engine settings, e.g. after the config file changed.
func (c *Completer) Reconfigure(registry *Registry, cfg suggestion.Config) error {
	if cfg.Logger == nil {
		cfg.Logger = c.logger
	}
	engine, err := suggestion.NewEngine(registry, cfg)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.engine = engine
	c.mu.Unlock()
	return nil
}

// Complete returns the suggestions for input at caret (a character offset).
func (c *Completer) Complete(input string, caret int) (suggestion.Result, error) {
	c.mu.RLock()
	engine := c.engine
	c.mu.RUnlock()
	return engine.Suggest(c.source, input, caret)
}

// WordCompleter adapts Complete to line editors that replace the text between
// a head and a tail: head is everything before the replacement span, tail
// everything after it, and each completion is one insertion.
func (c *Completer) WordCompleter(line string, pos int) (head string, completions []string, tail string) {
	result, err := c.Complete(line, pos)
	if err != nil {
		c.logger.Debug("completion failed", zap.Error(err))
		return line, nil, ""
	}
	if result.Empty() {
		return util.RuneSlice(line, 0, pos), nil, util.RuneSlice(line, pos, util.RuneLen(line))
	}

	completions = make([]string, len(result.Values))
	for i, v := range result.Values {
		completions[i] = v.Insertion
	}
	head = util.RuneSlice(line, 0, result.Start)
	tail = util.RuneSlice(line, result.End, util.RuneLen(line))
	return head, completions, tail
}

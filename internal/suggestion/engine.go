// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggestion

import (
	"fmt"
	"unicode"

	"go.uber.org/zap"

	"github.com/jeranaias/saveit/internal/parser"
	"github.com/jeranaias/saveit/internal/util"
)

// =============================================================================
// ENGINE
// =============================================================================

// Catalog describes the commands the engine completes against.
type Catalog interface {
	// PrefixesFor returns the markers relevant to the command typed in raw.
	PrefixesFor(raw string) []parser.Prefix
	// CommandWords returns every command name and alias.
	CommandWords() []string
}

// Config controls which kinds are offered and how many candidates are kept.
type Config struct {
	Kinds      []Kind      // empty means every kind
	MaxResults int         // 0 means unlimited
	Logger     *zap.Logger // nil means no logging
}

// Engine answers suggestion requests. It holds no per-request state, so one
// Engine serves every keystroke.
type Engine struct {
	catalog    Catalog
	enabled    map[Kind]bool
	maxResults int
	logger     *zap.Logger
}

// NewEngine builds an engine for catalog.
func NewEngine(catalog Catalog, cfg Config) (*Engine, error) {
	if catalog == nil {
		return nil, &util.PreconditionError{Op: "suggestion.NewEngine", Arg: "catalog"}
	}
	kinds := cfg.Kinds
	if len(kinds) == 0 {
		kinds = AllKinds()
	}
	enabled := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		enabled[k] = true
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		catalog:    catalog,
		enabled:    enabled,
		maxResults: cfg.MaxResults,
		logger:     logger,
	}, nil
}

// Suggest returns the completions for the argument under caret in raw.
//
// The line is tokenized with the markers of the command it starts with. The
// nearest anchor before the caret and the anchor after it delimit the
// argument; the Variant registered for that anchor's marker evaluates it.
// When the caret is in the preamble, the command word is completed instead.
// Nothing to suggest is not an error: the Result is empty with
// StatusNoCandidates and a zero-width span at caret.
func (e *Engine) Suggest(source CandidateSource, raw string, caret int) (Result, error) {
	if source == nil {
		return Result{}, &util.PreconditionError{Op: "suggestion.Suggest", Arg: "source"}
	}
	if n := util.RuneLen(raw); caret < 0 || caret > n {
		return Result{}, &util.PreconditionError{
			Op:     "suggestion.Suggest",
			Arg:    "caret",
			Reason: fmt.Sprintf("out of range [0, %d]: %d", n, caret),
		}
	}

	args, err := parser.Tokenize(raw, e.catalog.PrefixesFor(raw)...)
	if err != nil {
		return Result{}, fmt.Errorf("tokenizing input: %w", err)
	}

	variant, ok := e.selectVariant(source, args, raw, caret)
	if !ok {
		e.logger.Debug("no suggestion variant", zap.String("input", raw), zap.Int("caret", caret))
		return emptyResult(caret), nil
	}

	result := variant.Evaluate()
	if e.maxResults > 0 && len(result.Values) > e.maxResults {
		result.Values = result.Values[:e.maxResults]
	}
	e.logger.Debug("suggestion evaluated",
		zap.String("kind", variant.Kind.String()),
		zap.String("partial", variant.Partial),
		zap.Int("candidates", len(result.Values)),
		zap.Int("start", result.Start),
		zap.Int("end", result.End))
	return result, nil
}

// selectVariant resolves the caret to its enclosing argument and picks the
// Variant for it.
func (e *Engine) selectVariant(source CandidateSource, args *parser.ArgumentMultimap,
	raw string, caret int) (Variant, bool) {
	preceding, found := args.FindPrecedingPrefixKey(caret)
	if !found {
		return e.commandWordVariant(source, args, raw, caret)
	}

	kind, ok := kindForPrefix(preceding.Prefix)
	if !ok || !e.enabled[kind] {
		return Variant{}, false
	}

	succeeding := args.FindSucceedingPrefixKey(preceding)
	v := newVariant(kind, source, nil, "", preceding, succeeding)
	start, end := v.Span()
	if caret > end {
		// The caret sits inside the next marker's text.
		return Variant{}, false
	}
	v.Partial = util.RuneSlice(raw, start, caret)
	return v, true
}

// commandWordVariant completes the first word of the preamble.
func (e *Engine) commandWordVariant(source CandidateSource, args *parser.ArgumentMultimap,
	raw string, caret int) (Variant, bool) {
	if !e.enabled[KindCommandWord] {
		return Variant{}, false
	}

	runes := []rune(raw)
	start := 0
	for start < len(runes) && unicode.IsSpace(runes[start]) {
		start++
	}
	end := start
	for end < len(runes) && !unicode.IsSpace(runes[end]) {
		end++
	}
	if caret < start || caret > end {
		return Variant{}, false
	}
	// A line that opens with a marker has no command word to complete.
	if anchors := args.Anchors(); len(anchors) > 0 &&
		anchors[0].Prefix != parser.EndMarker && anchors[0].Position == start {
		return Variant{}, false
	}

	preceding := parser.Anchor{Prefix: parser.StartMarker, Position: start}
	succeeding := parser.Anchor{Prefix: parser.EndMarker, Position: end}
	v := newVariant(KindCommandWord, source, e.catalog.CommandWords,
		string(runes[start:caret]), preceding, succeeding)
	return v, true
}

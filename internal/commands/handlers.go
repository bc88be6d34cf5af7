// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jeranaias/saveit/internal/export"
	"github.com/jeranaias/saveit/internal/model"
	"github.com/jeranaias/saveit/internal/parser"
)

// =============================================================================
// HANDLER ENVIRONMENT
// =============================================================================

// Store is the issue persistence the handlers operate on.
type Store interface {
	Add(ctx context.Context, issue model.Issue) (model.Issue, error)
	List(ctx context.Context, sortType model.SortType) ([]model.Issue, error)
	Find(ctx context.Context, keywords []string) ([]model.Issue, error)
	Get(ctx context.Context, index int) (model.Issue, error)
	Delete(ctx context.Context, index int) (model.Issue, error)
	AddTags(ctx context.Context, index int, tags []string) (model.Issue, error)
	AddSolution(ctx context.Context, index int, solution model.Solution) (model.Issue, error)
	RefactorTag(ctx context.Context, oldTag, newTag string) (int, error)
	IncrementFrequency(ctx context.Context, index int) (model.Issue, error)
	All(ctx context.Context) ([]model.Issue, error)
}

// Env provides access to application state for command handlers.
type Env struct {
	Store    Store
	Registry *Registry

	// DefaultSort is used by list when no sort is given
	DefaultSort model.SortType

	Logger *zap.Logger
}

func (e *Env) logger() *zap.Logger {
	if e == nil || e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// =============================================================================
// RESULT
// =============================================================================

// Result is what a handler produced, for the front end to render.
type Result struct {
	// Message is the feedback line
	Message string

	// Issues is set by list and find
	Issues []model.Issue

	// Detail is set by select
	Detail *model.Issue

	// Help is set by help
	Help []*Command

	// Exit asks the front end to stop
	Exit bool
}

// =============================================================================
// ARGUMENT HELPERS
// =============================================================================

// parseIndex parses a 1-based issue index from the preamble.
func parseIndex(cmd *Command, inv Invocation) (int, error) {
	preamble := inv.Preamble()
	if preamble == "" {
		return 0, usageError(cmd, "missing index")
	}
	index, err := strconv.Atoi(preamble)
	if err != nil || index < 1 {
		return 0, usageError(cmd, fmt.Sprintf("invalid index %q", preamble))
	}
	return index, nil
}

// requireValue returns the last value of prefix, which must be non-empty.
func requireValue(cmd *Command, inv Invocation, prefix parser.Prefix) (string, error) {
	value, ok := inv.Args.GetValue(prefix)
	if !ok || value == "" {
		return "", usageError(cmd, fmt.Sprintf("missing %s", prefix))
	}
	return value, nil
}

// requireNoPreamble rejects stray text before the first marker.
func requireNoPreamble(cmd *Command, inv Invocation) error {
	if p := inv.Preamble(); p != "" {
		return usageError(cmd, fmt.Sprintf("unexpected text %q", p))
	}
	return nil
}

// =============================================================================
// HANDLERS
// =============================================================================

func handleAdd(ctx context.Context, env *Env, inv Invocation) (Result, error) {
	cmd := inv.Command
	if err := requireNoPreamble(cmd, inv); err != nil {
		return Result{}, err
	}
	statement, err := requireValue(cmd, inv, parser.PrefixStatement)
	if err != nil {
		return Result{}, err
	}
	description, err := requireValue(cmd, inv, parser.PrefixDescription)
	if err != nil {
		return Result{}, err
	}

	issue := model.Issue{
		Statement:   statement,
		Description: description,
		Tags:        inv.Args.GetAllValues(parser.PrefixTag),
	}
	if link, ok := inv.Args.GetValue(parser.PrefixSolutionLink); ok {
		remark, _ := inv.Args.GetValue(parser.PrefixRemark)
		issue.Solutions = []model.Solution{{Link: link, Remark: remark}}
	}

	added, err := env.Store.Add(ctx, issue)
	if err != nil {
		return Result{}, failure(cmd, err)
	}
	return Result{Message: "New issue added: " + added.String()}, nil
}

func handleAddTag(ctx context.Context, env *Env, inv Invocation) (Result, error) {
	cmd := inv.Command
	index, err := parseIndex(cmd, inv)
	if err != nil {
		return Result{}, err
	}
	tags := inv.Args.GetAllValues(parser.PrefixTag)
	if len(tags) == 0 {
		return Result{}, usageError(cmd, "at least one t/ is required")
	}

	issue, err := env.Store.AddTags(ctx, index, tags)
	if err != nil {
		return Result{}, failure(cmd, err)
	}
	return Result{Message: "Tags added to issue: " + issue.String()}, nil
}

func handleSolution(ctx context.Context, env *Env, inv Invocation) (Result, error) {
	cmd := inv.Command
	index, err := parseIndex(cmd, inv)
	if err != nil {
		return Result{}, err
	}
	link, err := requireValue(cmd, inv, parser.PrefixSolutionLink)
	if err != nil {
		return Result{}, err
	}
	remark, _ := inv.Args.GetValue(parser.PrefixRemark)

	issue, err := env.Store.AddSolution(ctx, index, model.Solution{Link: link, Remark: remark})
	if err != nil {
		return Result{}, failure(cmd, err)
	}
	return Result{Message: fmt.Sprintf("New solution added to issue: %s (%d solutions)",
		issue.Statement, len(issue.Solutions))}, nil
}

func handleRefactorTag(ctx context.Context, env *Env, inv Invocation) (Result, error) {
	cmd := inv.Command
	if err := requireNoPreamble(cmd, inv); err != nil {
		return Result{}, err
	}
	oldTag, err := requireValue(cmd, inv, parser.PrefixTag)
	if err != nil {
		return Result{}, err
	}
	newTag, err := requireValue(cmd, inv, parser.PrefixNewTag)
	if err != nil {
		return Result{}, err
	}

	n, err := env.Store.RefactorTag(ctx, oldTag, newTag)
	if err != nil {
		return Result{}, failure(cmd, err)
	}
	return Result{Message: fmt.Sprintf("Tag [%s] renamed to [%s] in %d issues", oldTag, newTag, n)}, nil
}

func handleList(ctx context.Context, env *Env, inv Invocation) (Result, error) {
	sortType := env.DefaultSort
	if selector := inv.Preamble(); selector != "" {
		var err error
		if sortType, err = model.ParseSortType(selector); err != nil {
			return Result{}, &CommandError{Command: inv.Command.Name, Err: err}
		}
	}

	issues, err := env.Store.List(ctx, sortType)
	if err != nil {
		return Result{}, failure(inv.Command, err)
	}
	return Result{
		Message: fmt.Sprintf("%d issues listed, sorted by %s", len(issues), sortType),
		Issues:  issues,
	}, nil
}

func handleFind(ctx context.Context, env *Env, inv Invocation) (Result, error) {
	keywords := strings.Fields(inv.Preamble())
	if len(keywords) == 0 {
		return Result{}, usageError(inv.Command, "missing keyword")
	}

	issues, err := env.Store.Find(ctx, keywords)
	if err != nil {
		return Result{}, failure(inv.Command, err)
	}
	return Result{Message: fmt.Sprintf("%d issues listed!", len(issues)), Issues: issues}, nil
}

func handleSelect(ctx context.Context, env *Env, inv Invocation) (Result, error) {
	index, err := parseIndex(inv.Command, inv)
	if err != nil {
		return Result{}, err
	}

	issue, err := env.Store.IncrementFrequency(ctx, index)
	if err != nil {
		return Result{}, failure(inv.Command, err)
	}
	return Result{Message: fmt.Sprintf("Selected issue: %d", index), Detail: &issue}, nil
}

func handleDelete(ctx context.Context, env *Env, inv Invocation) (Result, error) {
	index, err := parseIndex(inv.Command, inv)
	if err != nil {
		return Result{}, err
	}

	issue, err := env.Store.Delete(ctx, index)
	if err != nil {
		return Result{}, failure(inv.Command, err)
	}
	return Result{Message: "Deleted issue: " + issue.String()}, nil
}

func handleExport(ctx context.Context, env *Env, inv Invocation) (Result, error) {
	path := inv.Preamble()
	if path == "" {
		return Result{}, usageError(inv.Command, "missing path")
	}

	exporter, err := export.ForPath(path)
	if err != nil {
		return Result{}, usageError(inv.Command, err.Error())
	}
	issues, err := env.Store.All(ctx)
	if err != nil {
		return Result{}, failure(inv.Command, err)
	}
	if err := export.WriteFile(path, exporter, export.NewDocument(issues)); err != nil {
		return Result{}, failure(inv.Command, err)
	}
	return Result{Message: fmt.Sprintf("Exported %d issues to %s", len(issues), path)}, nil
}

func handleHelp(ctx context.Context, env *Env, inv Invocation) (Result, error) {
	if topic := inv.Preamble(); topic != "" {
		cmd := env.Registry.Get(topic)
		if cmd == nil {
			return Result{}, &CommandError{Command: topic, Err: ErrUnknownCommand}
		}
		return Result{Message: cmd.Usage, Help: []*Command{cmd}}, nil
	}
	return Result{Message: "Available commands:", Help: env.Registry.All()}, nil
}

func handleExit(ctx context.Context, env *Env, inv Invocation) (Result, error) {
	return Result{Message: "Exiting saveit as requested ...", Exit: true}, nil
}

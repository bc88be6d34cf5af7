// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/saveit/internal/export"
	"github.com/jeranaias/saveit/internal/model"
	"github.com/jeranaias/saveit/internal/parser"
	"github.com/jeranaias/saveit/internal/storage"
	"github.com/jeranaias/saveit/internal/util"
)

func newTestParser(t *testing.T) (*Parser, *storage.IssueStore) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "saveit.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	registry := NewRegistry()
	env := &Env{Store: store, Registry: registry, DefaultSort: model.SortChronological}
	return NewParser(registry, env), store
}

func run(t *testing.T, p *Parser, line string) Result {
	t.Helper()
	result, err := p.Execute(context.Background(), line)
	require.NoError(t, err, line)
	return result
}

// =============================================================================
// REGISTRY TESTS
// =============================================================================

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"add", "addtag", "solution", "refactortag", "list",
		"find", "select", "delete", "export", "help", "exit"} {
		cmd := r.Get(name)
		require.NotNil(t, cmd, name)
		assert.NotEmpty(t, cmd.Usage, name)
		assert.NotNil(t, cmd.Handler, name)
	}
	assert.Equal(t, r.Get("exit"), r.Get("quit"))
	assert.Equal(t, r.Get("list"), r.Get("LIST"))
	assert.Nil(t, r.Get("frobnicate"))

	assert.Contains(t, r.CommandWords(), "quit")
	assert.IsIncreasing(t, r.CommandWords())
}

func TestRegistry_PrefixesFor(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		line string
		want []parser.Prefix
	}{
		{"addtag 1 t/urg", []parser.Prefix{parser.PrefixTag}},
		{"  refactortag t/a", []parser.Prefix{parser.PrefixTag, parser.PrefixNewTag}},
		{"list freq", nil},
		{"nonsense t/x", nil},
		{"", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.PrefixesFor(tt.line), tt.line)
	}
}

// =============================================================================
// PARSER TESTS
// =============================================================================

func TestParser_Parse(t *testing.T) {
	p, _ := newTestParser(t)

	inv, err := p.Parse("  addtag 2 t/bug t/urgent")
	require.NoError(t, err)
	assert.Equal(t, "addtag", inv.Command.Name)
	assert.Equal(t, "2", inv.Preamble())
	assert.Equal(t, []string{"bug", "urgent"}, inv.Args.GetAllValues(parser.PrefixTag))

	// Markers the command does not take stay in the preamble.
	inv, err = p.Parse("find s/java")
	require.NoError(t, err)
	assert.Equal(t, "s/java", inv.Preamble())

	_, err = p.Parse("frobnicate 1")
	assert.ErrorIs(t, err, ErrUnknownCommand)

	_, err = p.Parse("   ")
	var cmdErr *CommandError
	assert.True(t, errors.As(err, &cmdErr))
}

func TestParser_ExecuteBlank(t *testing.T) {
	p, _ := newTestParser(t)
	result := run(t, p, "   ")
	assert.Equal(t, Result{}, result)
}

// =============================================================================
// HANDLER TESTS
// =============================================================================

func TestHandlers_IssueLifecycle(t *testing.T) {
	p, store := newTestParser(t)

	result := run(t, p, "add s/Java NullPointer d/cannot find object t/bug l/https://stackoverflow.com/ r/accepted")
	assert.Contains(t, result.Message, "New issue added: Java NullPointer")
	run(t, p, "add s/StackOverflow d/Cannot run")

	result = run(t, p, "list chro")
	require.Len(t, result.Issues, 2)
	assert.Equal(t, "StackOverflow", result.Issues[0].Statement)

	run(t, p, "addtag 2 t/urgent t/java")
	run(t, p, "solution 1 l/https://www.wikipedia.org/")

	issue, err := store.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"bug", "java", "urgent"}, issue.Tags)
	assert.Equal(t, []model.Solution{{Link: "https://stackoverflow.com/", Remark: "accepted"}}, issue.Solutions)

	result = run(t, p, "select 2")
	require.NotNil(t, result.Detail)
	assert.Equal(t, 1, result.Detail.Frequency)

	result = run(t, p, "list freq")
	assert.Equal(t, "Java NullPointer", result.Issues[0].Statement)

	result = run(t, p, "refactortag t/bug nt/defect")
	assert.Contains(t, result.Message, "in 1 issues")
	assert.Equal(t, []string{"defect", "java", "urgent"}, store.CurrentTagSet())

	result = run(t, p, "find overflow")
	require.Len(t, result.Issues, 1)
	result = run(t, p, "delete 1")
	assert.Contains(t, result.Message, "StackOverflow")

	result = run(t, p, "list")
	assert.Len(t, result.Issues, 1)
}

func TestHandlers_Errors(t *testing.T) {
	p, _ := newTestParser(t)
	run(t, p, "add s/a d/b")

	tests := []struct {
		line    string
		wantErr error
		want    string
	}{
		{line: "add d/missing statement", want: "missing s/"},
		{line: "add junk s/a d/b", want: "unexpected text"},
		{line: "add s/a d/b", wantErr: storage.ErrDuplicateIssue},
		{line: "add s/x d/y t/not-ok", wantErr: model.ErrInvalidTag},
		{line: "addtag t/x", want: "missing index"},
		{line: "addtag one t/x", want: "invalid index"},
		{line: "addtag 1", want: "at least one t/"},
		{line: "addtag 9 t/x", wantErr: storage.ErrIndexOutOfRange},
		{line: "solution 1 r/no link", want: "missing l/"},
		{line: "solution 1 l/nope", wantErr: model.ErrInvalidLink},
		{line: "refactortag t/none nt/x", wantErr: storage.ErrTagNotFound},
		{line: "list alphabetical", wantErr: util.ErrConfiguration},
		{line: "find", want: "missing keyword"},
		{line: "select 0", want: "invalid index"},
		{line: "export", want: "missing path"},
		{line: "help nothing", wantErr: ErrUnknownCommand},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := p.Execute(context.Background(), tt.line)
			require.Error(t, err)

			var cmdErr *CommandError
			require.True(t, errors.As(err, &cmdErr), "want *CommandError, got %T", err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.want != "" {
				assert.Contains(t, err.Error(), tt.want)
				assert.Contains(t, err.Error(), cmdErr.Usage)
			}
		})
	}
}

func TestHandlers_ListUsageOnBadSort(t *testing.T) {
	p, _ := newTestParser(t)
	_, err := p.Execute(context.Background(), "list alphabetical")
	require.Error(t, err)
	assert.Contains(t, err.Error(), model.SortUsage)
}

func TestHandlers_HelpExportExit(t *testing.T) {
	p, _ := newTestParser(t)
	run(t, p, "add s/a d/b")

	result := run(t, p, "help")
	assert.Len(t, result.Help, 11)

	result = run(t, p, "help addtag")
	require.Len(t, result.Help, 1)
	assert.Equal(t, "addtag", result.Help[0].Name)

	path := filepath.Join(t.TempDir(), "issues.json")
	result = run(t, p, "export "+path)
	assert.Contains(t, result.Message, "Exported 1 issues")
	_, err := os.Stat(path)
	assert.NoError(t, err)

	md := filepath.Join(t.TempDir(), "issues.md")
	run(t, p, "export "+md)
	data, err := os.ReadFile(md)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## 1. a")

	_, err = p.Execute(context.Background(), "export "+filepath.Join(t.TempDir(), "issues.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), export.FormatUsage)

	result = run(t, p, "quit")
	assert.True(t, result.Exit)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/saveit/internal/suggestion"
)

type fixedSource struct {
	tags       []string
	statements []string
}

func (f fixedSource) CurrentTagSet() []string            { return f.tags }
func (f fixedSource) CurrentIssueStatementSet() []string { return f.statements }

func newTestCompleter(t *testing.T, cfg suggestion.Config) *Completer {
	t.Helper()
	c, err := NewCompleter(NewRegistry(), fixedSource{
		tags:       []string{"urgent", "bug", "Urgency"},
		statements: []string{"Java NullPointer", "StackOverflow"},
	}, cfg)
	require.NoError(t, err)
	return c
}

func TestCompleter_Complete(t *testing.T) {
	c := newTestCompleter(t, suggestion.Config{})

	result, err := c.Complete("addtag 1 t/urg", 14)
	require.NoError(t, err)
	assert.Equal(t, []string{"Urgency", "urgent"}, result.Labels())
	assert.Equal(t, 11, result.Start)
	assert.Equal(t, 14, result.End)

	// The list command takes no markers, so "t/" is plain preamble there.
	result, err = c.Complete("list t/u", 8)
	require.NoError(t, err)
	assert.True(t, result.Empty())

	result, err = c.Complete("ref", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"refactortag"}, result.Labels())
}

func TestCompleter_WordCompleter(t *testing.T) {
	c := newTestCompleter(t, suggestion.Config{})

	tests := []struct {
		name      string
		line      string
		pos       int
		wantHead  string
		wantComps []string
		wantTail  string
	}{
		{
			name:      "tag at end",
			line:      "addtag 1 t/urg",
			pos:       14,
			wantHead:  "addtag 1 t/",
			wantComps: []string{"Urgency", "urgent"},
			wantTail:  "",
		},
		{
			name:      "statement before another marker",
			line:      "add s/Ja d/x",
			pos:       8,
			wantHead:  "add s/",
			wantComps: []string{"Java NullPointer"},
			wantTail:  " d/x",
		},
		{
			name:      "command word",
			line:      "sel 1",
			pos:       2,
			wantHead:  "",
			wantComps: []string{"select "},
			wantTail:  " 1",
		},
		{
			name:      "nothing to complete",
			line:      "add s/x d/y",
			pos:       11,
			wantHead:  "add s/x d/y",
			wantComps: nil,
			wantTail:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			head, comps, tail := c.WordCompleter(tt.line, tt.pos)
			assert.Equal(t, tt.wantHead, head)
			assert.Equal(t, tt.wantComps, comps)
			assert.Equal(t, tt.wantTail, tail)
		})
	}
}

func TestCompleter_Reconfigure(t *testing.T) {
	c := newTestCompleter(t, suggestion.Config{})
	require.NoError(t, c.Reconfigure(NewRegistry(), suggestion.Config{Kinds: []suggestion.Kind{suggestion.KindIssueStatement}}))

	result, err := c.Complete("addtag 1 t/", 11)
	require.NoError(t, err)
	assert.True(t, result.Empty())

	_, err = NewCompleter(nil, fixedSource{}, suggestion.Config{})
	assert.Error(t, err)
}

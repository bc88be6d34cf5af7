// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/saveit/internal/util"
)

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestIssue_Validate(t *testing.T) {
	valid := Issue{
		Statement:   "NullPointer",
		Description: "crash on start",
		Tags:        []string{"bug", "v2"},
		Solutions:   []Solution{{Link: "https://stackoverflow.com/q/1"}},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Issue)
		want   error
	}{
		{"blank statement", func(i *Issue) { i.Statement = "  " }, ErrEmptyStatement},
		{"blank description", func(i *Issue) { i.Description = "" }, ErrEmptyDescription},
		{"tag with space", func(i *Issue) { i.Tags = []string{"two words"} }, ErrInvalidTag},
		{"empty tag", func(i *Issue) { i.Tags = []string{""} }, ErrInvalidTag},
		{"relative link", func(i *Issue) { i.Solutions = []Solution{{Link: "stackoverflow"}} }, ErrInvalidLink},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue := valid
			tt.mutate(&issue)
			assert.True(t, errors.Is(issue.Validate(), tt.want))
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"Bug", "bug", "urgent"}, NormalizeTags([]string{"urgent", "bug", "Bug", "bug"}))
	assert.Empty(t, NormalizeTags(nil))
}

func TestIssue_IsSameIssue(t *testing.T) {
	a := &Issue{Statement: "NullPointer", Description: "crash"}
	b := &Issue{Statement: "nullpointer ", Description: "crash", Tags: []string{"x"}}
	c := &Issue{Statement: "NullPointer", Description: "other"}

	assert.True(t, a.IsSameIssue(b))
	assert.False(t, a.IsSameIssue(c))
	assert.False(t, a.IsSameIssue(nil))
}

func TestIssue_Markdown(t *testing.T) {
	issue := Issue{
		Statement:   "NullPointer",
		Description: "crash",
		Tags:        []string{"bug"},
		Solutions:   []Solution{{Link: "https://a.io", Remark: "works"}},
	}
	md := issue.Markdown()
	assert.Contains(t, md, "# NullPointer")
	assert.Contains(t, md, "`bug`")
	assert.Contains(t, md, "1. <https://a.io> - works")

	issue.Solutions = nil
	assert.Contains(t, issue.Markdown(), "No solutions yet")
}

func TestSampleIssuesAreValid(t *testing.T) {
	for _, issue := range SampleIssues() {
		assert.NoError(t, issue.Validate(), issue.Statement)
	}
}

// =============================================================================
// SORT TESTS
// =============================================================================

func TestParseSortType(t *testing.T) {
	for selector, want := range map[string]SortType{
		"freq": SortFrequency, "chro": SortChronological, "tag": SortTag, " FREQ ": SortFrequency,
	} {
		got, err := ParseSortType(selector)
		require.NoError(t, err, selector)
		assert.Equal(t, want, got)
	}

	_, err := ParseSortType("size")
	require.Error(t, err)
	var cfgErr *util.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "size", cfgErr.Selector)
	assert.Equal(t, SortUsage, cfgErr.Usage)

	for _, s := range []SortType{SortFrequency, SortChronological, SortTag} {
		parsed, err := ParseSortType(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
}

func TestSortIssues(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	issues := func() []Issue {
		return []Issue{
			{Statement: "alpha", Frequency: 1, Tags: []string{"zeta"}, UpdatedAt: base},
			{Statement: "beta", Frequency: 5, UpdatedAt: base.Add(2 * time.Hour)},
			{Statement: "gamma", Frequency: 1, Tags: []string{"Bug"}, UpdatedAt: base.Add(time.Hour)},
		}
	}
	statements := func(list []Issue) []string {
		out := make([]string, len(list))
		for i := range list {
			out[i] = list[i].Statement
		}
		return out
	}

	tests := []struct {
		sort SortType
		want []string
	}{
		{SortFrequency, []string{"beta", "alpha", "gamma"}},
		{SortChronological, []string{"beta", "gamma", "alpha"}},
		{SortTag, []string{"gamma", "alpha", "beta"}},
	}
	for _, tt := range tests {
		t.Run(tt.sort.String(), func(t *testing.T) {
			list := issues()
			SortIssues(list, tt.sort)
			assert.Equal(t, tt.want, statements(list))
		})
	}
}

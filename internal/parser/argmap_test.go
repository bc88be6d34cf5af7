// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgumentMultimap_PutAndGet(t *testing.T) {
	m := NewArgumentMultimap()

	_, ok := m.GetValue(PrefixTag)
	assert.False(t, ok)
	assert.NotNil(t, m.GetAllValues(PrefixTag))
	assert.Empty(t, m.GetAllValues(PrefixTag))
	assert.Equal(t, "", m.GetPreamble())

	m.Put(PrefixTag, "bug")
	m.Put(PrefixTag, "urgent")
	m.Put(PrefixTag, "bug")

	value, ok := m.GetValue(PrefixTag)
	require.True(t, ok)
	assert.Equal(t, "bug", value)
	assert.Equal(t, []string{"bug", "urgent", "bug"}, m.GetAllValues(PrefixTag))

	// Put values carry no position and are not anchors.
	assert.Empty(t, m.Anchors())
}

func TestArgumentMultimap_GetAllValuesIsCopy(t *testing.T) {
	m := NewArgumentMultimap()
	m.Put(PrefixTag, "a")

	values := m.GetAllValues(PrefixTag)
	values[0] = "mutated"

	assert.Equal(t, []string{"a"}, m.GetAllValues(PrefixTag))
}

func TestArgumentMultimap_LastValueMatchesSequence(t *testing.T) {
	args, err := Tokenize("add s/one t/a s/two t/b t/c d/x", AllPrefixes()...)
	require.NoError(t, err)

	for _, p := range args.Prefixes() {
		all := args.GetAllValues(p)
		require.NotEmpty(t, all)
		last, ok := args.GetValue(p)
		require.True(t, ok)
		assert.Equal(t, all[len(all)-1], last, "prefix %s", p)
	}
	assert.True(t, args.ArePrefixesPresent(PrefixStatement, PrefixTag))
	assert.False(t, args.ArePrefixesPresent(PrefixStatement, PrefixRemark))
}

func TestArgumentMultimap_Occurrences(t *testing.T) {
	args, err := Tokenize("t/a t/b", PrefixTag)
	require.NoError(t, err)

	assert.Equal(t, []Occurrence{
		{Anchor: Anchor{PrefixTag, 0}, Value: "a"},
		{Anchor: Anchor{PrefixTag, 4}, Value: "b"},
	}, args.Occurrences(PrefixTag))
}

func TestFindPrecedingPrefixKey(t *testing.T) {
	args, err := Tokenize("add s/Title d/Desc", AllPrefixes()...)
	require.NoError(t, err)

	tests := []struct {
		name   string
		caret  int
		want   Anchor
		wantOK bool
	}{
		{"start of input", 0, Anchor{}, false},
		{"inside preamble", 3, Anchor{}, false},
		{"inside marker text", 5, Anchor{}, false},
		{"right after marker", 6, Anchor{PrefixStatement, 4}, true},
		{"inside value", 9, Anchor{PrefixStatement, 4}, true},
		{"before next marker finishes", 13, Anchor{PrefixStatement, 4}, true},
		{"after second marker", 14, Anchor{PrefixDescription, 12}, true},
		{"end of input", 18, Anchor{PrefixDescription, 12}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := args.FindPrecedingPrefixKey(tt.caret)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFindPrecedingPrefixKey_ZeroCaretNeverFound(t *testing.T) {
	for _, input := range []string{"", "t/a", "add s/x", "   t/x", "plain text"} {
		args, err := Tokenize(input, AllPrefixes()...)
		require.NoError(t, err)
		_, ok := args.FindPrecedingPrefixKey(0)
		assert.False(t, ok, "input %q", input)
	}
}

func TestFindPrecedingPrefixKey_NearestRepeatedOccurrence(t *testing.T) {
	args, err := Tokenize("t/a t/b", PrefixTag)
	require.NoError(t, err)

	got, ok := args.FindPrecedingPrefixKey(3)
	require.True(t, ok)
	assert.Equal(t, Anchor{PrefixTag, 0}, got)

	got, ok = args.FindPrecedingPrefixKey(7)
	require.True(t, ok)
	assert.Equal(t, Anchor{PrefixTag, 4}, got)
}

func TestFindSucceedingPrefixKey(t *testing.T) {
	args, err := Tokenize("add s/Title d/Desc", AllPrefixes()...)
	require.NoError(t, err)

	statement, ok := args.FindPrecedingPrefixKey(6)
	require.True(t, ok)
	assert.Equal(t, Anchor{PrefixStatement, 4}, statement)

	description := args.FindSucceedingPrefixKey(statement)
	assert.Equal(t, Anchor{PrefixDescription, 12}, description)

	end := args.FindSucceedingPrefixKey(description)
	assert.Equal(t, Anchor{EndMarker, 18}, end)

	// The last anchor has no successor.
	assert.Equal(t, end, args.FindSucceedingPrefixKey(end))
}

func TestFindSucceedingPrefixKey_FromStart(t *testing.T) {
	args, err := Tokenize("t/a", PrefixTag)
	require.NoError(t, err)

	start := Anchor{StartMarker, 0}
	assert.Equal(t, Anchor{PrefixTag, 0}, args.FindSucceedingPrefixKey(start))
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, NewPrefix("t/"), PrefixTag)
	assert.NotEqual(t, PrefixTag, PrefixNewTag)
	assert.NotEqual(t, StartMarker, EndMarker)
	assert.NotEqual(t, NewPrefix(""), StartMarker)
	assert.True(t, StartMarker.IsSentinel())
	assert.False(t, PrefixTag.IsSentinel())
	assert.Equal(t, 3, PrefixNewTag.Len())
	assert.Equal(t, 0, EndMarker.Len())
	assert.Equal(t, "t/@9", Anchor{PrefixTag, 9}.String())
	assert.Equal(t, 11, Anchor{PrefixTag, 9}.End())
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package parser

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/saveit/internal/util"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		prefixes []Prefix
		preamble string
		want     map[Prefix][]string
		anchors  []Anchor
	}{
		{
			name:     "no markers is all preamble",
			input:    "  list freq  ",
			prefixes: AllPrefixes(),
			preamble: "list freq",
			want:     map[Prefix][]string{},
			anchors:  []Anchor{{EndMarker, 13}},
		},
		{
			name:     "single tag",
			input:    "addtag 1 t/urg",
			prefixes: []Prefix{PrefixTag},
			preamble: "addtag 1",
			want:     map[Prefix][]string{PrefixTag: {"urg"}},
			anchors:  []Anchor{{PrefixTag, 9}, {EndMarker, 14}},
		},
		{
			name:     "statement and description",
			input:    "add s/Title d/Desc",
			prefixes: []Prefix{PrefixStatement, PrefixDescription},
			preamble: "add",
			want: map[Prefix][]string{
				PrefixStatement:   {"Title"},
				PrefixDescription: {"Desc"},
			},
			anchors: []Anchor{{PrefixStatement, 4}, {PrefixDescription, 12}, {EndMarker, 18}},
		},
		{
			name:     "repeated marker keeps order",
			input:    "t/a t/b",
			prefixes: []Prefix{PrefixTag},
			preamble: "",
			want:     map[Prefix][]string{PrefixTag: {"a", "b"}},
			anchors:  []Anchor{{PrefixTag, 0}, {PrefixTag, 4}, {EndMarker, 7}},
		},
		{
			name:     "marker inside url is plain text",
			input:    "solution 1 l/http://x.io/t/1",
			prefixes: []Prefix{PrefixSolutionLink, PrefixTag},
			preamble: "solution 1",
			want:     map[Prefix][]string{PrefixSolutionLink: {"http://x.io/t/1"}},
			anchors:  []Anchor{{PrefixSolutionLink, 11}, {EndMarker, 28}},
		},
		{
			name:     "unexpected marker is plain text",
			input:    "add s/Title d/Desc",
			prefixes: []Prefix{PrefixStatement},
			preamble: "add",
			want:     map[Prefix][]string{PrefixStatement: {"Title d/Desc"}},
			anchors:  []Anchor{{PrefixStatement, 4}, {EndMarker, 18}},
		},
		{
			name:     "longest marker wins",
			input:    "refactortag t/old nt/new",
			prefixes: []Prefix{PrefixTag, PrefixNewTag},
			preamble: "refactortag",
			want: map[Prefix][]string{
				PrefixTag:    {"old"},
				PrefixNewTag: {"new"},
			},
			anchors: []Anchor{{PrefixTag, 12}, {PrefixNewTag, 18}, {EndMarker, 24}},
		},
		{
			name:     "empty values are recorded",
			input:    "addtag 1 t/ t/b t/",
			prefixes: []Prefix{PrefixTag},
			preamble: "addtag 1",
			want:     map[Prefix][]string{PrefixTag: {"", "b", ""}},
			anchors:  []Anchor{{PrefixTag, 9}, {PrefixTag, 12}, {PrefixTag, 16}, {EndMarker, 18}},
		},
		{
			name:     "tab counts as whitespace",
			input:    "add\tt/x",
			prefixes: []Prefix{PrefixTag},
			preamble: "add",
			want:     map[Prefix][]string{PrefixTag: {"x"}},
			anchors:  []Anchor{{PrefixTag, 4}, {EndMarker, 7}},
		},
		{
			name:     "positions are character offsets",
			input:    "add s/ünï t/x",
			prefixes: []Prefix{PrefixStatement, PrefixTag},
			preamble: "add",
			want: map[Prefix][]string{
				PrefixStatement: {"ünï"},
				PrefixTag:       {"x"},
			},
			anchors: []Anchor{{PrefixStatement, 4}, {PrefixTag, 10}, {EndMarker, 13}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := Tokenize(tt.input, tt.prefixes...)
			require.NoError(t, err)

			assert.Equal(t, tt.preamble, args.GetPreamble())
			for prefix, values := range tt.want {
				if diff := cmp.Diff(values, args.GetAllValues(prefix)); diff != "" {
					t.Errorf("GetAllValues(%s) mismatch (-want +got):\n%s", prefix, diff)
				}
			}
			assert.Len(t, args.Prefixes(), len(tt.want))
			assert.Equal(t, tt.anchors, args.Anchors())
		})
	}
}

func TestTokenize_EmptyInput(t *testing.T) {
	args, err := Tokenize("", AllPrefixes()...)
	require.NoError(t, err)

	assert.Equal(t, "", args.GetPreamble())
	for _, p := range AllPrefixes() {
		assert.Empty(t, args.GetAllValues(p))
		_, ok := args.GetValue(p)
		assert.False(t, ok)
	}
	_, ok := args.FindPrecedingPrefixKey(0)
	assert.False(t, ok)
	assert.Equal(t, []Anchor{{EndMarker, 0}}, args.Anchors())

	// Only the preamble entry exists.
	assert.Empty(t, args.Prefixes())
	assert.Equal(t, []string{""}, args.GetAllValues(StartMarker))
}

func TestTokenize_RejectsInvalidMarkers(t *testing.T) {
	for _, p := range []Prefix{NewPrefix(""), StartMarker, EndMarker} {
		_, err := Tokenize("add t/x", PrefixTag, p)
		require.Error(t, err, "marker %s", p)
		assert.True(t, errors.Is(err, util.ErrPrecondition))
	}
}

func TestTokenize_RoundTrip(t *testing.T) {
	inputs := []string{
		"add s/Title d/Desc t/bug t/urgent",
		"t/a t/b",
		"addtag 1 t/ t/b",
		"refactortag   t/old    nt/new",
		"find null pointer",
		"",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, err := Tokenize(input, AllPrefixes()...)
			require.NoError(t, err)

			second, err := Tokenize(first.Serialize(), first.Prefixes()...)
			require.NoError(t, err)

			assert.True(t, first.Equal(second), "serialized as %q", first.Serialize())
		})
	}
}

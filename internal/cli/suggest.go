// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// suggest.go - Command word suggestion for typo correction.
package cli

import (
	"errors"
	"strings"

	"github.com/jeranaias/saveit/internal/commands"
)

// SuggestCommand returns the command word closest to input, or "" when no
// word is close enough. Distances are counted in runes.
func SuggestCommand(input string, words []string) string {
	input = strings.ToLower(input)
	n := len([]rune(input))

	// Single characters are usually intentional.
	if n < 2 {
		return ""
	}

	// 1 edit for up to 3 runes, 2 up to 8, 3 beyond.
	maxDistance := 1
	if n >= 4 {
		maxDistance = 2
	}
	if n > 8 {
		maxDistance = 3
	}

	bestMatch := ""
	bestDistance := -1
	for _, word := range words {
		distance := levenshteinDistance(input, word)
		if distance == 0 {
			return ""
		}
		if distance <= maxDistance && (bestDistance == -1 || distance < bestDistance) {
			bestDistance = distance
			bestMatch = word
		}
	}
	return bestMatch
}

// didYouMean returns a hint for an unknown command word, or "".
func didYouMean(err error, registry *commands.Registry) string {
	var cmdErr *commands.CommandError
	if registry == nil || !errors.As(err, &cmdErr) || !errors.Is(err, commands.ErrUnknownCommand) {
		return ""
	}
	match := SuggestCommand(cmdErr.Command, registry.CommandWords())
	if match == "" {
		return ""
	}
	return "Did you mean '" + match + "'?"
}

// levenshteinDistance is the number of single-rune insertions, deletions or
// substitutions turning a into b.
func levenshteinDistance(a, b string) int {
	s1, s2 := []rune(a), []rune(b)
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	cols := len(s2) + 1
	prev := make([]int, cols)
	curr := make([]int, cols)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j < cols; j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[cols-1]
}

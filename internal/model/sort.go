// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sort"
	"strings"

	"github.com/jeranaias/saveit/internal/util"
)

// =============================================================================
// SORT TYPE
// =============================================================================

// SortType selects the ordering of issue lists.
type SortType int

const (
	SortChronological SortType = iota // most recently updated first
	SortFrequency                     // most often selected first
	SortTag                           // alphabetically by first tag, untagged last
)

// SortUsage is the usage text shown for an unknown sort selector.
const SortUsage = "list: Lists issues, optionally sorted.\n" +
	"Parameters: [freq|chro|tag]\n" +
	"Example: list freq"

var sortSelectors = map[string]SortType{
	"chro": SortChronological,
	"freq": SortFrequency,
	"tag":  SortTag,
}

// ParseSortType parses a sort selector once at construction time.
// Unknown selectors yield a *util.ConfigurationError.
func ParseSortType(selector string) (SortType, error) {
	if s, ok := sortSelectors[strings.ToLower(strings.TrimSpace(selector))]; ok {
		return s, nil
	}
	return 0, &util.ConfigurationError{Selector: selector, Usage: SortUsage}
}

// String returns the selector that parses back to s.
func (s SortType) String() string {
	switch s {
	case SortFrequency:
		return "freq"
	case SortTag:
		return "tag"
	default:
		return "chro"
	}
}

// Less reports whether a sorts before b.
func (s SortType) Less(a, b *Issue) bool {
	switch s {
	case SortFrequency:
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
	case SortTag:
		ka, kb := tagKey(a), tagKey(b)
		if ka != kb {
			if ka == "" || kb == "" {
				return kb == ""
			}
			return ka < kb
		}
	default:
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
	}
	return strings.ToLower(a.Statement) < strings.ToLower(b.Statement)
}

// SortIssues orders issues in place; equal issues keep their relative order.
func SortIssues(issues []Issue, s SortType) {
	sort.SliceStable(issues, func(i, j int) bool {
		return s.Less(&issues[i], &issues[j])
	})
}

func tagKey(i *Issue) string {
	if len(i.Tags) == 0 {
		return ""
	}
	tags := make([]string, len(i.Tags))
	for n, t := range i.Tags {
		tags[n] = strings.ToLower(t)
	}
	sort.Strings(tags)
	return strings.Join(tags, ",")
}

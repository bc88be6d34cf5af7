// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggestion

import (
	"strings"

	"github.com/jeranaias/saveit/internal/parser"
	"github.com/jeranaias/saveit/internal/util"
)

// =============================================================================
// KIND
// =============================================================================

// Kind enumerates the argument kinds that have suggestions.
type Kind int

const (
	KindTagName        Kind = iota // existing tag names after "t/"
	KindIssueStatement             // existing issue statements after "s/"
	KindCommandWord                // command names while typing the first word
)

// KindUsage lists the accepted kind selectors.
const KindUsage = "suggestion kinds: tag, statement, command"

// AllKinds returns every kind in declaration order.
func AllKinds() []Kind {
	return []Kind{KindTagName, KindIssueStatement, KindCommandWord}
}

// ParseKind parses a kind selector. Unknown selectors yield a
// *util.ConfigurationError naming KindUsage.
func ParseKind(selector string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(selector)) {
	case "tag":
		return KindTagName, nil
	case "statement":
		return KindIssueStatement, nil
	case "command":
		return KindCommandWord, nil
	}
	return 0, &util.ConfigurationError{Selector: selector, Usage: KindUsage}
}

// ParseKinds parses every selector, failing on the first unknown one.
func ParseKinds(selectors []string) ([]Kind, error) {
	kinds := make([]Kind, 0, len(selectors))
	for _, s := range selectors {
		k, err := ParseKind(s)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func (k Kind) String() string {
	switch k {
	case KindTagName:
		return "tag"
	case KindIssueStatement:
		return "statement"
	case KindCommandWord:
		return "command"
	}
	return "unknown"
}

// status is the line shown above a non-empty candidate list.
func (k Kind) status() string {
	switch k {
	case KindTagName:
		return StatusTagName
	case KindIssueStatement:
		return StatusIssueStatement
	case KindCommandWord:
		return StatusCommandWord
	}
	return StatusNoCandidates
}

// kindForPrefix maps a marker to the kind that completes its value.
func kindForPrefix(p parser.Prefix) (Kind, bool) {
	switch p {
	case parser.PrefixTag:
		return KindTagName, true
	case parser.PrefixStatement:
		return KindIssueStatement, true
	}
	return 0, false
}

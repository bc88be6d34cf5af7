// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package parser

// Argument markers understood by saveit commands.
var (
	PrefixStatement    = NewPrefix("s/")
	PrefixDescription  = NewPrefix("d/")
	PrefixSolutionLink = NewPrefix("l/")
	PrefixRemark       = NewPrefix("r/")
	PrefixTag          = NewPrefix("t/")
	PrefixNewTag       = NewPrefix("nt/")
)

// AllPrefixes returns every marker, used when the active command is unknown.
func AllPrefixes() []Prefix {
	return []Prefix{
		PrefixStatement,
		PrefixDescription,
		PrefixSolutionLink,
		PrefixRemark,
		PrefixTag,
		PrefixNewTag,
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode"
)

// =============================================================================
// ISSUE TYPES
// =============================================================================

// Issue is a recorded problem together with the solutions found for it.
type Issue struct {
	// Identity
	ID string `json:"id"`

	// Content
	Statement   string     `json:"statement"`
	Description string     `json:"description"`
	Solutions   []Solution `json:"solutions,omitempty"`
	Tags        []string   `json:"tags,omitempty"`

	// Frequency counts how often the issue was selected; used by "list freq".
	Frequency int `json:"frequency"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Solution is a link to a fix with an optional remark.
type Solution struct {
	Link   string `json:"link"`
	Remark string `json:"remark,omitempty"`
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validation failures reported by Issue.Validate and friends.
var (
	ErrEmptyStatement   = errors.New("issue statement must not be blank")
	ErrEmptyDescription = errors.New("issue description must not be blank")
	ErrInvalidTag       = errors.New("tag names must be alphanumeric")
	ErrInvalidLink      = errors.New("solution link must be an absolute URL")
)

// Validate checks the fields a stored issue must have.
func (i *Issue) Validate() error {
	if strings.TrimSpace(i.Statement) == "" {
		return ErrEmptyStatement
	}
	if strings.TrimSpace(i.Description) == "" {
		return ErrEmptyDescription
	}
	for _, tag := range i.Tags {
		if err := ValidateTag(tag); err != nil {
			return err
		}
	}
	for _, s := range i.Solutions {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks that the link is an absolute URL.
func (s Solution) Validate() error {
	u, err := url.ParseRequestURI(s.Link)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidLink, s.Link)
	}
	return nil
}

// ValidateTag checks a single tag name.
func ValidateTag(tag string) error {
	if tag == "" {
		return fmt.Errorf("%w: empty tag", ErrInvalidTag)
	}
	for _, r := range tag {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return fmt.Errorf("%w: %q", ErrInvalidTag, tag)
		}
	}
	return nil
}

// NormalizeTags returns tags sorted with exact duplicates removed.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// IsSameIssue reports whether two issues describe the same problem.
// This is weaker than field equality: statements compare case-insensitively.
func (i *Issue) IsSameIssue(other *Issue) bool {
	if other == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(i.Statement), strings.TrimSpace(other.Statement)) &&
		strings.TrimSpace(i.Description) == strings.TrimSpace(other.Description)
}

// HasSolution reports whether the issue already carries a solution with link.
func (i *Issue) HasSolution(link string) bool {
	for _, s := range i.Solutions {
		if s.Link == link {
			return true
		}
	}
	return false
}

// String returns a one-line summary used in command feedback.
func (i *Issue) String() string {
	var b strings.Builder
	b.WriteString(i.Statement)
	b.WriteString(" Description: ")
	b.WriteString(i.Description)
	if len(i.Tags) > 0 {
		b.WriteString(" Tags: ")
		for _, tag := range i.Tags {
			b.WriteString("[" + tag + "]")
		}
	}
	return b.String()
}

// Markdown renders the issue for the detail view.
func (i *Issue) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", i.Statement, i.Description)
	if len(i.Tags) > 0 {
		b.WriteString("**Tags:** ")
		for n, tag := range i.Tags {
			if n > 0 {
				b.WriteString(", ")
			}
			b.WriteString("`" + tag + "`")
		}
		b.WriteString("\n\n")
	}
	if len(i.Solutions) == 0 {
		b.WriteString("_No solutions yet._\n")
		return b.String()
	}
	b.WriteString("## Solutions\n\n")
	for n, s := range i.Solutions {
		fmt.Fprintf(&b, "%d. <%s>", n+1, s.Link)
		if s.Remark != "" {
			b.WriteString(" - " + s.Remark)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINELS
// =============================================================================

var (
	// ErrPrecondition matches every *PreconditionError via errors.Is.
	ErrPrecondition = errors.New("precondition failed")

	// ErrConfiguration matches every *ConfigurationError via errors.Is.
	ErrConfiguration = errors.New("invalid configuration")
)

// =============================================================================
// PRECONDITION ERROR
// =============================================================================

// PreconditionError reports a required argument that was missing or unusable.
// It is a programming error on the caller's side and is never tolerated silently.
type PreconditionError struct {
	Op     string // Operation that rejected the argument (e.g., "parser.Tokenize")
	Arg    string // Name of the offending argument
	Reason string // Optional detail; defaults to "must not be empty"
}

func (e *PreconditionError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "must not be empty"
	}
	return fmt.Sprintf("%s: argument %q %s", e.Op, e.Arg, reason)
}

// Is lets errors.Is(err, ErrPrecondition) match.
func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}

// Require returns a *PreconditionError for op/arg when ok is false.
func Require(ok bool, op, arg string) error {
	if ok {
		return nil
	}
	return &PreconditionError{Op: op, Arg: arg}
}

// =============================================================================
// CONFIGURATION ERROR
// =============================================================================

// ConfigurationError reports an unrecognized strategy selector such as a sort
// mode or a suggestion kind. Callers recover from it and show Usage to the user.
type ConfigurationError struct {
	Selector string // The rejected selector text
	Usage    string // Expected usage, shown verbatim to the user
}

func (e *ConfigurationError) Error() string {
	if e.Usage == "" {
		return fmt.Sprintf("invalid selector %q", e.Selector)
	}
	return fmt.Sprintf("invalid selector %q\n%s", e.Selector, e.Usage)
}

// Is lets errors.Is(err, ErrConfiguration) match.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

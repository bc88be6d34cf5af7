// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"
)

// ErrUnknownCommand is wrapped by the CommandError for an unrecognized word.
var ErrUnknownCommand = errors.New("unknown command")

// CommandError represents a command that could not be carried out.
type CommandError struct {
	Command string // Command word as typed
	Reason  string // Human-readable reason
	Usage   string // Usage of the command, when the input was malformed
	Err     error  // Underlying error (if any)
}

func (e *CommandError) Error() string {
	msg := e.Reason
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = fmt.Sprintf("%s: %v", msg, e.Err)
		}
	}
	if e.Command != "" {
		msg = fmt.Sprintf("%s: %s", e.Command, msg)
	}
	if e.Usage != "" {
		msg += "\n" + e.Usage
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// usageError reports malformed arguments for cmd.
func usageError(cmd *Command, reason string) error {
	return &CommandError{Command: cmd.Name, Reason: reason, Usage: cmd.Usage}
}

// failure reports a well-formed command that failed.
func failure(cmd *Command, err error) error {
	return &CommandError{Command: cmd.Name, Err: err}
}

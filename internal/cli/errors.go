// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/saveit/internal/commands"
	"github.com/jeranaias/saveit/internal/config"
	"github.com/jeranaias/saveit/internal/storage"
	"github.com/jeranaias/saveit/internal/util"
)

// =============================================================================
// EXIT CODES - Specific codes for different error categories
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitNotFoundError indicates an issue index or tag was not found
	ExitNotFoundError = 7
)

// ErrUsage marks bad flags or arguments given on the command line.
var ErrUsage = errors.New("usage error")

// GetExitCode determines the appropriate exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validateErrs config.ValidateErrors
	if errors.As(err, &validateErrs) || errors.Is(err, util.ErrConfiguration) {
		return ExitConfigError
	}

	if errors.Is(err, ErrUsage) || errors.Is(err, commands.ErrUnknownCommand) || errors.Is(err, util.ErrPrecondition) {
		return ExitUsageError
	}

	var cmdErr *commands.CommandError
	if errors.As(err, &cmdErr) {
		if cmdErr.Usage != "" {
			return ExitUsageError
		}
		if isNotFound(err) {
			return ExitNotFoundError
		}
	}

	return ExitGeneralError
}

func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrIndexOutOfRange) || errors.Is(err, storage.ErrTagNotFound)
}

// DisplayError writes err to w in the error style.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s %v\n", RenderConditional(ErrorStyle, "[Error]"), err)
}

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

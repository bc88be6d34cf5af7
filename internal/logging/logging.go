// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the structured logger shared by the saveit front ends.
//
// The log goes to a file rather than the terminal so that it never interleaves
// with the interactive prompt.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jeranaias/saveit/internal/config"
)

// New builds a production JSON logger for cfg. verbose forces debug level.
func New(cfg *config.Config, verbose bool) (*zap.Logger, error) {
	path, err := cfg.LogPath()
	if err != nil {
		return nil, err
	}
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	return NewFile(path, level)
}

// NewFile builds a production JSON logger appending to path at level.
func NewFile(path, level string) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	zcfg.Sampling = nil

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Named("saveit"), nil
}

// ParseLevel maps a config level name to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

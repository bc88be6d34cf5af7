// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jeranaias/saveit/internal/config"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Path = filepath.Join(t.TempDir(), "logs", "saveit.log")
	cfg.Log.Level = "warn"

	logger, err := New(cfg, false)
	require.NoError(t, err)
	logger.Info("dropped")
	logger.Warn("kept", zap.String("input", "addtag 1 t/"))
	_ = logger.Sync()

	data, err := os.ReadFile(cfg.Log.Path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), `"msg":"kept"`)
	assert.Contains(t, string(data), `"input":"addtag 1 t/"`)
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Path = filepath.Join(t.TempDir(), "saveit.log")

	logger, err := New(cfg, true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

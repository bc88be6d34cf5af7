// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/saveit/internal/commands"
	"github.com/jeranaias/saveit/internal/config"
	"github.com/jeranaias/saveit/internal/storage"
	"github.com/jeranaias/saveit/internal/util"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// isolate points every saveit path at a temp dir and turns colors off.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SAVEIT_HOME", dir)
	for _, key := range []string{
		"SAVEIT_DATA", "SAVEIT_SAMPLE", "SAVEIT_SORT", "SAVEIT_SUGGEST",
		"SAVEIT_MAX_SUGGESTIONS", "SAVEIT_THEME", "SAVEIT_LOG_LEVEL", "SAVEIT_LOG_PATH",
	} {
		t.Setenv(key, "")
	}
	ForceColorsEnabled(false)
	return dir
}

// runCLI executes the root command with args and stdin.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func decodeResponse(t *testing.T, out string, data interface{}) JSONResponse {
	t.Helper()
	resp := JSONResponse{Data: data}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	return resp
}

// =============================================================================
// EXEC AND REPL
// =============================================================================

func TestExec_ListSamples(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "", "exec", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Java NullPointer")
	assert.Contains(t, out, "[notSolved]")
	assert.Contains(t, out, "6 issues listed, sorted by")
}

func TestExec_AddThenFind(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "", "exec", "add s/Build fails d/Missing env var t/ci")
	require.NoError(t, err)
	assert.Contains(t, out, "New issue added: Build fails")

	out, err = runCLI(t, "", "exec", "find", "ci")
	require.NoError(t, err)
	assert.Contains(t, out, "Build fails")
	assert.Contains(t, out, "1 issues listed!")
}

func TestExec_NoSamples(t *testing.T) {
	isolate(t)
	t.Setenv("SAVEIT_SAMPLE", "false")

	out, err := runCLI(t, "", "exec", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "0 issues listed")
}

func TestExec_UnknownCommand(t *testing.T) {
	isolate(t)

	_, err := runCLI(t, "", "exec", "lst")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrUnknownCommand)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
	assert.Equal(t, "Did you mean 'list'?", didYouMean(err, commands.NewRegistry()))
}

func TestExec_IndexOutOfRange(t *testing.T) {
	isolate(t)

	_, err := runCLI(t, "", "exec", "select", "99")
	require.Error(t, err)
	assert.Equal(t, ExitNotFoundError, GetExitCode(err))
}

func TestREPL_ReadsUntilExit(t *testing.T) {
	isolate(t)

	input := "add s/Flaky test d/Timing t/ci\n\nlst\nexit\nadd s/Never d/run\n"
	out, err := runCLI(t, input)
	require.NoError(t, err)

	assert.Contains(t, out, "New issue added: Flaky test")
	assert.Contains(t, out, "[Error]")
	assert.Contains(t, out, "Did you mean 'list'?")
	assert.Contains(t, out, "Exiting saveit as requested")
	assert.NotContains(t, out, "Never")
}

func TestREPL_EndOfInput(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "help\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Available commands:")
	assert.Contains(t, out, "addtag")
}

// =============================================================================
// SUGGEST
// =============================================================================

func TestSuggest_TagsAtEnd(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "", "suggest", "addtag", "1", "t/n")
	require.NoError(t, err)
	assert.Equal(t, "Existing tags [11,12)\n  newBug\n  notSolved\n", out)
}

func TestSuggest_JSONAtCaret(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "", "suggest", "--json", "--caret", "2", "li s/x")
	require.NoError(t, err)

	var data SuggestData
	resp := decodeResponse(t, out, &data)
	assert.True(t, resp.Success)
	assert.Equal(t, "suggest", resp.Command)
	assert.Equal(t, 2, data.Caret)
	assert.Equal(t, "Commands", data.Status)
	assert.Equal(t, 0, data.Start)
	assert.Equal(t, 2, data.End)
	require.Len(t, data.Values, 1)
	assert.Equal(t, SuggestValue{Label: "list", Insertion: "list "}, data.Values[0])
}

func TestSuggest_CaretOutOfRange(t *testing.T) {
	isolate(t)

	_, err := runCLI(t, "", "suggest", "--caret", "40", "addtag 1 t/")
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrPrecondition))
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

// =============================================================================
// CONFIG, DOCTOR, VERSION
// =============================================================================

func TestConfig_SetGet(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "", "config", "set", "list.default_sort", "tag")
	require.NoError(t, err)
	assert.Contains(t, out, "[OK] list.default_sort = tag")

	out, err = runCLI(t, "", "config", "get", "list.default_sort")
	require.NoError(t, err)
	assert.Equal(t, "tag\n", out)

	out, err = runCLI(t, "", "exec", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "sorted by tag")
}

func TestConfig_SetInvalid(t *testing.T) {
	isolate(t)

	_, err := runCLI(t, "", "config", "set", "suggestion.enabled", "tag,colour")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, GetExitCode(err))
}

func TestConfig_ShowJSON(t *testing.T) {
	dir := isolate(t)

	out, err := runCLI(t, "", "config", "show", "--json")
	require.NoError(t, err)

	var data ConfigData
	resp := decodeResponse(t, out, &data)
	assert.True(t, resp.Success)
	assert.False(t, data.Exists)
	assert.True(t, strings.HasPrefix(data.Path, dir))
	assert.Equal(t, "chro", data.Settings["list.default_sort"])
	assert.Equal(t, "tag,statement,command", data.Settings["suggestion.enabled"])
}

func TestConfig_Show(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "[suggestion]")
	assert.Contains(t, out, "default_sort:")
	assert.Contains(t, out, "(not created yet)")
}

func TestDoctor_JSON(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "", "doctor", "--json")
	require.NoError(t, err)

	var data DoctorData
	resp := decodeResponse(t, out, &data)
	assert.True(t, resp.Success)
	assert.True(t, data.Summary.Healthy)
	names := make([]string, len(data.Checks))
	for i, c := range data.Checks {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Config Valid", "Config Writable", "Database", "Suggestions", "Terminal"}, names)
}

func TestDoctor_InvalidConfig(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, config.SaveFile(config.Default(), dir+"/config.toml"))
	t.Setenv("SAVEIT_SORT", "alpha")

	out, err := runCLI(t, "", "doctor")
	require.Error(t, err)
	assert.Contains(t, out, "[FAIL] Config invalid")
	assert.Equal(t, ExitGeneralError, GetExitCode(err))
}

func TestVersion(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "", "version", "--json")
	require.NoError(t, err)
	var data VersionData
	decodeResponse(t, out, &data)
	assert.Equal(t, Version, data.Version)
}

func TestFlagErrors(t *testing.T) {
	isolate(t)

	_, err := runCLI(t, "", "--bogus")
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	_, err = runCLI(t, "", "exec")
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

// =============================================================================
// EXIT CODES AND RENDERING
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain", errors.New("boom"), ExitGeneralError},
		{"config", config.ValidateErrors{{Field: "ui.theme", Message: "bad"}}, ExitConfigError},
		{"selector", &util.ConfigurationError{Selector: "x"}, ExitConfigError},
		{"precondition", &util.PreconditionError{Op: "op", Arg: "arg"}, ExitUsageError},
		{"usage", &commands.CommandError{Command: "add", Usage: "add: ..."}, ExitUsageError},
		{"not found", &commands.CommandError{Command: "select", Err: storage.ErrIndexOutOfRange}, ExitNotFoundError},
		{"wrapped", WrapError(ErrUsage, "parsing flags"), ExitUsageError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestSuggestCommand(t *testing.T) {
	words := commands.NewRegistry().CommandWords()
	tests := []struct {
		input string
		want  string
	}{
		{"lst", "list"},
		{"hepl", "help"},
		{"DELET", "delete"},
		{"list", ""},
		{"x", ""},
		{"zzzzzzzz", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SuggestCommand(tt.input, words), tt.input)
	}
	assert.Equal(t, 2, levenshteinDistance("üb", "ab"+"c"))
}

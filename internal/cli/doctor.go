// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// doctor.go - Doctor command implementation for saveit.
//
// Command: doctor
// Short:   Run health checks on the installation
//
// Examples:
//
//	saveit doctor                Run all health checks
//	saveit doctor --json         Health check results in JSON
//
// Health Checks Performed:
//  1. Config Valid       - The config file parses and validates
//  2. Config Writable    - The config directory accepts new files
//  3. Database           - The issue database opens and can be counted
//  4. Suggestions        - The suggestion engine answers for a tag prefix
//  5. Terminal           - Stdin is a terminal for the interactive prompt
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/saveit/internal/commands"
	"github.com/jeranaias/saveit/internal/config"
	"github.com/jeranaias/saveit/internal/storage"
	"github.com/jeranaias/saveit/internal/suggestion"
)

// =============================================================================
// DOCTOR STYLES
// =============================================================================

var (
	checkPassStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")). // Green
			Bold(true)

	checkWarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")). // Yellow
			Bold(true)

	checkFailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	fixStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true).
			PaddingLeft(2)
)

// =============================================================================
// HEALTH CHECK TYPES
// =============================================================================

// CheckStatus represents the status of a health check.
type CheckStatus int

const (
	// CheckPass indicates the check passed successfully.
	CheckPass CheckStatus = iota
	// CheckWarn indicates the check passed with warnings.
	CheckWarn
	// CheckFail indicates the check failed.
	CheckFail
)

// String returns the lower-case name of the status.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarn:
		return "warn"
	case CheckFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Symbol returns the bracketed marker for the status.
func (s CheckStatus) Symbol() string {
	switch s {
	case CheckPass:
		return RenderConditional(checkPassStyle, "[OK]")
	case CheckWarn:
		return RenderConditional(checkWarnStyle, "[!!]")
	case CheckFail:
		return RenderConditional(checkFailStyle, "[FAIL]")
	default:
		return "?"
	}
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	Name    string
	Status  CheckStatus
	Message string
	Fix     string // Suggested fix
}

// Render returns a formatted string representation of the health check.
func (c *HealthCheck) Render() string {
	result := fmt.Sprintf("%s %s", c.Status.Symbol(), c.Message)
	if c.Status != CheckPass && c.Fix != "" {
		result += "\n" + RenderConditional(fixStyle, "-> "+c.Fix)
	}
	return result
}

// =============================================================================
// DOCTOR COMMAND
// =============================================================================

func newDoctorCommand(st *rootState) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:         "doctor",
		Short:       "Run health checks on the configuration and database",
		Annotations: map[string]string{skipApp: "true"},
		Args:        usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := runAllChecks(cmd.Context(), st.opts)
			return reportChecks(cmd.OutOrStdout(), checks, jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}

// reportChecks prints the checks and returns an error when any failed.
func reportChecks(w io.Writer, checks []*HealthCheck, jsonOut bool) error {
	var summary DoctorSummary
	for _, check := range checks {
		switch check.Status {
		case CheckPass:
			summary.Passed++
		case CheckWarn:
			summary.Warned++
		case CheckFail:
			summary.Failed++
		}
	}
	summary.Healthy = summary.Failed == 0

	var failure error
	if summary.Failed > 0 {
		failure = fmt.Errorf("%d health check(s) failed", summary.Failed)
	}

	if jsonOut {
		data := DoctorData{Summary: summary, Checks: make([]DoctorCheck, 0, len(checks))}
		for _, check := range checks {
			data.Checks = append(data.Checks, DoctorCheck{
				Name:    check.Name,
				Status:  check.Status.String(),
				Message: check.Message,
				Fix:     check.Fix,
			})
		}
		resp := NewJSONResponse("doctor", data)
		if failure != nil {
			msg := failure.Error()
			resp.Success = false
			resp.Error = &msg
		}
		if err := resp.Print(w); err != nil {
			return err
		}
		return failure
	}

	fmt.Fprintln(w, RenderConditional(TitleStyle, "saveit Doctor"))
	fmt.Fprintln(w, RenderSeparator(41))
	for _, check := range checks {
		fmt.Fprintln(w, check.Render())
	}
	fmt.Fprintln(w, RenderSeparator(41))

	parts := []string{fmt.Sprintf("%d passed", summary.Passed)}
	if summary.Warned > 0 {
		parts = append(parts, RenderConditional(checkWarnStyle, fmt.Sprintf("%d warning", summary.Warned)))
	}
	if summary.Failed > 0 {
		parts = append(parts, RenderConditional(checkFailStyle, fmt.Sprintf("%d failed", summary.Failed)))
	}
	fmt.Fprintln(w, RenderConditional(DimStyle, strings.Join(parts, ", ")))
	return failure
}

// =============================================================================
// HEALTH CHECK FUNCTIONS
// =============================================================================

// runAllChecks runs the checks in order. Later checks are skipped when the
// configuration cannot be loaded.
func runAllChecks(ctx context.Context, opts Options) []*HealthCheck {
	cfgCheck, cfg := checkConfigValid(opts.ConfigPath)
	checks := []*HealthCheck{cfgCheck, checkConfigWritable()}
	if cfg == nil {
		return append(checks, checkTerminal())
	}
	if opts.DataPath != "" {
		cfg.Data.Path = opts.DataPath
	}

	dbCheck, store := checkDatabase(ctx, cfg)
	checks = append(checks, dbCheck)
	if store != nil {
		checks = append(checks, checkSuggestions(cfg, store))
		store.Close()
	}
	return append(checks, checkTerminal())
}

func checkConfigValid(path string) (*HealthCheck, *config.Config) {
	check := &HealthCheck{Name: "Config Valid"}

	cfg, file, err := loadConfig(path)
	if err != nil {
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Config invalid: %s", err)
		check.Fix = "Run: saveit config reset"
		return check, nil
	}

	check.Status = CheckPass
	if _, statErr := os.Stat(file); file == "" || statErr != nil {
		check.Message = "Config valid (using defaults)"
	} else {
		check.Message = fmt.Sprintf("Config valid (%s)", file)
	}
	return check, cfg
}

func checkConfigWritable() *HealthCheck {
	check := &HealthCheck{Name: "Config Writable"}

	dir, err := config.Dir()
	if err == nil {
		err = config.EnsureDir()
	}
	if err != nil {
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Could not create config directory: %s", err)
		return check
	}

	testFile := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(testFile, []byte("test"), 0600); err != nil {
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Config directory not writable: %s", err)
		check.Fix = fmt.Sprintf("Check permissions: chmod 700 %s", dir)
		return check
	}
	os.Remove(testFile)

	check.Status = CheckPass
	check.Message = "Config directory writable"
	return check
}

func checkDatabase(ctx context.Context, cfg *config.Config) (*HealthCheck, *storage.IssueStore) {
	check := &HealthCheck{Name: "Database"}

	path, err := cfg.DataPath()
	if err != nil {
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Could not determine database path: %s", err)
		return check, nil
	}
	store, err := storage.Open(path, zap.NewNop())
	if err != nil {
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Could not open %s: %s", path, err)
		check.Fix = "Check data.path with: saveit config get data.path"
		return check, nil
	}
	count, err := store.Count(ctx)
	if err != nil {
		store.Close()
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Could not read %s: %s", path, err)
		return check, nil
	}

	check.Status = CheckPass
	check.Message = fmt.Sprintf("Database holds %d issue(s) (%s)", count, path)
	if count == 0 {
		check.Status = CheckWarn
		check.Fix = "Add one with: saveit exec 'add s/STATEMENT d/DESCRIPTION'"
	}
	return check, store
}

func checkSuggestions(cfg *config.Config, store *storage.IssueStore) *HealthCheck {
	check := &HealthCheck{Name: "Suggestions"}

	kinds, err := cfg.SuggestionKinds()
	if err == nil && len(kinds) == 0 {
		check.Status = CheckWarn
		check.Message = "All suggestion kinds are disabled"
		check.Fix = "Run: saveit config set suggestion.enabled tag,statement,command"
		return check
	}
	var completer *commands.Completer
	if err == nil {
		completer, err = commands.NewCompleter(commands.NewRegistry(), store, suggestion.Config{
			Kinds:      kinds,
			MaxResults: cfg.Suggestion.MaxResults,
		})
	}
	var result suggestion.Result
	if err == nil {
		probe := "addtag 1 t/"
		result, err = completer.Complete(probe, len(probe))
	}
	if err != nil {
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Suggestion engine failed: %s", err)
		return check
	}

	check.Status = CheckPass
	check.Message = fmt.Sprintf("Suggestions enabled for %s (%d tag(s) known)",
		strings.Join(cfg.Suggestion.Enabled, ", "), len(result.Values))
	return check
}

func checkTerminal() *HealthCheck {
	check := &HealthCheck{Name: "Terminal"}
	if !IsTTY() {
		check.Status = CheckWarn
		check.Message = "Stdin is not a terminal; the prompt reads plain lines"
		return check
	}
	check.Status = CheckPass
	check.Message = fmt.Sprintf("Terminal detected (%d columns, colors %t)", GetTerminalWidth(), ColorsEnabled())
	return check
}

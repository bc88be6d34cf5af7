// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/saveit/internal/model"
	"github.com/jeranaias/saveit/internal/util"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter converts a Document to one file format.
type Exporter interface {
	// Export returns the file content.
	Export(doc *Document) ([]byte, error)

	// FileExtension returns the canonical extension, e.g. ".md".
	FileExtension() string
}

// Document is everything written by an export.
type Document struct {
	ExportedAt time.Time     `json:"exported_at"`
	Issues     []model.Issue `json:"issues"`
}

// NewDocument stamps issues with the current time.
func NewDocument(issues []model.Issue) *Document {
	if issues == nil {
		issues = []model.Issue{}
	}
	return &Document{ExportedAt: time.Now().UTC(), Issues: issues}
}

// FormatUsage lists the accepted extensions.
const FormatUsage = "Supported formats: .json, .md, .html"

// ForPath picks the exporter for path's extension. A path without an
// extension is exported as JSON.
func ForPath(path string) (Exporter, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".json":
		return JSONExporter{}, nil
	case ".md", ".markdown":
		return MarkdownExporter{}, nil
	case ".html", ".htm":
		return HTMLExporter{}, nil
	default:
		return nil, &util.ConfigurationError{Selector: ext, Usage: FormatUsage}
	}
}

// WriteFile exports doc to path, replacing any existing file atomically.
func WriteFile(path string, exporter Exporter, doc *Document) error {
	if doc == nil {
		return fmt.Errorf("export: document is nil")
	}
	data, err := exporter.Export(doc)
	if err != nil {
		return fmt.Errorf("failed to encode issues: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04 UTC")
}

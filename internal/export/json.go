// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSONExporter writes the complete Document.
type JSONExporter struct{}

// Export encodes doc as indented JSON.
func (JSONExporter) Export(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// FileExtension returns ".json".
func (JSONExporter) FileExtension() string {
	return ".json"
}

// ReadJSON loads a document written by JSONExporter.
func ReadJSON(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &doc, nil
}

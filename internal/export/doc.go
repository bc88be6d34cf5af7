// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package export writes the issue database to a file.

The format follows the file extension:

	.json           machine-readable document, re-readable by ReadJSON
	.md, .markdown  one section per issue, solutions as a numbered list
	.html, .htm     standalone page with inline styles

Usage:

	exporter, err := export.ForPath("issues.md")
	if err != nil {
	    return err
	}
	err = export.WriteFile("issues.md", exporter, export.NewDocument(issues))
*/
package export

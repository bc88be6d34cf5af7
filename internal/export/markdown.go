// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter writes one section per issue.
type MarkdownExporter struct{}

// Export renders doc as Markdown.
func (MarkdownExporter) Export(doc *Document) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString("# Issues\n\n")
	fmt.Fprintf(&sb, "_%d issues exported %s_\n", len(doc.Issues), formatTimestamp(doc.ExportedAt))

	for n, issue := range doc.Issues {
		fmt.Fprintf(&sb, "\n## %d. %s\n\n", n+1, escapeMarkdown(issue.Statement))
		sb.WriteString(escapeMarkdown(issue.Description) + "\n")

		if len(issue.Tags) > 0 {
			tags := make([]string, len(issue.Tags))
			for i, tag := range issue.Tags {
				tags[i] = "`" + tag + "`"
			}
			sb.WriteString("\n**Tags:** " + strings.Join(tags, ", ") + "\n")
		}

		if len(issue.Solutions) > 0 {
			sb.WriteString("\n**Solutions:**\n\n")
			for i, s := range issue.Solutions {
				fmt.Fprintf(&sb, "%d. <%s>", i+1, s.Link)
				if s.Remark != "" {
					sb.WriteString(" - " + escapeMarkdown(s.Remark))
				}
				sb.WriteString("\n")
			}
		}

		fmt.Fprintf(&sb, "\n_Selected %d times, last updated %s_\n", issue.Frequency, formatTimestamp(issue.UpdatedAt))
	}
	return []byte(sb.String()), nil
}

// FileExtension returns ".md".
func (MarkdownExporter) FileExtension() string {
	return ".md"
}

// escapeMarkdown escapes characters that would start Markdown syntax.
func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		"`", "\\`",
		"*", `\*`,
		"_", `\_`,
		"#", `\#`,
		"[", `\[`,
		"]", `\]`,
		"<", `\<`,
	)
	return replacer.Replace(s)
}

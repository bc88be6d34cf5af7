// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"html"
	"strings"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter writes a standalone page.
type HTMLExporter struct{}

const htmlStyle = `body{font-family:system-ui,sans-serif;max-width:48rem;margin:2rem auto;padding:0 1rem;color:#1f2937}
section{border-bottom:1px solid #e5e5e5;padding:1rem 0}
.tag{background:#e0f2fe;color:#0e7490;border-radius:4px;padding:0 .4rem;margin-right:.3rem;font-family:monospace}
.meta{color:#6b7280;font-size:.85rem}`

// Export renders doc as HTML. All issue text is escaped.
func (HTMLExporter) Export(doc *Document) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	sb.WriteString("<title>Issues</title>\n<style>\n" + htmlStyle + "\n</style>\n</head>\n<body>\n")
	fmt.Fprintf(&sb, "<h1>Issues</h1>\n<p class=\"meta\">%d issues exported %s</p>\n",
		len(doc.Issues), formatTimestamp(doc.ExportedAt))

	for n, issue := range doc.Issues {
		sb.WriteString("<section>\n")
		fmt.Fprintf(&sb, "<h2>%d. %s</h2>\n", n+1, html.EscapeString(issue.Statement))
		fmt.Fprintf(&sb, "<p>%s</p>\n", html.EscapeString(issue.Description))

		if len(issue.Tags) > 0 {
			sb.WriteString("<p>")
			for _, tag := range issue.Tags {
				fmt.Fprintf(&sb, "<span class=\"tag\">%s</span>", html.EscapeString(tag))
			}
			sb.WriteString("</p>\n")
		}

		if len(issue.Solutions) > 0 {
			sb.WriteString("<ol>\n")
			for _, s := range issue.Solutions {
				link := html.EscapeString(s.Link)
				fmt.Fprintf(&sb, "<li><a href=\"%s\">%s</a>", link, link)
				if s.Remark != "" {
					sb.WriteString(" - " + html.EscapeString(s.Remark))
				}
				sb.WriteString("</li>\n")
			}
			sb.WriteString("</ol>\n")
		}

		fmt.Fprintf(&sb, "<p class=\"meta\">Selected %d times, last updated %s</p>\n",
			issue.Frequency, formatTimestamp(issue.UpdatedAt))
		sb.WriteString("</section>\n")
	}

	sb.WriteString("</body>\n</html>\n")
	return []byte(sb.String()), nil
}

// FileExtension returns ".html".
func (HTMLExporter) FileExtension() string {
	return ".html"
}

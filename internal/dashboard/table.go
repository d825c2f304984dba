package dashboard

import (
	"fmt"
	"strings"

	"jira-dashboard/internal/common"
	"jira-dashboard/internal/models"
)

const (
	// maxTableRows caps the issue table; the snapshot is sorted by update
	// time, so these are the most recently touched issues.
	maxTableRows = 20
	tableColumns = 6

	noIssuesMessage = "No issues found"
	openLinkText    = "Open"
)

// BuildTable renders up to maxTableRows issues as table body rows. Every
// field is HTML-escaped, so no issue text can inject live markup. An empty
// or absent list yields a single informational row spanning all columns.
func BuildTable(issues []models.Issue) string {
	if len(issues) == 0 {
		return messageRow("empty", noIssuesMessage)
	}

	if len(issues) > maxTableRows {
		issues = issues[:maxTableRows]
	}

	var b strings.Builder
	for _, issue := range issues {
		summary := issue.Summary
		if summary == "" {
			summary = "-"
		}

		b.WriteString("<tr>")
		fmt.Fprintf(&b, "<td><strong>%s</strong></td>", common.EscapeHTML(issue.Key))
		fmt.Fprintf(&b, "<td>%s</td>", common.EscapeHTML(summary))
		fmt.Fprintf(&b, "<td>%s</td>", common.EscapeHTML(issue.Status))
		fmt.Fprintf(&b, "<td>%s</td>", common.EscapeHTML(issue.IssueType))
		fmt.Fprintf(&b, "<td>%s</td>", common.EscapeHTML(issue.Assignee))
		// noopener keeps the issue page from reaching back to this window.
		fmt.Fprintf(&b, `<td><a href="%s" target="_blank" rel="noopener noreferrer">%s</a></td>`,
			common.EscapeHTML(issue.URL), openLinkText)
		b.WriteString("</tr>\n")
	}
	return b.String()
}

// ErrorRow renders the single row shown when the snapshot failed to load.
func ErrorRow(message string) string {
	return messageRow("error", message)
}

func messageRow(class, message string) string {
	return fmt.Sprintf(`<tr><td colspan="%d" class="%s">%s</td></tr>`,
		tableColumns, class, common.EscapeHTML(message))
}

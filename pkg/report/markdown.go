package report

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/styleguide-audit/models"
)

func renderMarkdown(rep Report) []byte {
	var b strings.Builder
	s := rep.Summary

	b.WriteString("# Style Guide Audit\n\n")
	fmt.Fprintf(&b, "Generated %s\n\n", s.GeneratedAt)
	b.WriteString("| Pages | With issues | Issues | Average score |\n|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d |\n\n", s.TotalPages, s.PagesWithIssues, s.TotalIssues, s.AverageScore)

	b.WriteString("## Issues by category\n\n")
	for _, c := range models.Categories {
		fmt.Fprintf(&b, "- %s: %d\n", c, s.IssuesByCategory[c])
	}
	b.WriteString("\n## Issues by severity\n\n")
	for _, sev := range models.Severities {
		fmt.Fprintf(&b, "- %s: %d\n", sev, s.IssuesBySeverity[sev])
	}
	if len(s.TopRules) > 0 {
		b.WriteString("\n## Most frequent rules\n\n")
		for i, r := range s.TopRules {
			fmt.Fprintf(&b, "%d. `%s`\n", i+1, r)
		}
	}

	b.WriteString("\n## Pages\n")
	for _, p := range rep.Pages {
		fmt.Fprintf(&b, "\n### %s\n\n", p.FilePath)
		fmt.Fprintf(&b, "Status **%s**, score %d, %d issues\n", p.Status, p.Score, p.IssueCount)
		if len(p.Issues) == 0 {
			continue
		}
		b.WriteString("\n| Line | Severity | Rule | Message | Fixable |\n|---|---|---|---|---|\n")
		for _, is := range p.Issues {
			fmt.Fprintf(&b, "| %d | %s | `%s` | %s | %s |\n",
				is.Line, is.Severity, is.RuleID, escapeCell(is.Message), yesNo(is.AutoFixable))
		}
	}

	if len(rep.Fixes) > 0 {
		b.WriteString("\n## Fixes\n\n")
		fmt.Fprintf(&b, "%d fixed, %d left for manual review\n\n", s.Fixed, s.Unfixed)
		for _, f := range rep.Fixes {
			fmt.Fprintf(&b, "- %s: %d fixed, %d unfixed\n", f.FilePath, len(f.Fixed), len(f.Unfixed))
		}
	}
	return []byte(b.String())
}

func escapeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", `\|`), "\n", " ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dtnitsch/styleguide-audit/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	boxStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("63"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusStyles = map[models.Status]lipgloss.Style{
		models.StatusCompliant:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		models.StatusNeedsReview: lipgloss.NewStyle().Foreground(lipgloss.Color("208")), // orange
		models.StatusNeedsFixes:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
)

// Terminal renders the console summary of an audit.
func Terminal(result models.AuditResult, fixes []models.FixResult) string {
	s := BuildSummary(result, fixes)
	var b strings.Builder

	b.WriteString(titleStyle.Render("Style Guide Audit"))
	b.WriteString("\n\n")

	totals := fmt.Sprintf("%d pages  %d with issues  %d issues  average score %d",
		s.TotalPages, s.PagesWithIssues, s.TotalIssues, s.AverageScore)
	var cats []string
	for _, c := range models.Categories {
		cats = append(cats, fmt.Sprintf("%s %d", c, s.IssuesByCategory[c]))
	}
	b.WriteString(boxStyle.Render(totals + "\n" + dimStyle.Render(strings.Join(cats, "  "))))
	b.WriteString("\n")

	for _, p := range s.Pages {
		st := statusStyles[p.Status]
		fmt.Fprintf(&b, "  %s %3d  %s %s\n",
			st.Render(fmt.Sprintf("%-12s", p.Status)), p.Score, p.FilePath,
			dimStyle.Render(fmt.Sprintf("(%d issues)", p.IssueCount)))
	}

	if len(s.TopRules) > 0 {
		b.WriteString("\n" + dimStyle.Render("most frequent: "+strings.Join(s.TopRules, ", ")) + "\n")
	}
	if len(fixes) > 0 {
		fmt.Fprintf(&b, "\n%d fixed, %d left for manual review\n", s.Fixed, s.Unfixed)
	}
	return b.String()
}

package report

import (
	"math"
	"sort"
	"time"

	"github.com/dtnitsch/styleguide-audit/models"
	"github.com/dtnitsch/styleguide-audit/pkg/tally"
)

// topRuleLimit is how many rules the summary ranks.
const topRuleLimit = 10

// Summary is the lightweight overview heading every report: totals,
// distributions and the noisiest rules, without the per-issue detail.
type Summary struct {
	GeneratedAt      string                  `json:"generated_at" yaml:"generated_at"`
	TotalPages       int                     `json:"total_pages" yaml:"total_pages"`
	PagesWithIssues  int                     `json:"pages_with_issues" yaml:"pages_with_issues"`
	TotalIssues      int                     `json:"total_issues" yaml:"total_issues"`
	AverageScore     int                     `json:"average_score" yaml:"average_score"`
	IssuesByCategory map[models.Category]int `json:"issues_by_category" yaml:"issues_by_category"`
	IssuesBySeverity map[models.Severity]int `json:"issues_by_severity" yaml:"issues_by_severity"`
	TopRules         []string                `json:"top_rules" yaml:"top_rules"`
	Pages            []PageSummary           `json:"pages" yaml:"pages"`
	Fixed            int                     `json:"fixed,omitempty" yaml:"fixed,omitempty"`
	Unfixed          int                     `json:"unfixed,omitempty" yaml:"unfixed,omitempty"`
}

// PageSummary is one page's line in the summary.
type PageSummary struct {
	FilePath   string        `json:"file_path" yaml:"file_path"`
	Component  string        `json:"component" yaml:"component"`
	Status     models.Status `json:"status" yaml:"status"`
	Score      int           `json:"score" yaml:"score"`
	IssueCount int           `json:"issue_count" yaml:"issue_count"`
}

// Report is what the structured formats serialise.
type Report struct {
	Summary Summary                  `json:"summary" yaml:"summary"`
	Pages   []models.PageAuditResult `json:"pages" yaml:"pages"`
	Fixes   []models.FixResult       `json:"fixes,omitempty" yaml:"fixes,omitempty"`
}

// BuildSummary aggregates result and the optional fix results.
func BuildSummary(result models.AuditResult, fixes []models.FixResult) Summary {
	generated := result.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	s := Summary{
		GeneratedAt:      generated.Format(time.RFC3339),
		TotalPages:       result.TotalPages,
		PagesWithIssues:  result.PagesWithIssues,
		TotalIssues:      result.TotalIssues,
		IssuesByCategory: result.IssuesByCategory,
		IssuesBySeverity: result.IssuesBySeverity,
		TopRules:         []string{},
		Pages:            make([]PageSummary, 0, len(result.Pages)),
	}

	intermediate := make([]map[string]int, 0, len(result.Pages))
	total := 0
	for _, p := range result.Pages {
		s.Pages = append(s.Pages, PageSummary{
			FilePath:   p.FilePath,
			Component:  p.Component,
			Status:     p.Status,
			Score:      p.Score,
			IssueCount: p.IssueCount,
		})
		total += p.Score
		intermediate = append(intermediate, tally.Map(p.Issues))
	}
	if len(result.Pages) > 0 {
		s.AverageScore = int(math.Round(float64(total) / float64(len(result.Pages))))
	}
	for _, c := range tally.Top(tally.Reduce(intermediate), topRuleLimit) {
		s.TopRules = append(s.TopRules, c.String())
	}

	// worst pages first
	sort.SliceStable(s.Pages, func(i, j int) bool { return s.Pages[i].Score < s.Pages[j].Score })

	for _, f := range fixes {
		s.Fixed += len(f.Fixed)
		s.Unfixed += len(f.Unfixed)
	}
	return s
}

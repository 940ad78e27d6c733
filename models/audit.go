package models

import "time"

// Status is the compliance classification of one page.
type Status string

const (
	StatusCompliant   Status = "compliant"
	StatusNeedsReview Status = "needs-review"
	StatusNeedsFixes  Status = "needs-fixes"
)

// PageAuditResult is the audit outcome for a single document.
type PageAuditResult struct {
	FilePath   string            `json:"file_path" yaml:"file_path"`
	Component  string            `json:"component" yaml:"component"`
	Issues     []ValidationIssue `json:"issues" yaml:"issues"`
	IssueCount int               `json:"issue_count" yaml:"issue_count"`
	Score      int               `json:"score" yaml:"score"`
	Status     Status            `json:"status" yaml:"status"`
}

// AuditResult aggregates page results for one audit run.
type AuditResult struct {
	GeneratedAt      time.Time         `json:"generated_at" yaml:"generated_at"`
	TotalPages       int               `json:"total_pages" yaml:"total_pages"`
	PagesWithIssues  int               `json:"pages_with_issues" yaml:"pages_with_issues"`
	TotalIssues      int               `json:"total_issues" yaml:"total_issues"`
	IssuesByCategory map[Category]int  `json:"issues_by_category" yaml:"issues_by_category"`
	IssuesBySeverity map[Severity]int  `json:"issues_by_severity" yaml:"issues_by_severity"`
	Pages            []PageAuditResult `json:"pages" yaml:"pages"`
}

// NewAuditResult returns an empty result with every category and severity key present.
func NewAuditResult() AuditResult {
	r := AuditResult{
		IssuesByCategory: make(map[Category]int, len(Categories)),
		IssuesBySeverity: make(map[Severity]int, len(Severities)),
		Pages:            []PageAuditResult{},
	}
	for _, c := range Categories {
		r.IssuesByCategory[c] = 0
	}
	for _, s := range Severities {
		r.IssuesBySeverity[s] = 0
	}
	return r
}

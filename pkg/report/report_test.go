package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dtnitsch/styleguide-audit/models"
	"github.com/dtnitsch/styleguide-audit/pkg/storage"
	"gopkg.in/yaml.v3"
)

func sampleResult() models.AuditResult {
	r := models.NewAuditResult()
	r.GeneratedAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	r.Pages = []models.PageAuditResult{
		{FilePath: "app/button/page.tsx", Component: "button", Score: 100, Status: models.StatusCompliant, Issues: []models.ValidationIssue{}},
		{
			FilePath: "app/card/page.tsx", Component: "card", Score: 74, Status: models.StatusNeedsFixes, IssueCount: 2,
			Issues: []models.ValidationIssue{
				{RuleID: "typography-h1", Category: models.CategoryTypography, Severity: models.SeverityError, Line: 5,
					Message: "h1 <b>|</b> is missing style tokens", AutoFixable: true},
				{RuleID: "api-props-table", Category: models.CategoryAPI, Severity: models.SeverityError, Message: "No props table found"},
			},
		},
	}
	r.TotalPages, r.PagesWithIssues, r.TotalIssues = 2, 1, 2
	r.IssuesByCategory[models.CategoryTypography] = 1
	r.IssuesByCategory[models.CategoryAPI] = 1
	r.IssuesBySeverity[models.SeverityError] = 2
	return r
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"Markdown", FormatMarkdown, false},
		{"md", FormatMarkdown, false},
		{"html", FormatHTML, false},
		{"yaml", FormatYAML, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
			}
		})
	}
}

func TestBuildSummary(t *testing.T) {
	fixes := []models.FixResult{{FilePath: "app/card/page.tsx", Fixed: make([]models.ValidationIssue, 1), Unfixed: make([]models.ValidationIssue, 1)}}
	s := BuildSummary(sampleResult(), fixes)

	if s.AverageScore != 87 {
		t.Errorf("AverageScore = %d, want 87", s.AverageScore)
	}
	if s.Pages[0].FilePath != "app/card/page.tsx" {
		t.Errorf("worst page should come first, got %s", s.Pages[0].FilePath)
	}
	if len(s.TopRules) != 2 || s.TopRules[0] != "api-props-table:1" {
		t.Errorf("TopRules = %v", s.TopRules)
	}
	if s.Fixed != 1 || s.Unfixed != 1 {
		t.Errorf("Fixed = %d Unfixed = %d", s.Fixed, s.Unfixed)
	}
}

func TestRenderFormats(t *testing.T) {
	result := sampleResult()

	t.Run("json", func(t *testing.T) {
		data, err := Render(FormatJSON, result, nil)
		if err != nil {
			t.Fatal(err)
		}
		var rep Report
		if err := json.Unmarshal(data, &rep); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if rep.Summary.TotalIssues != 2 || len(rep.Pages) != 2 {
			t.Errorf("report = %+v", rep.Summary)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := Render(FormatYAML, result, nil)
		if err != nil {
			t.Fatal(err)
		}
		var rep Report
		if err := yaml.Unmarshal(data, &rep); err != nil {
			t.Fatalf("invalid yaml: %v", err)
		}
		if rep.Summary.IssuesByCategory[models.CategoryAPI] != 1 {
			t.Errorf("issues_by_category = %v", rep.Summary.IssuesByCategory)
		}
	})

	t.Run("markdown", func(t *testing.T) {
		data, err := Render(FormatMarkdown, result, nil)
		if err != nil {
			t.Fatal(err)
		}
		md := string(data)
		for _, want := range []string{"# Style Guide Audit", "### app/card/page.tsx", "`typography-h1`", `<b>\|</b>`} {
			if !strings.Contains(md, want) {
				t.Errorf("markdown missing %q", want)
			}
		}
	})

	t.Run("html", func(t *testing.T) {
		data, err := Render(FormatHTML, result, nil)
		if err != nil {
			t.Fatal(err)
		}
		out := string(data)
		if strings.Contains(out, "<b>|</b>") || !strings.Contains(out, "&lt;b&gt;") {
			t.Error("html report does not escape issue messages")
		}
		if !strings.Contains(out, `class="needs-fixes"`) {
			t.Error("html report missing status class")
		}
	})
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	path, err := Write(dir, FormatMarkdown, sampleResult(), nil, &storage.Storage{})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if want := filepath.Join(dir, "styleguide-audit-2026-03-14.md"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("report not written: %v", err)
	}
}

func TestTerminal(t *testing.T) {
	out := Terminal(sampleResult(), nil)
	for _, want := range []string{"Style Guide Audit", "app/card/page.tsx", "2 issues", "needs-fixes"} {
		if !strings.Contains(out, want) {
			t.Errorf("terminal output missing %q:\n%s", want, out)
		}
	}
}

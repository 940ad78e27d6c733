package history

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dtnitsch/styleguide-audit/models"
	"github.com/dtnitsch/styleguide-audit/pkg/db"
)

func TestPrintRuns(t *testing.T) {
	var buf bytes.Buffer
	PrintRuns(&buf, nil)
	if !strings.Contains(buf.String(), "No runs found") {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	PrintRuns(&buf, []db.Run{{RunUUID: "abc", CreatedAt: time.Now(), TotalPages: 3, TotalIssues: 7, FixRun: true, RootDir: "app"}})
	out := buf.String()
	for _, want := range []string{"abc", "Total: 1 runs", "yes"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintRun(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer database.Close()

	result := models.NewAuditResult()
	result.GeneratedAt = time.Now()
	result.TotalPages, result.PagesWithIssues, result.TotalIssues = 1, 1, 1
	result.Pages = []models.PageAuditResult{{
		FilePath: "app/card/page.tsx", Score: 95, Status: models.StatusNeedsReview, IssueCount: 1,
		Issues: []models.ValidationIssue{{RuleID: "typography-h1", Category: models.CategoryTypography, Severity: models.SeverityError, Line: 5, Message: "h1"}},
	}}
	run, err := database.InsertRun("", "app", true, result)
	if err != nil {
		t.Fatal(err)
	}
	err = database.SaveFixAttempts(run.RunID, map[string][]models.FixAttempt{
		"app/card/page.tsx": {{Issue: models.ValidationIssue{RuleID: "typography-h1", Line: 5}, Error: "element not found"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := PrintRun(&buf, database, run); err != nil {
		t.Fatalf("PrintRun() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{run.RunUUID, "[needs-review]  95  app/card/page.tsx", "typography-h1: 1", "failed: element not found"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

package audit

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dtnitsch/styleguide-audit/internal/common"
	"github.com/dtnitsch/styleguide-audit/models"
	"github.com/dtnitsch/styleguide-audit/pkg/db"
	"github.com/dtnitsch/styleguide-audit/pkg/report"
)

const cardPage = `export default function CardPage() {
  return (
    <div className="mx-auto">
      <header>
        <h1 className="text-2xl">Card</h1>
      </header>
    </div>
  )
}
`

func setupPages(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	path := filepath.Join(root, "card", "page.tsx")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(cardPage), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func quietLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func TestRunAuditOnly(t *testing.T) {
	root := setupPages(t)
	opts := Options{Dir: root, Workers: 1, Format: report.FormatJSON}

	out, err := Run(opts, models.DefaultStyleGuide(), quietLogger())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.Result.TotalPages != 1 || out.Result.TotalIssues == 0 {
		t.Errorf("result = %+v", out.Result)
	}
	if code := ExitCode(opts, out); code != common.ExitIssues {
		t.Errorf("ExitCode() = %d, want %d", code, common.ExitIssues)
	}
}

func TestRunFixWritesFiles(t *testing.T) {
	root := setupPages(t)
	outDir := t.TempDir()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	opts := Options{Dir: root, Workers: 1, Fix: true, Report: true, Format: report.FormatMarkdown, Output: outDir, DBPath: dbPath, Record: true}

	out, err := Run(opts, models.DefaultStyleGuide(), quietLogger())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.Written != 1 {
		t.Fatalf("Written = %d, want 1", out.Written)
	}
	data, err := os.ReadFile(filepath.Join(root, "card", "page.tsx"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `"text-2xl"`) || !strings.Contains(string(data), "space-y-12") {
		t.Errorf("page not fixed:\n%s", data)
	}
	if code := ExitCode(opts, out); code != common.ExitOK {
		t.Errorf("ExitCode() = %d, want %d", code, common.ExitOK)
	}
	if _, err := os.Stat(out.Report); err != nil {
		t.Errorf("report not written: %v", err)
	}

	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer database.Close()
	run, err := database.GetRunByUUID(out.RunID)
	if err != nil || run == nil || !run.FixRun {
		t.Fatalf("recorded run = %+v, %v", run, err)
	}
	attempts, err := database.GetFixAttempts(run.RunID)
	if err != nil || len(attempts) == 0 {
		t.Errorf("fix attempts = %v, %v", attempts, err)
	}
}

func TestRunDryRunLeavesFiles(t *testing.T) {
	root := setupPages(t)
	opts := Options{Dir: root, Workers: 1, Fix: true, DryRun: true, Format: report.FormatJSON}

	out, err := Run(opts, models.DefaultStyleGuide(), quietLogger())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.Written != 0 || len(out.Fixes) != 1 || len(out.Fixes[0].Fixed) == 0 {
		t.Errorf("outcome = %+v", out)
	}
	data, _ := os.ReadFile(filepath.Join(root, "card", "page.tsx"))
	if string(data) != cardPage {
		t.Error("dry run modified the page")
	}
}

func TestRunUnknownComponent(t *testing.T) {
	root := setupPages(t)
	_, err := Run(Options{Dir: root, Component: "modal", Workers: 1}, models.DefaultStyleGuide(), quietLogger())
	if err == nil {
		t.Fatal("Run() should fail for an unknown component")
	}
}

func TestExitCode(t *testing.T) {
	issue := models.ValidationIssue{RuleID: "structure-min-examples"}
	fixed := []models.FixResult{{Fixed: []models.ValidationIssue{issue}}}
	unfixed := []models.FixResult{{Fixed: []models.ValidationIssue{}, Unfixed: []models.ValidationIssue{issue}}}

	tests := []struct {
		name   string
		fix    bool
		issues int
		fixes  []models.FixResult
		want   int
	}{
		{"compliant audit", false, 0, nil, common.ExitOK},
		{"audit with issues", false, 2, nil, common.ExitIssues},
		{"fix on a compliant corpus", true, 0, []models.FixResult{{}}, common.ExitOK},
		{"fix applied", true, 2, fixed, common.ExitOK},
		{"nothing fixable", true, 1, unfixed, common.ExitIssues},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &Outcome{Result: models.AuditResult{TotalIssues: tt.issues}, Fixes: tt.fixes}
			if got := ExitCode(Options{Fix: tt.fix}, out); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

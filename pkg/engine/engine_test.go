package engine

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/dtnitsch/styleguide-audit/models"
	"github.com/dtnitsch/styleguide-audit/pkg/caching"
	"github.com/dtnitsch/styleguide-audit/pkg/rules"
)

const compliantPage = `import { ComponentPlayground, PropsTable } from '@/components/docs'

export default function ButtonPage() {
  return (
    <div className="space-y-12">
      <header className="space-y-6">
        <h1 className="text-3xl md:text-4xl lg:text-5xl font-display text-ghost-orange tracking-wide">Button</h1>
        <p className="text-lg text-ghost-gray leading-relaxed">Buttons trigger actions.</p>
      </header>
      <ComponentPlayground preview={<Button />} code="<Button />" api="button" />

      <h2 className="text-2xl md:text-3xl font-display text-ghost-orange tracking-wide">Basic Usage</h2>
      <ComponentPlayground preview={<Button />} code="<Button />" />

      <h2 className="text-2xl md:text-3xl font-display text-ghost-orange tracking-wide">Variants</h2>
      <ComponentPlayground preview={<Button variant="ghost" />} code="<Button variant='ghost' />" />

      <h2 className="text-2xl md:text-3xl font-display text-ghost-orange tracking-wide">API Reference</h2>
      <PropsTable props={[{ name: 'variant', type: 'string', default: "'primary'", description: 'Visual style' }]} />
    </div>
  )
}
`

func doc(src string) models.Document {
	return models.Document{FilePath: "app/button/page.tsx", Component: "button", Source: src}
}

func countRule(issues []models.ValidationIssue, id string) []models.ValidationIssue {
	var out []models.ValidationIssue
	for _, is := range issues {
		if is.RuleID == id {
			out = append(out, is)
		}
	}
	return out
}

func TestAuditPageCompliant(t *testing.T) {
	e := New(nil, nil)
	res := e.AuditPage(doc(compliantPage))
	if res.IssueCount != 0 {
		t.Fatalf("IssueCount = %d, issues: %+v", res.IssueCount, res.Issues)
	}
	if res.Status != models.StatusCompliant || res.Score != 100 {
		t.Errorf("Status = %s Score = %d, want compliant 100", res.Status, res.Score)
	}
}

func TestAuditPageWrongH1(t *testing.T) {
	src := strings.Replace(compliantPage,
		`<h1 className="text-3xl md:text-4xl lg:text-5xl font-display text-ghost-orange tracking-wide">`,
		`<h1 className="text-2xl">`, 1)
	res := New(nil, nil).AuditPage(doc(src))

	h1 := countRule(res.Issues, rules.RuleTypographyH1)
	if len(h1) != 1 {
		t.Fatalf("got %d %s issues, want 1", len(h1), rules.RuleTypographyH1)
	}
	if !h1[0].AutoFixable || h1[0].Line != 7 {
		t.Errorf("issue = %+v", h1[0])
	}
	if res.Status != models.StatusNeedsReview {
		t.Errorf("Status = %s, want needs-review", res.Status)
	}
}

func TestAuditPageTwoExamples(t *testing.T) {
	src := strings.Replace(compliantPage,
		`      <ComponentPlayground preview={<Button variant="ghost" />} code="<Button variant='ghost' />" />`+"\n", "", 1)
	res := New(nil, nil).AuditPage(doc(src))

	issues := countRule(res.Issues, rules.RuleStructureMinExamples)
	if len(issues) != 1 {
		t.Fatalf("got %d %s issues, want 1", len(issues), rules.RuleStructureMinExamples)
	}
	is := issues[0]
	if is.Category != models.CategoryStructure || is.AutoFixable {
		t.Errorf("issue = %+v", is)
	}
	if !strings.Contains(is.Message, "Found 2") || !strings.Contains(is.Message, "least 3") {
		t.Errorf("Message = %q", is.Message)
	}
}

func TestAuditPageIncompleteProp(t *testing.T) {
	src := strings.Replace(compliantPage,
		`description: 'Visual style' }]}`,
		`description: 'Visual style' }, { name: 'size', default: "'md'" }]}`, 1)
	res := New(nil, nil).AuditPage(doc(src))

	issues := countRule(res.Issues, rules.RuleAPIPropCompleteness)
	if len(issues) != 1 {
		t.Fatalf("got %d %s issues, want 1", len(issues), rules.RuleAPIPropCompleteness)
	}
	if msg := issues[0].Message; !strings.Contains(msg, `"size"`) || !strings.Contains(msg, "type, description") {
		t.Errorf("Message = %q", msg)
	}
}

func TestAuditPageParseError(t *testing.T) {
	res := New(nil, nil).AuditPage(doc("export default function X() {\n  return (\n    <div>\n      <p>open\n    </div>\n  )\n}\n"))
	if res.IssueCount != 1 || res.Issues[0].RuleID != RuleParseError {
		t.Fatalf("issues = %+v", res.Issues)
	}
	if res.Issues[0].AutoFixable || res.Issues[0].Line == 0 {
		t.Errorf("issue = %+v", res.Issues[0])
	}
}

func TestFailingRulesAreSkipped(t *testing.T) {
	boom := rules.New("boom", models.CategoryStructure, "panics", func(*models.ParsedPage, *rules.Context) ([]models.ValidationIssue, error) {
		var page *models.ParsedPage
		_ = page.Headers
		return nil, nil
	})
	broken := rules.New("broken", models.CategoryStructure, "errors", func(*models.ParsedPage, *rules.Context) ([]models.ValidationIssue, error) {
		return []models.ValidationIssue{{RuleID: "broken"}}, errors.New("broken rule")
	})
	ok := rules.New("ok", models.CategoryAPI, "reports", func(_ *models.ParsedPage, ctx *rules.Context) ([]models.ValidationIssue, error) {
		return []models.ValidationIssue{{RuleID: "ok", Category: models.CategoryAPI, Severity: models.SeverityInfo, FilePath: ctx.FilePath}}, nil
	})

	res := New(nil, nil, boom, broken, ok).AuditPage(doc(compliantPage))
	if res.IssueCount != 1 || res.Issues[0].RuleID != "ok" {
		t.Fatalf("issues = %+v", res.Issues)
	}
	// 0.25 / 3 rules
	if res.Score != 92 {
		t.Errorf("Score = %d, want 92", res.Score)
	}
}

func TestRunRuleWrapsErrors(t *testing.T) {
	r := rules.New("broken", models.CategoryAPI, "", func(*models.ParsedPage, *rules.Context) ([]models.ValidationIssue, error) {
		return nil, errors.New("nope")
	})
	_, err := runRule(r, &models.ParsedPage{}, &rules.Context{FilePath: "a.tsx"})
	var re *RuleError
	if !errors.As(err, &re) || re.RuleID != "broken" || re.FilePath != "a.tsx" {
		t.Errorf("err = %v, want *RuleError", err)
	}
}

func TestScoreAndClassify(t *testing.T) {
	errs := func(n int, sev models.Severity) []models.ValidationIssue {
		out := make([]models.ValidationIssue, n)
		for i := range out {
			out[i].Severity = sev
		}
		return out
	}
	tests := []struct {
		name   string
		issues []models.ValidationIssue
		rules  int
		score  int
		status models.Status
	}{
		{"no issues", nil, 19, 100, models.StatusCompliant},
		{"one warning", errs(1, models.SeverityWarning), 10, 95, models.StatusNeedsReview},
		{"two errors of ten", errs(2, models.SeverityError), 10, 80, models.StatusNeedsReview},
		{"three errors of ten", errs(3, models.SeverityError), 10, 70, models.StatusNeedsFixes},
		{"more issues than rules", errs(40, models.SeverityError), 10, 0, models.StatusNeedsFixes},
		{"no rules", errs(1, models.SeverityInfo), 0, 0, models.StatusNeedsFixes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := Score(tt.issues, tt.rules)
			if score != tt.score {
				t.Errorf("Score() = %d, want %d", score, tt.score)
			}
			if got := Classify(len(tt.issues), score); got != tt.status {
				t.Errorf("Classify() = %s, want %s", got, tt.status)
			}
		})
	}
}

func TestAuditAggregates(t *testing.T) {
	docs := []models.Document{
		doc(compliantPage),
		{FilePath: "app/card/page.tsx", Component: "card", Source: "export default function Card() {\n  return <div><h2>Card</h2></div>\n}\n"},
		{FilePath: "app/badge/page.tsx", Component: "badge", Source: "export default () => <div className=\"p-2 border rounded\"><code>x</code></div>\n"},
	}
	e := New(nil, nil)
	result := e.Audit(docs)

	if result.TotalPages != 3 || result.PagesWithIssues != 2 {
		t.Errorf("TotalPages = %d PagesWithIssues = %d", result.TotalPages, result.PagesWithIssues)
	}
	var byCategory, bySeverity int
	for _, n := range result.IssuesByCategory {
		byCategory += n
	}
	for _, n := range result.IssuesBySeverity {
		bySeverity += n
	}
	if byCategory != result.TotalIssues || bySeverity != result.TotalIssues {
		t.Errorf("category sum %d, severity sum %d, total %d", byCategory, bySeverity, result.TotalIssues)
	}
	if len(result.IssuesByCategory) != len(models.Categories) || len(result.IssuesBySeverity) != len(models.Severities) {
		t.Errorf("missing aggregation keys: %v %v", result.IssuesByCategory, result.IssuesBySeverity)
	}

	again := e.Audit(docs)
	if !reflect.DeepEqual(result.Pages, again.Pages) {
		t.Error("repeated audit produced different page results")
	}

	e.Workers = 4
	concurrent := e.Audit(docs)
	if !reflect.DeepEqual(result.Pages, concurrent.Pages) {
		t.Error("concurrent audit produced different page results")
	}

	top := TopRules(result, 3)
	if len(top) == 0 || top[0].Value < top[len(top)-1].Value {
		t.Errorf("TopRules() = %v", top)
	}
}

func TestAuditEmpty(t *testing.T) {
	result := New(nil, nil).Audit(nil)
	if result.TotalPages != 0 || result.TotalIssues != 0 || result.PagesWithIssues != 0 {
		t.Errorf("result = %+v", result)
	}
	if len(result.Pages) != 0 {
		t.Errorf("Pages = %v", result.Pages)
	}
}

func TestAuditPageCache(t *testing.T) {
	calls := 0
	counting := rules.New("counting", models.CategoryStructure, "counts checks",
		func(page *models.ParsedPage, ctx *rules.Context) ([]models.ValidationIssue, error) {
			calls++
			return nil, nil
		})
	e := New(nil, nil, counting)
	e.Cache = caching.NewCache(8, 0)

	d := doc(compliantPage)
	first := e.AuditPage(d)
	second := e.AuditPage(d)
	if calls != 1 {
		t.Errorf("rule ran %d times, want 1", calls)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached result differs: %+v vs %+v", first, second)
	}

	d.Source = strings.Replace(compliantPage, "Button</h1>", "Buttons</h1>", 1)
	e.AuditPage(d)
	if calls != 2 {
		t.Errorf("edited page should be re-audited, rule ran %d times", calls)
	}
}

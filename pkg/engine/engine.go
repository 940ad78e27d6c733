// Package engine runs the validation rules over documents and scores the
// results.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dtnitsch/styleguide-audit/models"
	"github.com/dtnitsch/styleguide-audit/pkg/caching"
	"github.com/dtnitsch/styleguide-audit/pkg/markup"
	"github.com/dtnitsch/styleguide-audit/pkg/parser"
	"github.com/dtnitsch/styleguide-audit/pkg/rules"
)

// RuleParseError is the id of the issue reported for a document that does
// not parse.
const RuleParseError = "parse-error"

// RuleError records a rule that failed or panicked on one document.
type RuleError struct {
	RuleID   string
	FilePath string
	Err      error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %s on %s: %v", e.RuleID, e.FilePath, e.Err)
}

func (e *RuleError) Unwrap() error { return e.Err }

// Engine audits documents against an ordered rule set.
type Engine struct {
	Guide  *models.StyleGuide
	Logger *slog.Logger
	// Workers > 1 audits documents concurrently. Results keep input order.
	Workers int
	// Now stamps AuditResult.GeneratedAt.
	Now func() time.Time
	// Cache, when set, reuses results for unchanged documents. It must only
	// be shared between engines using the same guide and rules.
	Cache *caching.Cache

	parser *parser.Parser
	rules  []rules.Rule
}

// New returns an Engine running rs in order, or rules.Default() when rs is
// empty. A nil guide means the default style guide.
func New(guide *models.StyleGuide, logger *slog.Logger, rs ...rules.Rule) *Engine {
	if guide == nil {
		guide = models.DefaultStyleGuide()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if len(rs) == 0 {
		rs = rules.Default()
	}
	return &Engine{
		Guide:   guide,
		Logger:  logger,
		Workers: 1,
		Now:     time.Now,
		parser:  parser.New(guide, logger),
		rules:   rs,
	}
}

// Rules returns the registered rules in order.
func (e *Engine) Rules() []rules.Rule {
	return e.rules
}

// AuditPage parses one document, applies every rule and scores the result.
func (e *Engine) AuditPage(doc models.Document) models.PageAuditResult {
	if e.Cache != nil {
		if res, ok := e.Cache.Get(doc); ok {
			e.Logger.Debug("page unchanged, reusing result", "file", doc.FilePath)
			return res
		}
	}

	ctx := &rules.Context{FilePath: doc.FilePath, Component: doc.Component, Guide: e.Guide}

	var issues []models.ValidationIssue
	page, err := e.parser.Parse(doc.Source)
	if err != nil {
		e.Logger.Warn("document does not parse", "file", doc.FilePath, "error", err)
		issues = []models.ValidationIssue{parseErrorIssue(doc.FilePath, err)}
	} else {
		issues = e.ApplyRules(page, ctx)
	}

	score := Score(issues, len(e.rules))
	res := models.PageAuditResult{
		FilePath:   doc.FilePath,
		Component:  doc.Component,
		Issues:     issues,
		IssueCount: len(issues),
		Score:      score,
		Status:     Classify(len(issues), score),
	}
	if e.Cache != nil {
		e.Cache.Set(doc, res)
	}
	return res
}

// ApplyRules runs every rule in registration order. A failing rule is logged
// and contributes no issues.
func (e *Engine) ApplyRules(page *models.ParsedPage, ctx *rules.Context) []models.ValidationIssue {
	issues := []models.ValidationIssue{}
	for _, r := range e.rules {
		found, err := runRule(r, page, ctx)
		if err != nil {
			e.Logger.Error("rule failed", "rule_id", r.ID(), "file", ctx.FilePath, "error", err)
			continue
		}
		issues = append(issues, found...)
	}
	return issues
}

func runRule(r rules.Rule, page *models.ParsedPage, ctx *rules.Context) (issues []models.ValidationIssue, err error) {
	defer func() {
		if p := recover(); p != nil {
			issues = nil
			err = &RuleError{RuleID: r.ID(), FilePath: ctx.FilePath, Err: fmt.Errorf("panic: %v", p)}
		}
	}()
	issues, err = r.Check(page, ctx)
	if err != nil {
		return nil, &RuleError{RuleID: r.ID(), FilePath: ctx.FilePath, Err: err}
	}
	return issues, nil
}

func parseErrorIssue(path string, err error) models.ValidationIssue {
	is := models.ValidationIssue{
		RuleID:         RuleParseError,
		Category:       models.CategoryStructure,
		Severity:       models.SeverityError,
		Message:        fmt.Sprintf("Document could not be parsed: %v", err),
		FilePath:       path,
		Recommendation: "Fix the markup syntax so the page can be audited",
	}
	var syn *markup.SyntaxError
	if errors.As(err, &syn) {
		is.Line = syn.Line
	}
	return is
}

// Audit audits every document and aggregates the results in input order.
func (e *Engine) Audit(docs []models.Document) models.AuditResult {
	pages := e.auditAll(docs)

	result := models.NewAuditResult()
	result.GeneratedAt = e.Now()
	result.TotalPages = len(pages)
	for _, p := range pages {
		result.Pages = append(result.Pages, p)
		result.TotalIssues += p.IssueCount
		if p.IssueCount > 0 {
			result.PagesWithIssues++
		}
		for _, is := range p.Issues {
			result.IssuesByCategory[is.Category]++
			result.IssuesBySeverity[is.Severity]++
		}
	}
	e.Logger.Info("audit complete",
		"pages", result.TotalPages,
		"pages_with_issues", result.PagesWithIssues,
		"issues", result.TotalIssues)
	return result
}

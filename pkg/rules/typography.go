package rules

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/styleguide-audit/models"
	"github.com/dtnitsch/styleguide-audit/pkg/classlist"
)

const (
	RuleTypographyH1         = "typography-h1"
	RuleTypographyH2         = "typography-h2"
	RuleTypographyH3         = "typography-h3"
	RuleTypographyLead       = "typography-lead"
	RuleTypographyInlineCode = "typography-inline-code"
)

// Typography returns the heading, lead paragraph and inline code rules.
func Typography() []Rule {
	return []Rule{
		New(RuleTypographyH1, models.CategoryTypography, "Page title uses the display heading style", checkH1),
		New(RuleTypographyH2, models.CategoryTypography, "Section headings use the h2 style",
			headingLevel(2, RuleTypographyH2, models.SeverityWarning, func(g *models.StyleGuide) string { return g.Typography.H2 })),
		New(RuleTypographyH3, models.CategoryTypography, "Sub-section headings use the h3 style",
			headingLevel(3, RuleTypographyH3, models.SeverityWarning, func(g *models.StyleGuide) string { return g.Typography.H3 })),
		New(RuleTypographyLead, models.CategoryTypography, "Lead paragraph follows the title with the lead style", checkLead),
		New(RuleTypographyInlineCode, models.CategoryTypography, "Inline code uses the inline code style", checkInlineCode),
	}
}

// styleIssue reports an element whose classes lack required tokens. The fix
// swaps the conflicting tokens for the required set.
func styleIssue(id string, severity models.Severity, ctx *Context, element string, line, offset int, actual, required, what string) models.ValidationIssue {
	is := issue(id, models.CategoryTypography, severity, ctx)
	is.Line = line
	is.Offset = offset
	is.Element = element
	is.Attribute = "className"
	is.CurrentValue = models.StringPtr(strings.Join(classlist.Conflicting(actual, required), " "))
	is.Expected = required
	is.Message = fmt.Sprintf("%s is missing style tokens: %s", what, strings.Join(classlist.Missing(actual, required), " "))
	is.Recommendation = fmt.Sprintf("Set className to include %q", required)
	is.AutoFixable = true
	return is
}

func checkH1(page *models.ParsedPage, ctx *Context) ([]models.ValidationIssue, error) {
	required := ctx.Guide.Typography.H1
	h1s := page.HeadersAt(1)
	if len(h1s) == 0 {
		is := issue(RuleTypographyH1, models.CategoryTypography, models.SeverityError, ctx)
		is.Message = "Page has no h1 heading"
		is.Expected = required
		is.Recommendation = fmt.Sprintf("Add an <h1> naming the %s component as the page title", componentName(ctx))
		return []models.ValidationIssue{is}, nil
	}

	var issues []models.ValidationIssue
	for _, h := range h1s {
		if !classlist.HasAll(h.Classes, required) {
			issues = append(issues, styleIssue(RuleTypographyH1, models.SeverityError, ctx, "h1", h.Line, h.Offset, h.Classes, required,
				fmt.Sprintf("h1 %q", h.Text)))
		}
	}
	return issues, nil
}

func headingLevel(level int, id string, severity models.Severity, required func(*models.StyleGuide) string) CheckFunc {
	return func(page *models.ParsedPage, ctx *Context) ([]models.ValidationIssue, error) {
		req := required(ctx.Guide)
		if strings.TrimSpace(req) == "" {
			return nil, nil
		}
		var issues []models.ValidationIssue
		tag := fmt.Sprintf("h%d", level)
		for _, h := range page.HeadersAt(level) {
			if !classlist.HasAll(h.Classes, req) {
				issues = append(issues, styleIssue(id, severity, ctx, tag, h.Line, h.Offset, h.Classes, req,
					fmt.Sprintf("%s %q", tag, h.Text)))
			}
		}
		return issues, nil
	}
}

func checkLead(page *models.ParsedPage, ctx *Context) ([]models.ValidationIssue, error) {
	required := ctx.Guide.Typography.Lead
	if page.Lead == nil {
		is := issue(RuleTypographyLead, models.CategoryTypography, models.SeverityWarning, ctx)
		is.Message = "No lead paragraph directly follows the h1"
		is.Expected = fmt.Sprintf(`<p className=%q>`, required)
		is.Recommendation = "Add a one or two sentence <p> summary right after the page title"
		return []models.ValidationIssue{is}, nil
	}
	if classlist.HasAll(page.Lead.Classes, required) {
		return nil, nil
	}
	return []models.ValidationIssue{
		styleIssue(RuleTypographyLead, models.SeverityWarning, ctx, "p", page.Lead.Line, page.Lead.Offset, page.Lead.Classes, required, "Lead paragraph"),
	}, nil
}

func checkInlineCode(page *models.ParsedPage, ctx *Context) ([]models.ValidationIssue, error) {
	required := ctx.Guide.Typography.InlineCode
	var issues []models.ValidationIssue
	for _, c := range page.InlineCode {
		if !classlist.HasAll(c.Classes, required) {
			issues = append(issues, styleIssue(RuleTypographyInlineCode, models.SeverityInfo, ctx, "code", c.Line, c.Offset, c.Classes, required,
				fmt.Sprintf("Inline code %q", c.Content)))
		}
	}
	return issues, nil
}

func componentName(ctx *Context) string {
	if ctx.Component != "" {
		return ctx.Component
	}
	return "documented"
}

package rules

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/styleguide-audit/models"
	"github.com/dtnitsch/styleguide-audit/pkg/classlist"
)

const (
	RuleSpacingPageContainer  = "spacing-page-container"
	RuleSpacingPreviewPadding = "spacing-preview-padding"
)

// Spacing returns the layout rules.
func Spacing() []Rule {
	return []Rule{
		New(RuleSpacingPageContainer, models.CategorySpacing, "Root container spaces its sections", checkPageContainer),
		New(RuleSpacingPreviewPadding, models.CategorySpacing, "Preview containers use an accepted padding", checkPreviewPadding),
	}
}

func checkPageContainer(page *models.ParsedPage, ctx *Context) ([]models.ValidationIssue, error) {
	required := ctx.Guide.Spacing.PageContainer
	root := page.RootContainer
	if root == nil {
		is := issue(RuleSpacingPageContainer, models.CategorySpacing, models.SeverityError, ctx)
		is.Message = "Page does not return a root container element"
		is.Expected = fmt.Sprintf(`<div className=%q>`, required)
		is.Recommendation = "Wrap the page content in a single container element"
		return []models.ValidationIssue{is}, nil
	}
	if classlist.HasAll(root.Classes, required) {
		return nil, nil
	}

	is := issue(RuleSpacingPageContainer, models.CategorySpacing, models.SeverityWarning, ctx)
	is.Line = root.Line
	is.Offset = root.Offset
	is.Element = root.Tag
	is.Attribute = "className"
	is.CurrentValue = models.StringPtr(strings.Join(classlist.Conflicting(root.Classes, required), " "))
	is.Expected = required
	is.Message = fmt.Sprintf("Root <%s> is missing spacing tokens: %s", root.Tag, strings.Join(classlist.Missing(root.Classes, required), " "))
	is.Recommendation = fmt.Sprintf("Add %q to the root container", required)
	// fragments take no attributes
	is.AutoFixable = root.Tag != "fragment"
	if !is.AutoFixable {
		is.Recommendation = fmt.Sprintf("Replace the fragment with <div className=%q>", required)
	}
	return []models.ValidationIssue{is}, nil
}

func checkPreviewPadding(page *models.ParsedPage, ctx *Context) ([]models.ValidationIssue, error) {
	accepted := ctx.Guide.Spacing.PreviewPadding
	if len(accepted) == 0 {
		return nil, nil
	}
	var issues []models.ValidationIssue
	for _, c := range page.PreviewContainers {
		if classlist.HasAny(c.Classes, accepted) {
			continue
		}
		is := issue(RuleSpacingPreviewPadding, models.CategorySpacing, models.SeverityWarning, ctx)
		is.Line = c.Line
		is.Offset = c.Offset
		is.Element = c.Tag
		is.Attribute = "className"
		is.CurrentValue = models.StringPtr(strings.Join(classlist.Conflicting(c.Classes, accepted[0]), " "))
		is.Expected = accepted[0]
		is.Message = fmt.Sprintf("Preview container padding should be one of: %s", strings.Join(accepted, " | "))
		is.Recommendation = fmt.Sprintf("Use %q on the preview container", accepted[0])
		is.AutoFixable = true
		issues = append(issues, is)
	}
	return issues, nil
}

package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dtnitsch/styleguide-audit/models"
	"github.com/dtnitsch/styleguide-audit/pkg/classlist"
)

const (
	RulePreviewBorder          = "preview-border"
	RulePreviewRadius          = "preview-radius"
	RulePreviewHardcodedColors = "preview-hardcoded-colors"
	RulePreviewCodeOverflow    = "preview-code-overflow"
)

// hardcodedColors matches inline hex colors per attribute family, checked in
// this order.
var hardcodedColors = []struct {
	family  string
	pattern *regexp.Regexp
}{
	{"background", regexp.MustCompile(`(?:^|\s)(?:[\w-]+:)*bg-\[#(?:[0-9a-fA-F]{3}){1,2}\]`)},
	{"text", regexp.MustCompile(`(?:^|\s)(?:[\w-]+:)*text-\[#(?:[0-9a-fA-F]{3}){1,2}\]`)},
	{"border", regexp.MustCompile(`(?:^|\s)(?:[\w-]+:)*border-\[#(?:[0-9a-fA-F]{3}){1,2}\]`)},
}

// bareHex catches hex literals outside the three families, such as
// shadow-[0_0_4px_#ff6600].
var bareHex = regexp.MustCompile(`#(?:[0-9a-fA-F]{6}|[0-9a-fA-F]{3})\b`)

// Preview returns the preview container and code block rules.
func Preview() []Rule {
	return []Rule{
		New(RulePreviewBorder, models.CategoryPreview, "Preview containers use the theme border", checkPreviewBorder),
		New(RulePreviewRadius, models.CategoryPreview, "Preview containers use the standard corner radius", checkPreviewRadius),
		New(RulePreviewHardcodedColors, models.CategoryPreview, "Preview containers use theme colors, not hex literals", checkHardcodedColors),
		New(RulePreviewCodeOverflow, models.CategoryPreview, "Code blocks scroll horizontally", checkCodeOverflow),
	}
}

func containerIssue(id string, ctx *Context, c models.Container, required, msg string) models.ValidationIssue {
	is := issue(id, models.CategoryPreview, models.SeverityWarning, ctx)
	is.Line = c.Line
	is.Offset = c.Offset
	is.Element = c.Tag
	is.Attribute = "className"
	is.CurrentValue = models.StringPtr(strings.Join(classlist.Conflicting(c.Classes, required), " "))
	is.Expected = required
	is.Message = fmt.Sprintf("%s: missing %s", msg, strings.Join(classlist.Missing(c.Classes, required), " "))
	is.Recommendation = fmt.Sprintf("Add %q to the preview container", required)
	is.AutoFixable = true
	return is
}

func checkPreviewBorder(page *models.ParsedPage, ctx *Context) ([]models.ValidationIssue, error) {
	required := "border " + ctx.Guide.Colors.Border
	var issues []models.ValidationIssue
	for _, c := range page.PreviewContainers {
		if !classlist.HasAll(c.Classes, required) {
			issues = append(issues, containerIssue(RulePreviewBorder, ctx, c, required, "Preview container border"))
		}
	}
	return issues, nil
}

func checkPreviewRadius(page *models.ParsedPage, ctx *Context) ([]models.ValidationIssue, error) {
	required := ctx.Guide.Spacing.PreviewRadius
	var issues []models.ValidationIssue
	for _, c := range page.PreviewContainers {
		if !classlist.HasAll(c.Classes, required) {
			issues = append(issues, containerIssue(RulePreviewRadius, ctx, c, required, "Preview container radius"))
		}
	}
	return issues, nil
}

func checkHardcodedColors(page *models.ParsedPage, ctx *Context) ([]models.ValidationIssue, error) {
	var issues []models.ValidationIssue
	for _, c := range page.PreviewContainers {
		found := false
		for _, hc := range hardcodedColors {
			m := hc.pattern.FindString(c.Classes)
			if m == "" {
				continue
			}
			found = true
			issues = append(issues, colorIssue(ctx, c, hc.family, strings.TrimSpace(m), themeToken(hc.family, ctx.Guide.Colors)))
		}
		// a literal already reported through its family is not reported twice
		if !found {
			if m := bareHex.FindString(c.Classes); m != "" {
				issues = append(issues, colorIssue(ctx, c, "inline", m, ctx.Guide.Colors.Accent))
			}
		}
	}
	return issues, nil
}

func colorIssue(ctx *Context, c models.Container, family, literal, expected string) models.ValidationIssue {
	is := issue(RulePreviewHardcodedColors, models.CategoryPreview, models.SeverityError, ctx)
	is.Line = c.Line
	is.Offset = c.Offset
	is.Element = c.Tag
	is.Attribute = "className"
	is.CurrentValue = models.StringPtr(literal)
	is.Expected = expected
	is.Message = fmt.Sprintf("Hardcoded %s color %s in preview container", family, literal)
	is.Recommendation = fmt.Sprintf("Replace it with a theme token such as %s", expected)
	return is
}

func themeToken(family string, colors models.Colors) string {
	switch family {
	case "background":
		return colors.Background
	case "text":
		return "text-" + colors.Accent
	}
	return colors.Border
}

func checkCodeOverflow(page *models.ParsedPage, ctx *Context) ([]models.ValidationIssue, error) {
	required := ctx.Guide.Spacing.CodeOverflow
	var issues []models.ValidationIssue
	for _, cb := range page.CodeBlocks {
		if classlist.HasAll(cb.Classes, required) {
			continue
		}
		is := issue(RulePreviewCodeOverflow, models.CategoryPreview, models.SeverityWarning, ctx)
		is.Line = cb.Line
		is.Offset = cb.Offset
		is.Element = "pre"
		is.Attribute = "className"
		is.CurrentValue = models.StringPtr(strings.Join(classlist.Conflicting(cb.Classes, required), " "))
		is.Expected = required
		is.Message = fmt.Sprintf("Code block is missing %s", required)
		is.Recommendation = fmt.Sprintf("Add %q to the <pre> so long lines scroll", required)
		is.AutoFixable = true
		issues = append(issues, is)
	}
	return issues, nil
}

package rules

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/styleguide-audit/models"
)

const (
	RuleStructureMinExamples        = "structure-min-examples"
	RuleStructurePlaygroundFeatures = "structure-playground-features"
	RuleStructureSectionOrder       = "structure-section-order"
	RuleStructureHeader             = "structure-header"
	RuleStructureExamplePosition    = "structure-example-position"
	RuleStructureRequiredSections   = "structure-required-sections"
)

// Structure returns the document layout rules. None of them is auto-fixable:
// moving or writing sections needs an author.
func Structure() []Rule {
	return []Rule{
		New(RuleStructureMinExamples, models.CategoryStructure, "Page has enough interactive examples", checkMinExamples),
		New(RuleStructurePlaygroundFeatures, models.CategoryExamples, "First example exposes preview, code and api", checkPlaygroundFeatures),
		New(RuleStructureSectionOrder, models.CategoryStructure, "Sections follow the canonical order", checkSectionOrder),
		New(RuleStructureHeader, models.CategoryStructure, "Page opens with a header holding the h1 and lead", checkHeaderBlock),
		New(RuleStructureExamplePosition, models.CategoryExamples, "First example comes before the first h2", checkExamplePosition),
		New(RuleStructureRequiredSections, models.CategoryStructure, "Required sections are present", checkRequiredSections),
	}
}

func checkMinExamples(page *models.ParsedPage, ctx *Context) ([]models.ValidationIssue, error) {
	found, min := len(page.ComponentPlaygrounds), ctx.Guide.Structure.MinExamples
	if found >= min {
		return nil, nil
	}
	is := issue(RuleStructureMinExamples, models.CategoryStructure, models.SeverityWarning, ctx)
	is.Message = fmt.Sprintf("Found %d interactive examples, at least %d required (%d missing)", found, min, min-found)
	is.CurrentValue = models.StringPtr(fmt.Sprintf("%d", found))
	is.Expected = fmt.Sprintf("%d", min)
	is.Recommendation = fmt.Sprintf("Add %d more interactive example blocks", min-found)
	return []models.ValidationIssue{is}, nil
}

func checkPlaygroundFeatures(page *models.ParsedPage, ctx *Context) ([]models.ValidationIssue, error) {
	if len(page.ComponentPlaygrounds) == 0 {
		return nil, nil
	}
	first := page.ComponentPlaygrounds[0]
	var missing []string
	if !first.HasPreview {
		missing = append(missing, "preview")
	}
	if !first.HasCode {
		missing = append(missing, "code")
	}
	if !first.HasAPI {
		missing = append(missing, "api")
	}
	if len(missing) == 0 {
		return nil, nil
	}
	is := issue(RuleStructurePlaygroundFeatures, models.CategoryExamples, models.SeverityWarning, ctx)
	is.Line = first.Line
	is.Message = fmt.Sprintf("First interactive example is missing: %s", strings.Join(missing, ", "))
	is.Expected = "preview, code, api"
	is.Recommendation = fmt.Sprintf("Pass %s to the first example block", strings.Join(missing, ", "))
	return []models.ValidationIssue{is}, nil
}

// checkSectionOrder reports only the first section that goes backwards in
// the canonical order. Sections of types outside the order are ignored.
func checkSectionOrder(page *models.ParsedPage, ctx *Context) ([]models.ValidationIssue, error) {
	order := ctx.Guide.Structure.SectionOrder
	index := make(map[models.SectionType]int, len(order))
	for i, t := range order {
		index[t] = i
	}

	last := -1
	var lastType models.SectionType
	for _, s := range page.Sections {
		idx, ok := index[s.Type]
		if !ok {
			continue
		}
		if idx < last {
			is := issue(RuleStructureSectionOrder, models.CategoryStructure, models.SeverityWarning, ctx)
			is.Line = s.StartLine
			is.Message = fmt.Sprintf("Section %q (%s) should come before %s", s.Title, s.Type, lastType)
			is.CurrentValue = models.StringPtr(string(s.Type))
			is.Expected = joinSections(order)
			is.Recommendation = "Reorder the sections to match the canonical order"
			return []models.ValidationIssue{is}, nil
		}
		last, lastType = idx, s.Type
	}
	return nil, nil
}

func checkHeaderBlock(page *models.ParsedPage, ctx *Context) ([]models.ValidationIssue, error) {
	var msg string
	switch {
	case len(page.Headers) == 0 || len(page.HeadersAt(1)) == 0:
		msg = "Page has no h1 to open the header section"
	case page.Headers[0].Level != 1:
		msg = fmt.Sprintf("Page begins with an h%d instead of the h1", page.Headers[0].Level)
	case !page.HeaderSection:
		msg = "The h1 is not inside a <header> at the top of the root container"
	case page.Lead == nil:
		msg = "The header section has no lead paragraph after the h1"
	default:
		return nil, nil
	}
	is := issue(RuleStructureHeader, models.CategoryStructure, models.SeverityWarning, ctx)
	if h, ok := page.FirstHeader(1); ok {
		is.Line = h.Line
	}
	is.Message = msg
	is.Expected = "<header><h1/><p/></header> as the first child of the root container"
	is.Recommendation = "Open the page with a <header> holding the h1 and the lead paragraph"
	return []models.ValidationIssue{is}, nil
}

func checkExamplePosition(page *models.ParsedPage, ctx *Context) ([]models.ValidationIssue, error) {
	h2, ok := page.FirstHeader(2)
	if !ok || len(page.ComponentPlaygrounds) == 0 {
		return nil, nil
	}
	first := page.ComponentPlaygrounds[0]
	if first.Line < h2.Line {
		return nil, nil
	}
	is := issue(RuleStructureExamplePosition, models.CategoryExamples, models.SeverityInfo, ctx)
	is.Line = first.Line
	is.Message = fmt.Sprintf("First interactive example (line %d) comes after the first h2 %q (line %d)", first.Line, h2.Text, h2.Line)
	is.Expected = "an interactive example before the first h2"
	is.Recommendation = "Show a live example right after the header section"
	return []models.ValidationIssue{is}, nil
}

func checkRequiredSections(page *models.ParsedPage, ctx *Context) ([]models.ValidationIssue, error) {
	present := make(map[models.SectionType]bool, len(page.Sections))
	for _, s := range page.Sections {
		present[s.Type] = true
	}
	var missing []models.SectionType
	for _, t := range ctx.Guide.Structure.RequiredSections {
		if !present[t] {
			missing = append(missing, t)
		}
	}
	if len(missing) == 0 {
		return nil, nil
	}
	is := issue(RuleStructureRequiredSections, models.CategoryStructure, models.SeverityWarning, ctx)
	is.Message = fmt.Sprintf("Missing required sections: %s", joinSections(missing))
	is.Expected = joinSections(ctx.Guide.Structure.RequiredSections)
	is.Recommendation = "Add a heading for each missing section"
	return []models.ValidationIssue{is}, nil
}

func joinSections(types []models.SectionType) string {
	s := make([]string, len(types))
	for i, t := range types {
		s[i] = string(t)
	}
	return strings.Join(s, ", ")
}

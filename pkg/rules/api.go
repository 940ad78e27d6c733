package rules

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/styleguide-audit/models"
)

const (
	RuleAPIPropsTable       = "api-props-table"
	RuleAPIPropCompleteness = "api-prop-completeness"
)

// propFields every prop record must fill in.
var propFields = []string{"name", "type", "default", "description"}

// API returns the props documentation rules.
func API() []Rule {
	return []Rule{
		New(RuleAPIPropsTable, models.CategoryAPI, "Page documents its props in a table", checkPropsTable),
		New(RuleAPIPropCompleteness, models.CategoryAPI, "Every prop has a name, type, default and description", checkPropCompleteness),
	}
}

func checkPropsTable(page *models.ParsedPage, ctx *Context) ([]models.ValidationIssue, error) {
	if len(page.PropsTables) > 0 {
		return nil, nil
	}
	is := issue(RuleAPIPropsTable, models.CategoryAPI, models.SeverityError, ctx)
	is.Message = "No props table found"
	is.Expected = "<PropsTable props={[...]} />"
	is.Recommendation = fmt.Sprintf("Document the %s props in an API section", componentName(ctx))
	return []models.ValidationIssue{is}, nil
}

func checkPropCompleteness(page *models.ParsedPage, ctx *Context) ([]models.ValidationIssue, error) {
	var issues []models.ValidationIssue
	for _, table := range page.PropsTables {
		for i, prop := range table.Props {
			var missing []string
			for _, f := range propFields {
				if strings.TrimSpace(prop[f]) == "" {
					missing = append(missing, f)
				}
			}
			if len(missing) == 0 {
				continue
			}
			label := fmt.Sprintf("#%d", i+1)
			if name := strings.TrimSpace(prop["name"]); name != "" {
				label = fmt.Sprintf("%q", name)
			}
			is := issue(RuleAPIPropCompleteness, models.CategoryAPI, models.SeverityWarning, ctx)
			is.Line = table.Line
			is.Message = fmt.Sprintf("Prop %s is missing: %s", label, strings.Join(missing, ", "))
			is.Expected = strings.Join(propFields, ", ")
			is.Recommendation = fmt.Sprintf("Fill in %s for prop %s", strings.Join(missing, ", "), label)
			issues = append(issues, is)
		}
	}
	return issues, nil
}

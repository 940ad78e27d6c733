// Package rules holds the style-guide validation rules. Each rule is a pure
// function of the structural model and the audit context.
package rules

import (
	"github.com/dtnitsch/styleguide-audit/models"
)

// Context is what a rule knows about the page besides its structure.
type Context struct {
	FilePath  string
	Component string
	Guide     *models.StyleGuide
}

// Rule validates one aspect of a page.
type Rule interface {
	ID() string
	Category() models.Category
	Description() string
	Check(page *models.ParsedPage, ctx *Context) ([]models.ValidationIssue, error)
}

// CheckFunc is the body of a rule.
type CheckFunc func(page *models.ParsedPage, ctx *Context) ([]models.ValidationIssue, error)

type funcRule struct {
	id          string
	category    models.Category
	description string
	check       CheckFunc
}

// New wraps a CheckFunc as a Rule.
func New(id string, category models.Category, description string, check CheckFunc) Rule {
	return &funcRule{id: id, category: category, description: description, check: check}
}

func (r *funcRule) ID() string                { return r.id }
func (r *funcRule) Category() models.Category { return r.category }
func (r *funcRule) Description() string       { return r.description }

func (r *funcRule) Check(page *models.ParsedPage, ctx *Context) ([]models.ValidationIssue, error) {
	return r.check(page, ctx)
}

// Default returns every built-in rule in registration order.
func Default() []Rule {
	var all []Rule
	all = append(all, Typography()...)
	all = append(all, Spacing()...)
	all = append(all, Structure()...)
	all = append(all, API()...)
	all = append(all, Preview()...)
	return all
}

// issue starts an issue for rule id with the page's file path filled in.
func issue(id string, category models.Category, severity models.Severity, ctx *Context) models.ValidationIssue {
	return models.ValidationIssue{
		RuleID:   id,
		Category: category,
		Severity: severity,
		FilePath: ctx.FilePath,
	}
}

// Package fixer applies the corrections carried by auto-fixable issues to a
// document's source. Every issue is fixed in its own transaction.
package fixer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dtnitsch/styleguide-audit/models"
	"github.com/dtnitsch/styleguide-audit/pkg/classlist"
	"github.com/dtnitsch/styleguide-audit/pkg/markup"
)

var (
	// ErrElementNotFound is returned when the issue's element is not in the
	// document.
	ErrElementNotFound = errors.New("element not found")
	// ErrNotFixable is recorded for issues that are not auto-fixable.
	ErrNotFixable = errors.New("issue is not auto-fixable")
	// ErrInvalidFix is returned when a mutation leaves the text unchanged or
	// unparseable.
	ErrInvalidFix = errors.New("fix did not produce a valid change")
)

// Fixer rewrites attribute values in document source.
type Fixer struct {
	Logger *slog.Logger
	Ledger *Ledger
}

// New returns a Fixer recording attempts in ledger. A nil ledger gets a
// fresh one.
func New(logger *slog.Logger, ledger *Ledger) *Fixer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if ledger == nil {
		ledger = NewLedger()
	}
	return &Fixer{Logger: logger, Ledger: ledger}
}

// Fix applies every auto-fixable issue in order. A failed fix is rolled back
// and leaves earlier commits in place.
//
// All fixes edit one parse of the original source, so the lines and offsets
// the issues carry stay valid however earlier fixes reshaped the text.
func (f *Fixer) Fix(doc models.Document, issues []models.ValidationIssue) models.FixResult {
	result := models.FixResult{
		FilePath: doc.FilePath,
		Fixed:    []models.ValidationIssue{},
		Unfixed:  []models.ValidationIssue{},
	}
	working := doc.Source
	failed := 0

	tree, parseErr := markup.Parse(doc.Source)
	for _, is := range issues {
		if !is.AutoFixable {
			result.Unfixed = append(result.Unfixed, is)
			continue
		}

		var after string
		err := parseErr
		if err != nil {
			err = fmt.Errorf("parse before fix: %w", err)
		} else {
			checkpoint := tree.Checkpoint()
			if err = f.apply(tree, is); err == nil {
				after = tree.Render()
				if !ValidateFix(working, after) {
					err = ErrInvalidFix
				}
			}
			if err != nil {
				tree.Rollback(checkpoint)
			}
		}
		if err != nil {
			failed++
			f.Logger.Warn("fix rolled back", "file", doc.FilePath, "rule_id", is.RuleID, "line", is.Line, "error", err)
			f.Ledger.Record(doc.FilePath, models.FixAttempt{Issue: is, Error: err.Error()})
			result.Unfixed = append(result.Unfixed, is)
			continue
		}

		working = after
		f.Logger.Debug("fix committed", "file", doc.FilePath, "rule_id", is.RuleID, "line", is.Line)
		f.Ledger.Record(doc.FilePath, models.FixAttempt{Issue: is, Success: true})
		result.Fixed = append(result.Fixed, is)
	}

	result.Content = working
	result.Success = len(result.Fixed) > 0 && failed == 0
	return result
}

// apply records the edit for one issue on doc.
func (f *Fixer) apply(doc *markup.Document, is models.ValidationIssue) error {
	// section moves and wrapper insertion are not automated
	if is.Category == models.CategoryStructure || is.Category == models.CategoryExamples || is.Attribute == "" {
		return nil
	}

	el := locate(doc, is)
	if el == nil {
		return fmt.Errorf("%s at line %d: %w", elementName(is), is.Line, ErrElementNotFound)
	}

	name := is.Attribute
	if name == "className" {
		name = el.ClassAttr()
	}
	current, ok := el.AttrValue(name)
	value := is.Expected
	if ok && is.CurrentValue != nil {
		value = classlist.Merge(current, *is.CurrentValue, is.Expected)
	}
	return doc.SetAttr(el, name, value)
}

// locate finds the issue's element: by the offset of its opening tag when
// known, otherwise by the line its opening tag spans. An element whose tag
// differs from the issue's is never returned.
func locate(doc *markup.Document, is models.ValidationIssue) *markup.Element {
	if is.Offset > 0 {
		el := doc.ElementAtOffset(is.Offset)
		if el == nil || (is.Element != "" && !sameTag(el, is.Element)) {
			return nil
		}
		return el
	}
	if is.Line <= 0 {
		return nil
	}
	candidates := doc.ElementsAt(is.Line)
	if is.Element == "" {
		if len(candidates) > 0 {
			return candidates[0]
		}
		return nil
	}
	for _, el := range candidates {
		if sameTag(el, is.Element) {
			return el
		}
	}
	return nil
}

// sameTag compares an element with an issue's tag name. Root container
// issues name fragments "fragment".
func sameTag(el *markup.Element, tag string) bool {
	if el.IsFragment() {
		return tag == "fragment"
	}
	return el.Name == tag
}

func elementName(is models.ValidationIssue) string {
	if is.Element == "" {
		return "element"
	}
	return "<" + is.Element + ">"
}

// ValidateFix reports whether after differs from before and still parses.
func ValidateFix(before, after string) bool {
	if before == after {
		return false
	}
	_, err := markup.Parse(after)
	return err == nil
}

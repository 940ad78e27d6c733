package engine

import (
	"math"

	"github.com/dtnitsch/styleguide-audit/models"
	"github.com/dtnitsch/styleguide-audit/pkg/tally"
)

// reviewThreshold is the lowest score that still only needs review.
const reviewThreshold = 80

// Score is the 0-100 compliance score: the severity-weighted issue count
// relative to the number of rules, inverted.
func Score(issues []models.ValidationIssue, ruleCount int) int {
	var weighted float64
	for _, is := range issues {
		weighted += is.Severity.Weight()
	}
	var ratio float64
	switch {
	case weighted == 0:
		ratio = 0
	case ruleCount <= 0:
		ratio = 1
	default:
		ratio = math.Min(math.Max(weighted/float64(ruleCount), 0), 1)
	}
	score := int(math.Round((1 - ratio) * 100))
	return max(0, min(100, score))
}

// Classify maps an issue count and score to a page status.
func Classify(issueCount, score int) models.Status {
	switch {
	case issueCount == 0:
		return models.StatusCompliant
	case score >= reviewThreshold:
		return models.StatusNeedsReview
	}
	return models.StatusNeedsFixes
}

// TopRules returns the n rule ids with the most issues across the result.
func TopRules(result models.AuditResult, n int) []tally.Count {
	intermediate := make([]map[string]int, 0, len(result.Pages))
	for _, p := range result.Pages {
		intermediate = append(intermediate, tally.Map(p.Issues))
	}
	return tally.Top(tally.Reduce(intermediate), n)
}

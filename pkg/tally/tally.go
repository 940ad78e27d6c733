// Package tally counts rule hits across pages and ranks them.
package tally

import "github.com/dtnitsch/styleguide-audit/models"

// Map counts the issues of a single page by rule id.
func Map(issues []models.ValidationIssue) map[string]int {
	counts := make(map[string]int)
	for _, is := range issues {
		counts[is.RuleID]++
	}
	return counts
}

// Reduce aggregates per-page counts into a single map.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for key, count := range counts {
			finalResults[key] += count
		}
	}

	return finalResults
}

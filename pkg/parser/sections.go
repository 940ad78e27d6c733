package parser

import (
	"math"
	"sort"
	"strings"

	"github.com/dtnitsch/styleguide-audit/models"
)

// sectionKeywords is checked in order; the first match wins.
var sectionKeywords = []struct {
	typ      models.SectionType
	keywords []string
}{
	{models.SectionBasicUsage, []string{"basic", "usage"}},
	{models.SectionVariants, []string{"variant"}},
	{models.SectionAPI, []string{"api", "props"}},
	{models.SectionAccessibility, []string{"accessib", "a11y"}},
	{models.SectionExamples, []string{"example"}},
}

// classifySection infers a section type from its heading.
func classifySection(h models.Header) models.SectionType {
	if h.Level == 1 {
		return models.SectionHeader
	}
	text := strings.ToLower(h.Text)
	for _, sk := range sectionKeywords {
		for _, kw := range sk.keywords {
			if strings.Contains(text, kw) {
				return sk.typ
			}
		}
	}
	return models.SectionUnknown
}

// inferSections turns headers into sections. A section ends where the next
// header starts; the last one never ends.
func inferSections(headers []models.Header) []models.Section {
	sorted := make([]models.Header, len(headers))
	copy(sorted, headers)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Line < sorted[j].Line })

	sections := make([]models.Section, 0, len(sorted))
	for i, h := range sorted {
		end := math.MaxInt
		if i+1 < len(sorted) {
			end = sorted[i+1].Line
		}
		sections = append(sections, models.Section{
			Type:      classifySection(h),
			Title:     h.Text,
			StartLine: h.Line,
			EndLine:   end,
		})
	}
	return sections
}

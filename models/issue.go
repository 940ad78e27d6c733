package models

// Category groups validation rules.
type Category string

const (
	CategoryTypography Category = "typography"
	CategorySpacing    Category = "spacing"
	CategoryStructure  Category = "structure"
	CategoryAPI        Category = "api"
	CategoryExamples   Category = "examples"
	CategoryPreview    Category = "preview"
)

// Categories lists every category in report order.
var Categories = []Category{
	CategoryTypography,
	CategorySpacing,
	CategoryStructure,
	CategoryAPI,
	CategoryExamples,
	CategoryPreview,
}

// Severity of a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Severities lists every severity, most severe first.
var Severities = []Severity{SeverityError, SeverityWarning, SeverityInfo}

// Weight is the score penalty for one issue of this severity.
func (s Severity) Weight() float64 {
	switch s {
	case SeverityError:
		return 1.0
	case SeverityWarning:
		return 0.5
	case SeverityInfo:
		return 0.25
	}
	return 0
}

// ValidationIssue is a single deviation from the style guide.
//
// Line is zero when the issue is about something missing from the page.
// Offset is the byte offset of the element's opening tag in the audited
// source; it tells apart elements sharing a line.
// CurrentValue, when set, names the tokens a fix should remove before
// appending Expected; nil means a fix replaces the whole attribute value.
type ValidationIssue struct {
	RuleID         string   `json:"rule_id" yaml:"rule_id"`
	Category       Category `json:"category" yaml:"category"`
	Severity       Severity `json:"severity" yaml:"severity"`
	Message        string   `json:"message" yaml:"message"`
	FilePath       string   `json:"file_path" yaml:"file_path"`
	Line           int      `json:"line,omitempty" yaml:"line,omitempty"`
	Offset         int      `json:"offset,omitempty" yaml:"offset,omitempty"`
	Element        string   `json:"element,omitempty" yaml:"element,omitempty"`
	Attribute      string   `json:"attribute,omitempty" yaml:"attribute,omitempty"`
	CurrentValue   *string  `json:"current_value,omitempty" yaml:"current_value,omitempty"`
	Expected       string   `json:"expected" yaml:"expected"`
	Recommendation string   `json:"recommendation" yaml:"recommendation"`
	AutoFixable    bool     `json:"auto_fixable" yaml:"auto_fixable"`
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// Package models defines data structures for configuration and parsing.
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Typography holds the required class tokens per text element.
type Typography struct {
	H1         string `yaml:"h1"`
	H2         string `yaml:"h2"`
	H3         string `yaml:"h3"`
	Lead       string `yaml:"lead"`
	InlineCode string `yaml:"inline_code"`
}

// Spacing holds required or acceptable layout tokens per container kind.
type Spacing struct {
	PageContainer  string   `yaml:"page_container"`
	Section        string   `yaml:"section"`
	PreviewPadding []string `yaml:"preview_padding"` // any one set is acceptable
	PreviewRadius  string   `yaml:"preview_radius"`
	CodeOverflow   string   `yaml:"code_overflow"`
}

// Colors holds theme token names.
type Colors struct {
	Accent     string `yaml:"accent"`
	Border     string `yaml:"border"`
	Background string `yaml:"background"`
}

// Structure holds document layout requirements.
type Structure struct {
	MinExamples          int           `yaml:"min_examples"`
	SectionOrder         []SectionType `yaml:"section_order"`
	RequiredSections     []SectionType `yaml:"required_sections"`
	PlaygroundComponents []string      `yaml:"playground_components"`
	PropsTableComponents []string      `yaml:"props_table_components"`
}

// StyleGuide is the read-only configuration every rule checks against.
type StyleGuide struct {
	Typography Typography `yaml:"typography"`
	Spacing    Spacing    `yaml:"spacing"`
	Colors     Colors     `yaml:"colors"`
	Structure  Structure  `yaml:"structure"`
}

// DefaultStyleGuide returns the built-in style guide.
func DefaultStyleGuide() *StyleGuide {
	return &StyleGuide{
		Typography: Typography{
			H1:         "text-3xl md:text-4xl lg:text-5xl font-display text-ghost-orange tracking-wide",
			H2:         "text-2xl md:text-3xl font-display text-ghost-orange tracking-wide",
			H3:         "text-xl font-semibold text-ghost-white",
			Lead:       "text-lg text-ghost-gray leading-relaxed",
			InlineCode: "font-mono text-sm text-ghost-orange bg-ghost-black/50 px-1.5 py-0.5 rounded",
		},
		Spacing: Spacing{
			PageContainer:  "space-y-12",
			Section:        "space-y-6",
			PreviewPadding: []string{"p-6", "p-8", "px-6 py-8"},
			PreviewRadius:  "rounded-lg",
			CodeOverflow:   "overflow-x-auto",
		},
		Colors: Colors{
			Accent:     "ghost-orange",
			Border:     "border-ghost-orange/30",
			Background: "bg-ghost-black",
		},
		Structure: Structure{
			MinExamples: 3,
			SectionOrder: []SectionType{
				SectionHeader,
				SectionBasicUsage,
				SectionVariants,
				SectionExamples,
				SectionAPI,
				SectionAccessibility,
			},
			RequiredSections:     []SectionType{SectionHeader, SectionBasicUsage, SectionAPI},
			PlaygroundComponents: []string{"ComponentPlayground", "Playground", "Docs.Playground"},
			PropsTableComponents: []string{"PropsTable", "ApiTable", "Docs.PropsTable"},
		},
	}
}

// LoadStyleGuide reads a YAML style guide. Fields left unset in the file keep
// their default values.
func LoadStyleGuide(path string) (*StyleGuide, error) {
	guide := DefaultStyleGuide()
	if path == "" {
		return guide, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read style guide: %w", err)
	}
	if err := yaml.Unmarshal(data, guide); err != nil {
		return nil, fmt.Errorf("failed to parse style guide %s: %w", path, err)
	}
	if guide.Structure.MinExamples < 0 {
		return nil, fmt.Errorf("structure.min_examples must not be negative, got %d", guide.Structure.MinExamples)
	}
	return guide, nil
}

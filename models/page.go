package models

// SectionType is the inferred kind of a documentation section.
type SectionType string

const (
	SectionHeader        SectionType = "header"
	SectionBasicUsage    SectionType = "basic-usage"
	SectionVariants      SectionType = "variants"
	SectionAPI           SectionType = "api"
	SectionAccessibility SectionType = "accessibility"
	SectionExamples      SectionType = "examples"
	SectionUnknown       SectionType = "unknown"
)

// Header is a heading element (h1-h6) found in the page markup.
type Header struct {
	Level   int    `json:"level"`
	Text    string `json:"text"`
	Classes string `json:"classes"`
	Line    int    `json:"line"`
	Offset  int    `json:"offset"`
}

// Section spans from its heading to the next heading.
type Section struct {
	Type      SectionType `json:"type"`
	Title     string      `json:"title"`
	StartLine int         `json:"start_line"`
	EndLine   int         `json:"end_line"`
}

// Playground is an interactive example block.
type Playground struct {
	Line       int             `json:"line"`
	HasPreview bool            `json:"has_preview"`
	HasCode    bool            `json:"has_code"`
	HasAPI     bool            `json:"has_api"`
	Attributes map[string]bool `json:"attributes"`
}

// PropsTable is a data table of prop records.
type PropsTable struct {
	Line  int                 `json:"line"`
	Props []map[string]string `json:"props"`
}

// CodeSpan is a code element, either block-level (inside <pre>) or inline.
type CodeSpan struct {
	Line    int    `json:"line"`
	Offset  int    `json:"offset"`
	Classes string `json:"classes"`
	Content string `json:"content"`
}

// Container is a generic styled wrapper element.
type Container struct {
	Tag     string `json:"tag"`
	Classes string `json:"classes"`
	Line    int    `json:"line"`
	Offset  int    `json:"offset"`
}

// Paragraph is the lead paragraph that follows the page title.
type Paragraph struct {
	Text    string `json:"text"`
	Classes string `json:"classes"`
	Line    int    `json:"line"`
	Offset  int    `json:"offset"`
}

// ParsedPage is the structural model of one documentation page.
// It is computed once per parse and never mutated afterwards.
type ParsedPage struct {
	Headers              []Header     `json:"headers"`
	Sections             []Section    `json:"sections"`
	ComponentPlaygrounds []Playground `json:"component_playgrounds"`
	PropsTables          []PropsTable `json:"props_tables"`
	CodeBlocks           []CodeSpan   `json:"code_blocks"`
	InlineCode           []CodeSpan   `json:"inline_code"`
	PreviewContainers    []Container  `json:"preview_containers"`
	RootContainer        *Container   `json:"root_container,omitempty"`

	// Lead is the first paragraph element following the h1, if any.
	Lead *Paragraph `json:"lead,omitempty"`
	// HeaderSection reports whether the h1 sits inside a <header> that is the
	// first element of the root container.
	HeaderSection bool `json:"header_section"`
}

// HeadersAt returns the headers of the given level, in document order.
func (p *ParsedPage) HeadersAt(level int) []Header {
	var out []Header
	for _, h := range p.Headers {
		if h.Level == level {
			out = append(out, h)
		}
	}
	return out
}

// FirstHeader returns the first header of the given level.
func (p *ParsedPage) FirstHeader(level int) (Header, bool) {
	for _, h := range p.Headers {
		if h.Level == level {
			return h, true
		}
	}
	return Header{}, false
}

package parser

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/styleguide-audit/models"
	"github.com/dtnitsch/styleguide-audit/pkg/markup"
)

// propsAttrs are the attributes a props table may receive its records in.
var propsAttrs = []string{"props", "data", "rows"}

// Parser extracts the structural model of a documentation page.
type Parser struct {
	Guide  *models.StyleGuide
	Logger *slog.Logger
}

// New returns a Parser that recognises the component names in guide.
func New(guide *models.StyleGuide, logger *slog.Logger) *Parser {
	if guide == nil {
		guide = models.DefaultStyleGuide()
	}
	return &Parser{Guide: guide, Logger: logger}
}

// Parse builds the syntax tree for src and extracts its structural model.
// It only fails on malformed markup.
func (p *Parser) Parse(src string) (*models.ParsedPage, error) {
	doc, err := markup.Parse(src)
	if err != nil {
		return nil, err
	}
	return p.Extract(doc), nil
}

// Extract computes the structural model of an already parsed document.
func (p *Parser) Extract(doc *markup.Document) *models.ParsedPage {
	d := project(doc.Root)
	page := &models.ParsedPage{
		Headers:              []models.Header{},
		ComponentPlaygrounds: []models.Playground{},
		PropsTables:          []models.PropsTable{},
		CodeBlocks:           []models.CodeSpan{},
		InlineCode:           []models.CodeSpan{},
		PreviewContainers:    []models.Container{},
	}

	page.Headers = extractHeaders(d)
	page.Sections = inferSections(page.Headers)
	page.ComponentPlaygrounds = extractPlaygrounds(d, p.Guide.Structure.PlaygroundComponents)
	page.PropsTables = p.extractPropsTables(d, doc)
	page.CodeBlocks, page.InlineCode = extractCode(d)
	page.PreviewContainers = extractPreviewContainers(d)
	page.RootContainer = rootContainer(doc.Root)
	page.Lead, page.HeaderSection = extractHeaderBlock(d, doc.Root)
	return page
}

func extractHeaders(d *dom) []models.Header {
	headers := []models.Header{}
	d.doc.Find("h1,h2,h3,h4,h5,h6").Each(func(i int, s *goquery.Selection) {
		el := d.element(s)
		if el == nil {
			return
		}
		tag := goquery.NodeName(s)
		headers = append(headers, models.Header{
			Level:   int(tag[1] - '0'),
			Text:    el.Text(),
			Classes: el.Classes(),
			Line:    el.StartLine,
			Offset:  el.Offset,
		})
	})
	return headers
}

func extractPlaygrounds(d *dom, names []string) []models.Playground {
	playgrounds := []models.Playground{}
	d.components(names).Each(func(i int, s *goquery.Selection) {
		el := d.element(s)
		attrs := make(map[string]bool, len(el.Attrs))
		for _, a := range el.Attrs {
			if a.Kind != markup.AttrSpread {
				attrs[a.Name] = true
			}
		}
		playgrounds = append(playgrounds, models.Playground{
			Line:       el.StartLine,
			HasPreview: attrs["preview"],
			HasCode:    attrs["code"],
			HasAPI:     attrs["api"],
			Attributes: attrs,
		})
	})
	return playgrounds
}

func (p *Parser) extractPropsTables(d *dom, doc *markup.Document) []models.PropsTable {
	tables := []models.PropsTable{}
	d.components(p.Guide.Structure.PropsTableComponents).Each(func(i int, s *goquery.Selection) {
		el := d.element(s)
		tables = append(tables, models.PropsTable{
			Line:  el.StartLine,
			Props: p.propRecords(el, doc),
		})
	})
	return tables
}

// propRecords reads the records handed to a props table, either inline or
// through a constant declared in the same file.
func (p *Parser) propRecords(el *markup.Element, doc *markup.Document) []map[string]string {
	var raw string
	for _, name := range propsAttrs {
		if a := el.Attr(name); a != nil && a.Kind == markup.AttrExpression {
			raw = strings.TrimSpace(a.Raw)
			break
		}
	}
	if raw == "" {
		return []map[string]string{}
	}
	if !strings.HasPrefix(raw, "[") {
		resolved, ok := doc.ResolveConst(raw)
		if !ok {
			p.debug("props reference not resolvable", "reference", raw, "line", el.StartLine)
			return []map[string]string{}
		}
		raw = resolved
	}

	v, err := markup.ParseLiteral(raw)
	if err != nil || v.Kind != markup.ValueArray {
		p.debug("props literal not readable", "line", el.StartLine, "error", err)
		return []map[string]string{}
	}
	records := make([]map[string]string, 0, len(v.Items))
	for _, item := range v.Items {
		if item.Kind != markup.ValueObject {
			continue
		}
		rec := make(map[string]string, len(item.Keys))
		for _, k := range item.Keys {
			f := item.Fields[k]
			if f.Empty() {
				rec[k] = ""
				continue
			}
			rec[k] = f.String()
		}
		records = append(records, rec)
	}
	return records
}

// extractCode splits code elements into blocks (parent is <pre>) and inline
// spans. Blocks report the <pre> element's classes and line, since that is
// the element that scrolls.
func extractCode(d *dom) (blocks, inline []models.CodeSpan) {
	blocks, inline = []models.CodeSpan{}, []models.CodeSpan{}
	d.doc.Find("code").Each(func(i int, s *goquery.Selection) {
		el := d.element(s)
		if el == nil {
			return
		}
		if parent := el.Parent; parent != nil && parent.Name == "pre" {
			blocks = append(blocks, models.CodeSpan{
				Line:    parent.StartLine,
				Offset:  parent.Offset,
				Classes: parent.Classes(),
				Content: el.Text(),
			})
			return
		}
		inline = append(inline, models.CodeSpan{
			Line:    el.StartLine,
			Offset:  el.Offset,
			Classes: el.Classes(),
			Content: el.Text(),
		})
	})
	return blocks, inline
}

// isPreviewContainer is a heuristic: an explicit "preview" class wins,
// otherwise a bordered, rounded box counts.
func isPreviewContainer(classes string) bool {
	if strings.Contains(classes, "preview") {
		return true
	}
	return strings.Contains(classes, "border") && strings.Contains(classes, "rounded")
}

func extractPreviewContainers(d *dom) []models.Container {
	containers := []models.Container{}
	d.doc.Find("div,section").Each(func(i int, s *goquery.Selection) {
		el := d.element(s)
		if el == nil || !isPreviewContainer(el.Classes()) {
			return
		}
		containers = append(containers, models.Container{
			Tag:     el.Name,
			Classes: el.Classes(),
			Line:    el.StartLine,
			Offset:  el.Offset,
		})
	})
	return containers
}

// rootElement unwraps a fragment holding exactly one element.
func rootElement(root *markup.Element) *markup.Element {
	if root == nil {
		return nil
	}
	if root.IsFragment() {
		if kids := root.ChildElements(); len(kids) == 1 {
			return kids[0]
		}
	}
	return root
}

func rootContainer(root *markup.Element) *models.Container {
	el := rootElement(root)
	if el == nil {
		return nil
	}
	tag := el.Name
	if el.IsFragment() {
		tag = "fragment"
	}
	return &models.Container{Tag: tag, Classes: el.Classes(), Line: el.StartLine, Offset: el.Offset}
}

// extractHeaderBlock finds the lead paragraph right after the first h1 and
// whether that h1 sits in a <header> opening the page.
func extractHeaderBlock(d *dom, root *markup.Element) (*models.Paragraph, bool) {
	h1 := d.element(d.doc.Find("h1").First())
	if h1 == nil {
		return nil, false
	}

	var lead *models.Paragraph
	if h1.Parent != nil {
		siblings := h1.Parent.ChildElements()
		for i, sib := range siblings {
			if sib != h1 || i+1 >= len(siblings) {
				continue
			}
			if next := siblings[i+1]; next.Name == "p" {
				lead = &models.Paragraph{Text: next.Text(), Classes: next.Classes(), Line: next.StartLine, Offset: next.Offset}
			}
			break
		}
	}

	inHeader := false
	if h1.Parent != nil && h1.Parent.Name == "header" {
		if top := rootElement(root); top != nil {
			if kids := top.ChildElements(); len(kids) > 0 && kids[0] == h1.Parent {
				inHeader = true
			}
		}
	}
	return lead, inHeader
}

func (p *Parser) debug(msg string, args ...any) {
	if p.Logger != nil {
		p.Logger.Debug(msg, args...)
	}
}

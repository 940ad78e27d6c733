package markup

import (
	"fmt"
	"sort"
	"strings"
)

// Document is a parsed page source.
type Document struct {
	Source string
	// Root is the markup returned by the entry point, nil when none was found.
	Root *Element
	// Entry is the name of the default-exported component, if it has one.
	Entry string

	lines []int
	edits []*edit
	undo  []func()
}

// jsxHit is a top-level element found while scanning code.
type jsxHit struct {
	el           *Element
	returned     bool
	afterDefault bool
}

type parser struct {
	src   string
	pos   int
	lines []int
	entry string
}

// Parse scans a TSX page and parses the markup returned by its default export.
func Parse(src string) (*Document, error) {
	p := &parser{src: src, lines: lineStarts(src)}
	hits, err := p.scanJS(0, -1)
	if err != nil {
		return nil, err
	}
	return &Document{
		Source: src,
		Root:   pickRoot(hits),
		Entry:  p.entry,
		lines:  p.lines,
	}, nil
}

// pickRoot prefers markup returned after `export default`, then any markup
// after it, then any returned markup, then the first markup in the file.
func pickRoot(hits []jsxHit) *Element {
	preds := []func(jsxHit) bool{
		func(h jsxHit) bool { return h.afterDefault && h.returned },
		func(h jsxHit) bool { return h.afterDefault },
		func(h jsxHit) bool { return h.returned },
		func(h jsxHit) bool { return true },
	}
	for _, pred := range preds {
		for _, h := range hits {
			if pred(h) {
				return h.el
			}
		}
	}
	return nil
}

func lineStarts(src string) []int {
	lines := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return lines
}

func lineOf(lines []int, off int) int {
	return sort.Search(len(lines), func(i int) bool { return lines[i] > off })
}

func (p *parser) lineAt(off int) int {
	return lineOf(p.lines, off)
}

func (p *parser) errorf(off int, format string, args ...any) error {
	line := p.lineAt(off)
	return &SyntaxError{
		Line: line,
		Col:  off - p.lines[line-1] + 1,
		Msg:  fmt.Sprintf(format, args...),
	}
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peekAt(n int) byte {
	if p.pos+n >= len(p.src) {
		return 0
	}
	return p.src[p.pos+n]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isNameChar(c byte) bool {
	return isIdentChar(c) || c == '-' || c == ':'
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *parser) readIdent() string {
	start := p.pos
	for !p.eof() && isIdentChar(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

// readName reads an element or attribute name. Element names may be dotted.
func (p *parser) readName(dotted bool) string {
	start := p.pos
	for !p.eof() {
		c := p.src[p.pos]
		if isNameChar(c) || (dotted && c == '.') {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *parser) skipString(q byte) error {
	start := p.pos
	p.pos++
	for !p.eof() {
		switch c := p.src[p.pos]; {
		case c == '\\':
			p.pos += 2
		case c == q:
			p.pos++
			return nil
		case c == '\n':
			return p.errorf(start, "unterminated string literal")
		default:
			p.pos++
		}
	}
	return p.errorf(start, "unterminated string literal")
}

func (p *parser) skipTemplate() error {
	start := p.pos
	p.pos++
	for !p.eof() {
		switch c := p.src[p.pos]; {
		case c == '\\':
			p.pos += 2
		case c == '`':
			p.pos++
			return nil
		case c == '$' && p.peekAt(1) == '{':
			p.pos++
			if _, _, _, err := p.readExpression(); err != nil {
				return err
			}
		default:
			p.pos++
		}
	}
	return p.errorf(start, "unterminated template literal")
}

func (p *parser) skipComment() error {
	start := p.pos
	if p.peekAt(1) == '/' {
		for !p.eof() && p.src[p.pos] != '\n' {
			p.pos++
		}
		return nil
	}
	end := strings.Index(p.src[p.pos+2:], "*/")
	if end < 0 {
		return p.errorf(start, "unterminated comment")
	}
	p.pos += 2 + end + 2
	return nil
}

// jsxContext reports whether a '<' following these tokens starts markup
// rather than a comparison or a type argument.
func jsxContext(last, prev string) bool {
	switch last {
	case "", "(", "[", "{", ",", "=", ":", "?", "&", "|", "!", "=>", "return", "default":
		return true
	}
	return false
}

func (p *parser) startsElement() bool {
	c := p.peekAt(1)
	return c == '>' || isIdentStart(c)
}

// scanJS walks JavaScript code, skipping strings and comments and parsing
// any markup it meets. With closer != 0 it stops after the first unbalanced
// closer, which must be that byte; open is the offset of the matching opener
// for error reporting.
func (p *parser) scanJS(closer byte, open int) ([]jsxHit, error) {
	var hits []jsxHit
	var last, prev string
	depth := 0
	afterDefault := false
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case isSpace(c):
			p.pos++
			continue
		case c == '/' && (p.peekAt(1) == '/' || p.peekAt(1) == '*'):
			if err := p.skipComment(); err != nil {
				return nil, err
			}
			continue
		case c == '\'' || c == '"':
			if err := p.skipString(c); err != nil {
				return nil, err
			}
			prev, last = last, "str"
			continue
		case c == '`':
			if err := p.skipTemplate(); err != nil {
				return nil, err
			}
			prev, last = last, "str"
			continue
		case isIdentStart(c):
			word := p.readIdent()
			if closer == 0 {
				if last == "export" && word == "default" {
					afterDefault = true
				} else if afterDefault && p.entry == "" && (last == "default" || last == "function" || last == "async") &&
					word != "function" && word != "async" {
					p.entry = word
				}
			}
			prev, last = last, word
			continue
		case c == '<' && jsxContext(last, prev) && p.startsElement():
			returned := last == "return" || last == "=>" ||
				(last == "(" && (prev == "return" || prev == "=>"))
			el, err := p.parseElement(nil)
			if err != nil {
				return nil, err
			}
			hits = append(hits, jsxHit{el: el, returned: returned, afterDefault: afterDefault})
			prev, last = last, "jsx"
			continue
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			if depth == 0 {
				if closer == 0 {
					break
				}
				if c != closer {
					return nil, p.errorf(p.pos, "unexpected %q", c)
				}
				p.pos++
				return hits, nil
			}
			depth--
		}
		if c == '>' && last == "=" && p.pos > 0 && p.src[p.pos-1] == '=' {
			last = "=>"
		} else {
			prev, last = last, string(c)
		}
		p.pos++
	}
	if closer != 0 {
		return nil, p.errorf(open, "unterminated expression")
	}
	return hits, nil
}

// readExpression reads a {...} slot starting at the opening brace.
func (p *parser) readExpression() (raw string, innerStart int, hits []jsxHit, err error) {
	open := p.pos
	p.pos++
	innerStart = p.pos
	hits, err = p.scanJS('}', open)
	if err != nil {
		return "", 0, nil, err
	}
	return p.src[innerStart : p.pos-1], innerStart, hits, nil
}

func (p *parser) parseElement(parent *Element) (*Element, error) {
	start := p.pos
	el := &Element{Parent: parent}
	el.Offset = start
	el.StartLine = p.lineAt(start)
	p.pos++
	p.skipSpace()

	if !p.eof() && p.src[p.pos] == '>' {
		p.pos++
		el.OpenEndLine = p.lineAt(p.pos - 1)
		el.attrInsert = -1
	} else {
		el.Name = p.readName(true)
		if el.Name == "" {
			return nil, p.errorf(start, "expected element name")
		}
		el.attrInsert = p.pos
		if err := p.parseAttrs(el); err != nil {
			return nil, err
		}
	}

	if !el.SelfClosing {
		if err := p.parseChildren(el); err != nil {
			return nil, err
		}
	}
	el.End = p.pos
	el.EndLine = p.lineAt(p.pos - 1)
	return el, nil
}

func (p *parser) parseAttrs(el *Element) error {
	for {
		p.skipSpace()
		if p.eof() {
			return p.errorf(el.Offset, "unterminated opening tag <%s>", el.Name)
		}
		c := p.src[p.pos]
		switch {
		case c == '/':
			if p.peekAt(1) != '>' {
				return p.errorf(p.pos, "expected '/>' in <%s>", el.Name)
			}
			p.pos += 2
			el.SelfClosing = true
			el.OpenEndLine = p.lineAt(p.pos - 1)
			return nil
		case c == '>':
			p.pos++
			el.OpenEndLine = p.lineAt(p.pos - 1)
			return nil
		case c == '{':
			attr := &Attr{Kind: AttrSpread, valueStart: -1}
			attr.Offset = p.pos
			attr.StartLine = p.lineAt(p.pos)
			raw, _, hits, err := p.readExpression()
			if err != nil {
				return err
			}
			attr.Raw = raw
			attr.Markup = adopt(hits, el)
			p.finishAttr(el, attr)
		case isIdentStart(c):
			attr, err := p.parseAttr(el)
			if err != nil {
				return err
			}
			p.finishAttr(el, attr)
		default:
			return p.errorf(p.pos, "unexpected %q in <%s>", c, el.Name)
		}
	}
}

func (p *parser) finishAttr(el *Element, attr *Attr) {
	attr.End = p.pos
	attr.EndLine = p.lineAt(p.pos - 1)
	el.Attrs = append(el.Attrs, attr)
	el.attrInsert = p.pos
}

func (p *parser) parseAttr(el *Element) (*Attr, error) {
	attr := &Attr{valueStart: -1}
	attr.Offset = p.pos
	attr.StartLine = p.lineAt(p.pos)
	attr.Name = p.readName(false)

	save := p.pos
	p.skipSpace()
	if p.eof() || p.src[p.pos] != '=' {
		p.pos = save
		attr.Kind = AttrBoolean
		attr.Value = "true"
		attr.Static = true
		return attr, nil
	}
	p.pos++
	p.skipSpace()
	if p.eof() {
		return nil, p.errorf(attr.Offset, "missing value for %s", attr.Name)
	}

	switch q := p.src[p.pos]; q {
	case '"', '\'':
		open := p.pos
		end := strings.IndexByte(p.src[open+1:], q)
		if end < 0 {
			return nil, p.errorf(open, "unterminated attribute value")
		}
		attr.Kind = AttrLiteral
		attr.valueStart = open + 1
		attr.valueEnd = open + 1 + end
		attr.quote = q
		attr.Value = unescapeText(p.src[attr.valueStart:attr.valueEnd])
		attr.Static = true
		p.pos = attr.valueEnd + 1
	case '{':
		raw, innerStart, hits, err := p.readExpression()
		if err != nil {
			return nil, err
		}
		attr.Kind = AttrExpression
		attr.Raw = raw
		attr.Markup = adopt(hits, el)
		if lit, ok := staticLiteral(raw, innerStart); ok {
			attr.Static = true
			attr.Value = lit.value
			if lit.exact {
				attr.valueStart, attr.valueEnd, attr.quote = lit.start, lit.end, lit.quote
			}
		}
	case '<':
		child, err := p.parseElement(el)
		if err != nil {
			return nil, err
		}
		attr.Kind = AttrExpression
		attr.Raw = p.src[child.Offset:child.End]
		attr.Markup = []*Element{child}
	default:
		return nil, p.errorf(p.pos, "unexpected %q after %s=", q, attr.Name)
	}
	return attr, nil
}

func adopt(hits []jsxHit, parent *Element) []*Element {
	if len(hits) == 0 {
		return nil
	}
	out := make([]*Element, len(hits))
	for i, h := range hits {
		h.el.Parent = parent
		out[i] = h.el
	}
	return out
}

func (p *parser) parseChildren(el *Element) error {
	for {
		if p.eof() {
			return p.errorf(el.Offset, "unterminated element <%s>", el.Name)
		}
		switch p.src[p.pos] {
		case '<':
			if p.peekAt(1) == '/' {
				return p.parseClosing(el)
			}
			child, err := p.parseElement(el)
			if err != nil {
				return err
			}
			el.Children = append(el.Children, child)
		case '{':
			expr := &Expr{}
			expr.Offset = p.pos
			expr.StartLine = p.lineAt(p.pos)
			raw, innerStart, hits, err := p.readExpression()
			if err != nil {
				return err
			}
			expr.Raw = raw
			expr.Markup = adopt(hits, el)
			if lit, ok := staticLiteral(raw, innerStart); ok {
				v := lit.value
				expr.Literal = &v
			}
			expr.End = p.pos
			expr.EndLine = p.lineAt(p.pos - 1)
			el.Children = append(el.Children, expr)
		default:
			start := p.pos
			for !p.eof() && p.src[p.pos] != '<' && p.src[p.pos] != '{' {
				p.pos++
			}
			raw := p.src[start:p.pos]
			if strings.TrimSpace(raw) == "" {
				continue
			}
			t := &Text{Value: unescapeText(raw)}
			t.Offset = start
			t.End = p.pos
			t.StartLine = p.lineAt(start)
			t.EndLine = p.lineAt(p.pos - 1)
			el.Children = append(el.Children, t)
		}
	}
}

func (p *parser) parseClosing(el *Element) error {
	start := p.pos
	p.pos += 2
	p.skipSpace()
	name := p.readName(true)
	p.skipSpace()
	if p.eof() || p.src[p.pos] != '>' {
		return p.errorf(start, "malformed closing tag")
	}
	p.pos++
	if name != el.Name {
		return p.errorf(start, "expected </%s> (opened on line %d), found </%s>", el.Name, el.StartLine, name)
	}
	return nil
}

type literal struct {
	value      string
	start, end int
	quote      byte
	exact      bool
}

// staticLiteral recognises an expression consisting of one string literal
// or interpolation-free template literal. exact is set when the literal has
// no escapes, so its content can be replaced byte for byte.
func staticLiteral(raw string, base int) (literal, bool) {
	lead := len(raw) - len(strings.TrimLeft(raw, " \t\r\n"))
	body := strings.TrimSpace(raw)
	if len(body) < 2 {
		return literal{}, false
	}
	q := body[0]
	if q != '"' && q != '\'' && q != '`' {
		return literal{}, false
	}
	var b strings.Builder
	escaped := false
	for i := 1; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body):
			escaped = true
			i++
			b.WriteByte(unescapeByte(body[i]))
		case c == q:
			if i != len(body)-1 {
				return literal{}, false
			}
			return literal{
				value: b.String(),
				start: base + lead + 1,
				end:   base + lead + i,
				quote: q,
				exact: !escaped,
			}, true
		case q == '`' && c == '$' && i+1 < len(body) && body[i+1] == '{':
			return literal{}, false
		default:
			b.WriteByte(c)
		}
	}
	return literal{}, false
}

func unescapeByte(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	}
	return c
}

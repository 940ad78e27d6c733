package markup

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

type edit struct {
	start, end int
	text       string
}

// LineAt returns the 1-based line of a byte offset.
func (d *Document) LineAt(off int) int {
	return lineOf(d.lines, off)
}

// Walk visits every element of the returned markup in document order,
// including elements embedded in expressions and attribute values.
// Returning false from fn skips the element's descendants.
func (d *Document) Walk(fn func(el *Element) bool) {
	if d.Root != nil {
		walk(d.Root, fn)
	}
}

func walk(el *Element, fn func(*Element) bool) {
	if !fn(el) {
		return
	}
	for _, a := range el.Attrs {
		for _, m := range a.Markup {
			walk(m, fn)
		}
	}
	for _, c := range el.Children {
		switch n := c.(type) {
		case *Element:
			walk(n, fn)
		case *Expr:
			for _, m := range n.Markup {
				walk(m, fn)
			}
		}
	}
}

// ElementsAt returns the elements whose opening tag spans line, outermost first.
func (d *Document) ElementsAt(line int) []*Element {
	var out []*Element
	d.Walk(func(el *Element) bool {
		if el.OpenTagSpans(line) {
			out = append(out, el)
		}
		return el.StartLine <= line
	})
	return out
}

// attrState is what Rollback restores on an existing attribute.
type attrState struct {
	value string
	kind  AttrKind
	edit  *edit
	text  string
}

func (a *Attr) state() attrState {
	s := attrState{value: a.Value, kind: a.Kind, edit: a.edit}
	if a.edit != nil {
		s.text = a.edit.text
	}
	return s
}

func (a *Attr) restore(s attrState) {
	a.Value, a.Kind, a.edit = s.value, s.kind, s.edit
	if s.edit != nil {
		s.edit.text = s.text
	}
}

// SetAttr sets an attribute on el. The change is recorded as a source edit
// and shows up in Render; the tree is updated in place. Positions in the
// tree keep referring to the original source, so later edits can still be
// located by offset.
func (d *Document) SetAttr(el *Element, name, value string) error {
	if el.IsFragment() {
		return fmt.Errorf("cannot set %s on a fragment (line %d)", name, el.StartLine)
	}

	a := el.Attr(name)
	nAttrs, nEdits := len(el.Attrs), len(d.edits)
	existing := a
	var prev attrState
	if existing != nil {
		prev = existing.state()
	}
	switch {
	case a == nil:
		if strings.ContainsRune(value, '"') {
			return fmt.Errorf("%s on <%s>: %w", name, el.Name, ErrUnsafeValue)
		}
		a = &Attr{Name: name, Kind: AttrLiteral, Static: true, inserted: true, valueStart: -1, quote: '"'}
		a.StartLine, a.EndLine = el.OpenEndLine, el.OpenEndLine
		el.Attrs = append(el.Attrs, a)
		d.record(a, el.attrInsert, el.attrInsert, fmt.Sprintf(" %s=%q", name, value))
	case a.inserted:
		if strings.ContainsRune(value, '"') {
			return fmt.Errorf("%s on <%s>: %w", name, el.Name, ErrUnsafeValue)
		}
		d.record(a, 0, 0, fmt.Sprintf(" %s=%q", name, value))
	case a.Kind == AttrBoolean:
		if strings.ContainsRune(value, '"') {
			return fmt.Errorf("%s on <%s>: %w", name, el.Name, ErrUnsafeValue)
		}
		d.record(a, a.End, a.End, fmt.Sprintf("=%q", value))
		a.Kind = AttrLiteral
	case a.Editable():
		if strings.IndexByte(value, a.quote) >= 0 || strings.ContainsRune(value, '\\') ||
			(a.quote == '`' && strings.Contains(value, "${")) {
			return fmt.Errorf("%s on <%s>: %w", name, el.Name, ErrUnsafeValue)
		}
		d.record(a, a.valueStart, a.valueEnd, value)
	default:
		return fmt.Errorf("%s on <%s> (line %d): %w", name, el.Name, a.StartLine, ErrExpressionValue)
	}
	a.Value = value
	d.undo = append(d.undo, func() {
		el.Attrs = el.Attrs[:nAttrs]
		d.edits = d.edits[:nEdits]
		if existing != nil {
			existing.restore(prev)
		}
	})
	return nil
}

// Checkpoint marks the current edit state for Rollback.
func (d *Document) Checkpoint() int { return len(d.undo) }

// Rollback undoes every SetAttr made since the checkpoint, newest first.
func (d *Document) Rollback(checkpoint int) {
	for len(d.undo) > checkpoint {
		last := len(d.undo) - 1
		d.undo[last]()
		d.undo = d.undo[:last]
	}
}

// ElementAtOffset returns the element whose opening tag starts at off.
func (d *Document) ElementAtOffset(off int) *Element {
	var found *Element
	d.Walk(func(el *Element) bool {
		if found != nil || el.Offset > off || el.End <= off {
			return false
		}
		if el.Offset == off {
			found = el
			return false
		}
		return true
	})
	return found
}

func (d *Document) record(a *Attr, start, end int, text string) {
	if a.edit != nil {
		a.edit.text = text
		return
	}
	a.edit = &edit{start: start, end: end, text: text}
	d.edits = append(d.edits, a.edit)
}

// Modified reports whether any edit has been recorded.
func (d *Document) Modified() bool { return len(d.edits) > 0 }

// Render returns the source with all recorded edits applied.
func (d *Document) Render() string {
	if len(d.edits) == 0 {
		return d.Source
	}
	edits := make([]*edit, len(d.edits))
	copy(edits, d.edits)
	sort.SliceStable(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	var b strings.Builder
	b.Grow(len(d.Source) + 64)
	at := 0
	for _, e := range edits {
		b.WriteString(d.Source[at:e.start])
		b.WriteString(e.text)
		at = e.end
	}
	b.WriteString(d.Source[at:])
	return b.String()
}

// ResolveConst returns the initializer source of a `const name = ...`
// declaration whose value is an array, object or string literal.
func (d *Document) ResolveConst(name string) (string, bool) {
	re, err := regexp.Compile(`\b(?:const|let|var)\s+` + regexp.QuoteMeta(name) + `\s*(?::[^=]+)?=\s*`)
	if err != nil {
		return "", false
	}
	loc := re.FindStringIndex(d.Source)
	if loc == nil {
		return "", false
	}
	end, ok := literalEnd(d.Source, loc[1])
	if !ok {
		return "", false
	}
	return d.Source[loc[1]:end], true
}

// literalEnd returns the end offset of the literal starting at start.
func literalEnd(src string, start int) (int, bool) {
	if start >= len(src) {
		return 0, false
	}
	p := &parser{src: src, pos: start, lines: lineStarts(src)}
	var err error
	switch c := src[start]; c {
	case '[':
		p.pos++
		_, err = p.scanJS(']', start)
	case '{':
		_, _, _, err = p.readExpression()
	case '"', '\'':
		err = p.skipString(c)
	case '`':
		err = p.skipTemplate()
	default:
		return 0, false
	}
	if err != nil {
		return 0, false
	}
	return p.pos, true
}

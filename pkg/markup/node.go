// Package markup parses the JSX markup returned by a page component into a
// positioned syntax tree, and re-emits the page source with attribute edits
// applied.
package markup

import (
	"html"
	"strings"
)

// Pos locates a node in the source. Offsets are byte offsets, End is
// exclusive; lines are 1-based.
type Pos struct {
	Offset    int
	End       int
	StartLine int
	EndLine   int
}

// Position returns p.
func (p Pos) Position() Pos { return p }

// Node is one of *Element, *Text or *Expr.
type Node interface {
	Position() Pos
	isNode()
}

// Text is literal text between tags.
type Text struct {
	Pos
	Value string
}

// Expr is an expression slot: {...}.
type Expr struct {
	Pos
	Raw string
	// Literal is set when the expression is a single string literal.
	Literal *string
	// Markup holds elements written inside the expression, e.g. {cond && <p/>}.
	Markup []*Element
}

func (*Text) isNode()    {}
func (*Expr) isNode()    {}
func (*Element) isNode() {}

// AttrKind says how an attribute value was written.
type AttrKind int

const (
	AttrLiteral    AttrKind = iota // name="value"
	AttrExpression                 // name={expr}
	AttrBoolean                    // name
	AttrSpread                     // {...rest}
)

// Attr is one attribute of an element's opening tag.
type Attr struct {
	Pos
	Name string
	Kind AttrKind
	// Value is the attribute's value when known at parse time (Static).
	Value string
	// Raw is the expression source for AttrExpression and AttrSpread.
	Raw    string
	Static bool
	Markup []*Element

	valueStart int
	valueEnd   int
	quote      byte
	edit       *edit
	inserted   bool
}

// Editable reports whether the value can be rewritten in place.
func (a *Attr) Editable() bool {
	return a.inserted || (a.Static && a.valueStart >= 0)
}

// Element is a markup element or, when Name is empty, a fragment.
type Element struct {
	Pos
	Name        string
	Attrs       []*Attr
	Children    []Node
	Parent      *Element
	SelfClosing bool
	// OpenEndLine is the line holding the '>' of the opening tag.
	OpenEndLine int

	attrInsert int
}

// IsFragment reports whether e is <>...</>.
func (e *Element) IsFragment() bool { return e.Name == "" }

// Member splits a dotted component reference such as Docs.Playground.
func (e *Element) Member() []string { return strings.Split(e.Name, ".") }

// IsIntrinsic reports whether e is a lower-case host element such as div.
func (e *Element) IsIntrinsic() bool {
	return e.Name != "" && !strings.Contains(e.Name, ".") && e.Name[0] >= 'a' && e.Name[0] <= 'z'
}

// Attr returns the named attribute, or nil.
func (e *Element) Attr(name string) *Attr {
	for _, a := range e.Attrs {
		if a.Kind != AttrSpread && a.Name == name {
			return a
		}
	}
	return nil
}

// HasAttr reports whether the attribute is written on the element.
func (e *Element) HasAttr(name string) bool {
	return e.Attr(name) != nil
}

// AttrValue returns the static value of the named attribute.
func (e *Element) AttrValue(name string) (string, bool) {
	a := e.Attr(name)
	if a == nil || !a.Static {
		return "", false
	}
	return a.Value, true
}

// Classes returns the className (or class) value, or "" when the element
// has none or it is not a static string.
func (e *Element) Classes() string {
	if v, ok := e.AttrValue("className"); ok {
		return v
	}
	v, _ := e.AttrValue("class")
	return v
}

// ClassAttr returns the attribute name that holds the element's classes.
func (e *Element) ClassAttr() string {
	if e.Attr("class") != nil && e.Attr("className") == nil {
		return "class"
	}
	return "className"
}

// ChildElements returns element children in order, including elements
// embedded in child expressions.
func (e *Element) ChildElements() []*Element {
	var out []*Element
	for _, c := range e.Children {
		switch n := c.(type) {
		case *Element:
			out = append(out, n)
		case *Expr:
			out = append(out, n.Markup...)
		}
	}
	return out
}

// OpenTagSpans reports whether line falls within the opening tag.
func (e *Element) OpenTagSpans(line int) bool {
	return line >= e.StartLine && line <= e.OpenEndLine
}

// Text concatenates the element's text: text children, string-literal
// expressions and nested elements' text, trimmed and joined by single spaces.
func (e *Element) Text() string {
	var parts []string
	for _, c := range e.Children {
		var s string
		switch n := c.(type) {
		case *Text:
			s = n.Value
		case *Expr:
			if n.Literal != nil {
				s = *n.Literal
			} else {
				var nested []string
				for _, m := range n.Markup {
					nested = append(nested, m.Text())
				}
				s = strings.Join(nested, " ")
			}
		case *Element:
			s = n.Text()
		}
		if s = strings.Join(strings.Fields(s), " "); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func unescapeText(raw string) string {
	return html.UnescapeString(raw)
}

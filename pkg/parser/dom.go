package parser

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/styleguide-audit/pkg/markup"
	"golang.org/x/net/html"
)

// dom is the markup tree projected onto x/net/html so structural passes can
// use goquery selections. Intrinsic elements keep their (lower-case) tag;
// components become <component data-component="Name">; fragments become
// <fragment>.
type dom struct {
	doc   *goquery.Document
	elems map[*html.Node]*markup.Element
}

func project(root *markup.Element) *dom {
	d := &dom{elems: make(map[*html.Node]*markup.Element)}
	top := &html.Node{Type: html.DocumentNode}
	if root != nil {
		top.AppendChild(d.node(root))
	}
	d.doc = goquery.NewDocumentFromNode(top)
	return d
}

func (d *dom) node(el *markup.Element) *html.Node {
	n := &html.Node{Type: html.ElementNode}
	switch {
	case el.IsFragment():
		n.Data = "fragment"
	case el.IsIntrinsic():
		n.Data = strings.ToLower(el.Name)
	default:
		n.Data = "component"
		n.Attr = append(n.Attr, html.Attribute{Key: "data-component", Val: el.Name})
	}
	n.Attr = append(n.Attr,
		html.Attribute{Key: "data-line", Val: strconv.Itoa(el.StartLine)},
		html.Attribute{Key: "class", Val: el.Classes()},
	)
	d.elems[n] = el

	for _, c := range el.Children {
		switch v := c.(type) {
		case *markup.Element:
			n.AppendChild(d.node(v))
		case *markup.Text:
			n.AppendChild(&html.Node{Type: html.TextNode, Data: v.Value})
		case *markup.Expr:
			if v.Literal != nil {
				n.AppendChild(&html.Node{Type: html.TextNode, Data: *v.Literal})
			}
			for _, m := range v.Markup {
				n.AppendChild(d.node(m))
			}
		}
	}
	return n
}

// element maps a selection back to its markup element.
func (d *dom) element(s *goquery.Selection) *markup.Element {
	if s.Length() == 0 {
		return nil
	}
	return d.elems[s.Get(0)]
}

// components selects component elements whose member path equals one of names.
func (d *dom) components(names []string) *goquery.Selection {
	paths := make([][]string, len(names))
	for i, n := range names {
		paths[i] = strings.Split(n, ".")
	}
	return d.doc.Find("component[data-component]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		el := d.element(s)
		if el == nil {
			return false
		}
		member := el.Member()
		for _, p := range paths {
			if equalPath(member, p) {
				return true
			}
		}
		return false
	})
}

func equalPath(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

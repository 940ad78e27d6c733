package markup

import (
	"errors"
	"strings"
	"testing"
)

const buttonPage = `import { ComponentPlayground } from '@/components/docs'

const helper = (a: number, b: number) => a < b

export default function ButtonPage() {
  const label = 'Don\'t click'
  return (
    <div className="space-y-12">
      <header>
        <h1 className="text-3xl font-display">Button</h1>
        <p className="text-lg">Buttons trigger actions.</p>
      </header>
      <h2
        className="text-2xl"
        id="usage"
      >
        Basic Usage
      </h2>
      {items.map((item) => (
        <span key={item}>{item}</span>
      ))}
      <Docs.Playground preview={<Button>Go</Button>} code={` + "`<Button />`" + `} api />
      <p>Use {'<Button>'} for &amp; actions</p>
    </div>
  )
}
`

func TestParseFindsEntryMarkup(t *testing.T) {
	doc, err := Parse(buttonPage)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Entry != "ButtonPage" {
		t.Errorf("Entry = %q, want ButtonPage", doc.Entry)
	}
	if doc.Root == nil {
		t.Fatal("Root is nil")
	}
	if doc.Root.Name != "div" {
		t.Errorf("Root.Name = %q, want div", doc.Root.Name)
	}
	if got := doc.Root.Classes(); got != "space-y-12" {
		t.Errorf("Root.Classes() = %q", got)
	}
	if doc.Root.StartLine != 8 {
		t.Errorf("Root.StartLine = %d, want 8", doc.Root.StartLine)
	}
}

func TestParsePositions(t *testing.T) {
	doc, err := Parse(buttonPage)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var h2 *Element
	doc.Walk(func(el *Element) bool {
		if el.Name == "h2" {
			h2 = el
		}
		return true
	})
	if h2 == nil {
		t.Fatal("h2 not found")
	}
	if h2.StartLine != 13 || h2.OpenEndLine != 16 || h2.EndLine != 18 {
		t.Errorf("h2 lines = %d/%d/%d, want 13/16/18", h2.StartLine, h2.OpenEndLine, h2.EndLine)
	}
	for _, line := range []int{13, 14, 15, 16} {
		if !h2.OpenTagSpans(line) {
			t.Errorf("OpenTagSpans(%d) = false", line)
		}
	}
	if h2.OpenTagSpans(17) {
		t.Error("OpenTagSpans(17) = true, body line is not part of the opening tag")
	}
	if got := h2.Text(); got != "Basic Usage" {
		t.Errorf("h2.Text() = %q", got)
	}
}

func TestParseAttributesAndExpressions(t *testing.T) {
	doc, err := Parse(buttonPage)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var pg *Element
	var spans, buttons int
	var lastP *Element
	doc.Walk(func(el *Element) bool {
		switch el.Name {
		case "Docs.Playground":
			pg = el
		case "span":
			spans++
		case "Button":
			buttons++
		case "p":
			lastP = el
		}
		return true
	})
	if pg == nil {
		t.Fatal("Docs.Playground not found")
	}
	if m := pg.Member(); len(m) != 2 || m[0] != "Docs" || m[1] != "Playground" {
		t.Errorf("Member() = %v", m)
	}
	if !pg.SelfClosing {
		t.Error("playground should be self-closing")
	}
	if a := pg.Attr("api"); a == nil || a.Kind != AttrBoolean {
		t.Errorf("api attr = %+v, want boolean", a)
	}
	if a := pg.Attr("code"); a == nil || !a.Static || a.Value != "<Button />" {
		t.Errorf("code attr = %+v, want static template literal", a)
	}
	if a := pg.Attr("preview"); a == nil || len(a.Markup) != 1 || a.Markup[0].Parent != pg {
		t.Errorf("preview attr markup not adopted: %+v", a)
	}
	if spans != 1 {
		t.Errorf("spans = %d, want 1 (markup inside map callback)", spans)
	}
	if buttons != 1 {
		t.Errorf("buttons = %d, want 1 (markup inside attribute)", buttons)
	}
	if got := lastP.Text(); got != "Use <Button> for & actions" {
		t.Errorf("Text() = %q", got)
	}
}

func TestParseFragmentAndArrowEntry(t *testing.T) {
	src := `const Page = () => (
  <>
    <h1>Title</h1>
  </>
)
export default Page
`
	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Root == nil || !doc.Root.IsFragment() {
		t.Fatalf("Root = %+v, want fragment", doc.Root)
	}
	if doc.Entry != "Page" {
		t.Errorf("Entry = %q, want Page", doc.Entry)
	}
	if n := len(doc.Root.ChildElements()); n != 1 {
		t.Errorf("ChildElements() = %d, want 1", n)
	}
}

func TestParseNoMarkup(t *testing.T) {
	doc, err := Parse("export const x = 1 < 2\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Root != nil {
		t.Errorf("Root = %+v, want nil", doc.Root)
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{
			name:    "mismatched closing tag",
			src:     "export default function P() {\n  return <div><span></div>\n}\n",
			wantMsg: "expected </span>",
		},
		{
			name:    "unterminated element",
			src:     "export default function P() {\n  return <div>\n",
			wantMsg: "unterminated element <div>",
		},
		{
			name:    "unterminated attribute",
			src:     "export default function P() {\n  return <div className=\"x>hi</div>\n}\n",
			wantMsg: "unterminated",
		},
		{
			name:    "unterminated expression",
			src:     "export default function P() {\n  return <div>{value</div>\n}\n",
			wantMsg: "unterminated",
		},
		{
			name:    "garbage in tag",
			src:     "export default function P() {\n  return <div %>x</div>\n}\n",
			wantMsg: "unexpected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			if err == nil {
				t.Fatal("Parse() error = nil, want syntax error")
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("error %T is not *SyntaxError", err)
			}
			if se.Line < 1 {
				t.Errorf("Line = %d, want >= 1", se.Line)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestStaticLiteral(t *testing.T) {
	tests := []struct {
		raw       string
		wantOK    bool
		wantValue string
		wantExact bool
	}{
		{raw: `"a b"`, wantOK: true, wantValue: "a b", wantExact: true},
		{raw: ` 'a' `, wantOK: true, wantValue: "a", wantExact: true},
		{raw: "`a b`", wantOK: true, wantValue: "a b", wantExact: true},
		{raw: "`a ${b}`", wantOK: false},
		{raw: `'it\'s'`, wantOK: true, wantValue: "it's", wantExact: false},
		{raw: `cn('a', 'b')`, wantOK: false},
		{raw: `'a' + 'b'`, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			lit, ok := staticLiteral(tt.raw, 0)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if lit.value != tt.wantValue || lit.exact != tt.wantExact {
				t.Errorf("got %q exact=%v, want %q exact=%v", lit.value, lit.exact, tt.wantValue, tt.wantExact)
			}
			if lit.exact && tt.raw[lit.start:lit.end] != tt.wantValue {
				t.Errorf("span = %q, want %q", tt.raw[lit.start:lit.end], tt.wantValue)
			}
		})
	}
}

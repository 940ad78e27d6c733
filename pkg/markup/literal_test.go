package markup

import "testing"

func TestParseLiteralPropRecords(t *testing.T) {
	src := `[
  // primary props
  { name: 'variant', type: "'primary' | 'ghost'", default: "'primary'", description: 'Visual style' },
  { 'name': "size", type: ` + "`'sm' | 'lg'`" + `, default: undefined, description: "" },
  { name, type: 'boolean', default: false, description: 'Disables it', onClick() {} },
  ...shared,
]`
	v, err := ParseLiteral(src)
	if err != nil {
		t.Fatalf("ParseLiteral() error = %v", err)
	}
	if v.Kind != ValueArray || len(v.Items) != 3 {
		t.Fatalf("got kind %v with %d items, want array of 3", v.Kind, len(v.Items))
	}

	first := v.Items[0]
	if first.Kind != ValueObject {
		t.Fatalf("item 0 kind = %v", first.Kind)
	}
	if got := first.Fields["type"].String(); got != "'primary' | 'ghost'" {
		t.Errorf("type = %q", got)
	}
	wantKeys := []string{"name", "type", "default", "description"}
	for i, k := range wantKeys {
		if first.Keys[i] != k {
			t.Errorf("Keys[%d] = %q, want %q", i, first.Keys[i], k)
		}
	}

	second := v.Items[1]
	if got := second.Fields["name"].String(); got != "size" {
		t.Errorf("quoted key name = %q", got)
	}
	if !second.Fields["default"].Empty() {
		t.Error("undefined default should be empty")
	}
	if !second.Fields["description"].Empty() {
		t.Error("empty description should be empty")
	}

	third := v.Items[2]
	if got := third.Fields["name"].String(); got != "name" {
		t.Errorf("shorthand name = %q", got)
	}
	if got := third.Fields["default"]; got.Kind != ValueRaw || got.String() != "false" || got.Empty() {
		t.Errorf("default = %+v, want raw false", got)
	}
	if _, ok := third.Fields["onClick"]; !ok {
		t.Error("method shorthand dropped")
	}
}

func TestParseLiteralErrors(t *testing.T) {
	for _, src := range []string{"", "[{ name: 'a' ", "['unterminated]"} {
		if _, err := ParseLiteral(src); err == nil {
			t.Errorf("ParseLiteral(%q) error = nil", src)
		}
	}
}

package markup

import (
	"fmt"
	"strings"
)

// ValueKind classifies a literal value.
type ValueKind int

const (
	ValueRaw ValueKind = iota // anything not modelled: numbers, identifiers, calls
	ValueString
	ValueArray
	ValueObject
)

// Value is a JavaScript literal read by ParseLiteral.
type Value struct {
	Kind   ValueKind
	Str    string // decoded string for ValueString, trimmed source otherwise
	Items  []Value
	Keys   []string
	Fields map[string]Value
}

// String renders the value as a display string.
func (v Value) String() string {
	return v.Str
}

// Empty reports whether the value carries no information.
func (v Value) Empty() bool {
	s := strings.TrimSpace(v.Str)
	if v.Kind == ValueRaw && (s == "undefined" || s == "null") {
		return true
	}
	return s == ""
}

type litReader struct {
	src string
	pos int
}

// ParseLiteral reads a JavaScript array, object or string literal such as
// the prop records handed to a props table.
func ParseLiteral(src string) (Value, error) {
	r := &litReader{src: src}
	v, err := r.value()
	if err != nil {
		return Value{}, err
	}
	return v, nil
}

func (r *litReader) skip() {
	for r.pos < len(r.src) {
		c := r.src[r.pos]
		switch {
		case isSpace(c):
			r.pos++
		case c == '/' && r.pos+1 < len(r.src) && r.src[r.pos+1] == '/':
			for r.pos < len(r.src) && r.src[r.pos] != '\n' {
				r.pos++
			}
		case c == '/' && r.pos+1 < len(r.src) && r.src[r.pos+1] == '*':
			end := strings.Index(r.src[r.pos+2:], "*/")
			if end < 0 {
				r.pos = len(r.src)
				return
			}
			r.pos += end + 4
		default:
			return
		}
	}
}

func (r *litReader) errorf(format string, args ...any) error {
	return fmt.Errorf("literal offset %d: %s", r.pos, fmt.Sprintf(format, args...))
}

func (r *litReader) value() (Value, error) {
	r.skip()
	if r.pos >= len(r.src) {
		return Value{}, r.errorf("unexpected end of input")
	}
	start := r.pos
	var v Value
	var err error
	switch c := r.src[r.pos]; {
	case c == '[':
		v, err = r.array()
	case c == '{':
		v, err = r.object()
	case c == '"' || c == '\'' || c == '`':
		var s string
		s, err = r.str()
		v = Value{Kind: ValueString, Str: s}
	default:
		v, err = r.raw()
	}
	if err != nil {
		return Value{}, err
	}
	// tolerate trailing TypeScript assertions such as `as const`
	r.skip()
	if strings.HasPrefix(r.src[r.pos:], "as ") {
		if _, err := r.raw(); err != nil {
			return Value{}, err
		}
	}
	if v.Kind == ValueArray || v.Kind == ValueObject {
		v.Str = strings.TrimSpace(r.src[start:r.pos])
	}
	return v, nil
}

func (r *litReader) str() (string, error) {
	q := r.src[r.pos]
	r.pos++
	var b strings.Builder
	for r.pos < len(r.src) {
		c := r.src[r.pos]
		switch {
		case c == '\\' && r.pos+1 < len(r.src):
			b.WriteByte(unescapeByte(r.src[r.pos+1]))
			r.pos += 2
		case c == q:
			r.pos++
			return b.String(), nil
		default:
			b.WriteByte(c)
			r.pos++
		}
	}
	return "", r.errorf("unterminated string")
}

// raw consumes source up to the next comma or closer at depth zero.
func (r *litReader) raw() (Value, error) {
	start := r.pos
	depth := 0
	for r.pos < len(r.src) {
		c := r.src[r.pos]
		switch {
		case c == '"' || c == '\'' || c == '`':
			if _, err := r.str(); err != nil {
				return Value{}, err
			}
			continue
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			if depth == 0 {
				return Value{Kind: ValueRaw, Str: strings.TrimSpace(r.src[start:r.pos])}, nil
			}
			depth--
		case c == ',' && depth == 0:
			return Value{Kind: ValueRaw, Str: strings.TrimSpace(r.src[start:r.pos])}, nil
		}
		r.pos++
	}
	return Value{Kind: ValueRaw, Str: strings.TrimSpace(r.src[start:])}, nil
}

func (r *litReader) array() (Value, error) {
	r.pos++
	v := Value{Kind: ValueArray}
	for {
		r.skip()
		if r.pos >= len(r.src) {
			return Value{}, r.errorf("unterminated array")
		}
		switch r.src[r.pos] {
		case ']':
			r.pos++
			return v, nil
		case ',':
			r.pos++
			continue
		}
		if strings.HasPrefix(r.src[r.pos:], "...") {
			if _, err := r.raw(); err != nil {
				return Value{}, err
			}
			continue
		}
		item, err := r.value()
		if err != nil {
			return Value{}, err
		}
		v.Items = append(v.Items, item)
	}
}

func (r *litReader) object() (Value, error) {
	r.pos++
	v := Value{Kind: ValueObject, Fields: map[string]Value{}}
	for {
		r.skip()
		if r.pos >= len(r.src) {
			return Value{}, r.errorf("unterminated object")
		}
		switch c := r.src[r.pos]; {
		case c == '}':
			r.pos++
			return v, nil
		case c == ',':
			r.pos++
			continue
		case strings.HasPrefix(r.src[r.pos:], "..."):
			if _, err := r.raw(); err != nil {
				return Value{}, err
			}
			continue
		}

		key, err := r.key()
		if err != nil {
			return Value{}, err
		}
		r.skip()
		var field Value
		if r.pos < len(r.src) && r.src[r.pos] == ':' {
			r.pos++
			if field, err = r.value(); err != nil {
				return Value{}, err
			}
		} else if field, err = r.raw(); err != nil {
			return Value{}, err
		} else if field.Str == "" {
			// shorthand property {name}
			field = Value{Kind: ValueRaw, Str: key}
		} else {
			// method shorthand; keep the source
			field.Str = key + field.Str
		}
		if _, seen := v.Fields[key]; !seen {
			v.Keys = append(v.Keys, key)
		}
		v.Fields[key] = field
	}
}

func (r *litReader) key() (string, error) {
	c := r.src[r.pos]
	switch {
	case c == '"' || c == '\'' || c == '`':
		return r.str()
	case c == '[':
		v, err := r.array()
		if err != nil {
			return "", err
		}
		if len(v.Items) == 1 {
			return v.Items[0].Str, nil
		}
		return "", r.errorf("invalid computed key")
	}
	start := r.pos
	for r.pos < len(r.src) && (isIdentChar(r.src[r.pos]) || r.src[r.pos] == '-') {
		r.pos++
	}
	if r.pos == start {
		return "", r.errorf("unexpected %q in object", c)
	}
	return r.src[start:r.pos], nil
}

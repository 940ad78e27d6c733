package markup

import (
	"errors"
	"fmt"
)

var (
	// ErrExpressionValue is returned when editing an attribute whose value is
	// computed at runtime.
	ErrExpressionValue = errors.New("attribute value is an expression")
	// ErrUnsafeValue is returned when a new value cannot be written inside the
	// attribute's existing quotes.
	ErrUnsafeValue = errors.New("value cannot be quoted in place")
)

// SyntaxError reports malformed markup.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d:%d: %s", e.Line, e.Col, e.Msg)
}

// Package diagnostic records positioned syntax diagnostics. Diagnostics
// accumulate while parsing continues; callers inspect the list afterwards.
package diagnostic

import (
	"fmt"
	"strings"

	"github.com/dumbbrain-lang/dumbbrain/internal/position"
	"github.com/dumbbrain-lang/dumbbrain/internal/syntax"
)

// Codes for the diagnostics the parser can produce.
const (
	CodeUnexpectedToken = "E0100"
)

// Diagnostic represents a single syntax diagnostic.
type Diagnostic struct {
	Code     string
	Span     position.Span
	Expected []syntax.Kind // every kind checked since the last consumed token
	Found    syntax.Kind
}

// UnexpectedToken builds the diagnostic for a token that matched none of
// the expected kinds.
func UnexpectedToken(span position.Span, found syntax.Kind, expected []syntax.Kind) Diagnostic {
	return Diagnostic{
		Code:     CodeUnexpectedToken,
		Span:     span,
		Expected: append([]syntax.Kind(nil), expected...),
		Found:    found,
	}
}

// Message returns the diagnostic text without its position:
// "expected K1, K2 or K3".
func (d Diagnostic) Message() string {
	if len(d.Expected) == 0 {
		return fmt.Sprintf("unexpected %s", d.Found)
	}

	var b strings.Builder
	b.WriteString("expected ")
	for i, kind := range d.Expected {
		switch {
		case i == 0:
		case i == len(d.Expected)-1:
			b.WriteString(" or ")
		default:
			b.WriteString(", ")
		}
		b.WriteString(kind.String())
	}
	return b.String()
}

// String returns "at line:column: message"
func (d Diagnostic) String() string {
	return fmt.Sprintf("at %s: %s", d.Span.Start(), d.Message())
}

// Render returns the diagnostic followed by the highlighted source line.
func (d Diagnostic) Render(src *position.Source) string {
	if src == nil {
		return d.String()
	}
	return fmt.Sprintf("error[%s]: %s\n%s", d.Code, d.String(), src.Highlight(d.Span))
}

// List is an ordered collection of diagnostics.
type List []Diagnostic

// Strings returns the rendered text of every diagnostic, in order.
func (l List) Strings() []string {
	out := make([]string, len(l))
	for i, d := range l {
		out[i] = d.String()
	}
	return out
}

// Err returns nil for an empty list and an *Error otherwise.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return &Error{Diagnostics: l}
}

// Error reports that parsing produced diagnostics.
type Error struct {
	Diagnostics List
}

func (e *Error) Error() string {
	if len(e.Diagnostics) == 1 {
		return "syntax error " + e.Diagnostics[0].String()
	}
	return fmt.Sprintf("%d syntax errors: %s", len(e.Diagnostics), strings.Join(e.Diagnostics.Strings(), "; "))
}

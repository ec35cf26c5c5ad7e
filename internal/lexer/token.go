package lexer

import (
	"fmt"

	"github.com/dumbbrain-lang/dumbbrain/internal/object"
	"github.com/dumbbrain-lang/dumbbrain/internal/position"
	"github.com/dumbbrain-lang/dumbbrain/internal/syntax"
)

// Token represents a lexical token with position information
type Token struct {
	Kind     syntax.Kind
	Position int           // 0-based byte offset of the first character
	Text     string        // exact lexeme
	Value    object.Object // set only for number and boolean literals
	Span     position.Span
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("{Kind: %s, Text: %q, Position: %d, Span: %s}",
		t.Kind, t.Text, t.Position, t.Span)
}

func (t Token) NodeKind() syntax.Kind       { return t.Kind }
func (t Token) Children() []syntax.Node     { return nil }
func (t Token) LiteralValue() object.Object { return t.Value }

// Package parser implements the DumbBrain expression parser and its
// untyped syntax tree.
package parser

import (
	"fmt"

	"github.com/dumbbrain-lang/dumbbrain/internal/lexer"
	"github.com/dumbbrain-lang/dumbbrain/internal/object"
	"github.com/dumbbrain-lang/dumbbrain/internal/position"
	"github.com/dumbbrain-lang/dumbbrain/internal/syntax"
)

// Expression represents all expression nodes. The set of implementations
// is closed: *LiteralExpression, *BinaryExpression, *UnaryExpression and
// *ParenthesizedExpression.
type Expression interface {
	syntax.Node
	// GetSpan returns the source span for this node
	GetSpan() position.Span
	// String returns a fully parenthesized rendering of the node
	String() string
	expressionNode()
}

// ====== Expressions ======

// LiteralExpression is a number, true or false.
type LiteralExpression struct {
	Token lexer.Token
}

func (l *LiteralExpression) GetSpan() position.Span      { return l.Token.Span }
func (l *LiteralExpression) String() string              { return l.Token.Text }
func (l *LiteralExpression) NodeKind() syntax.Kind       { return syntax.LiteralExpression }
func (l *LiteralExpression) Children() []syntax.Node     { return []syntax.Node{l.Token} }
func (l *LiteralExpression) LiteralValue() object.Object { return nil }
func (l *LiteralExpression) expressionNode()             {}

// BinaryExpression is an infix operation.
type BinaryExpression struct {
	Left     Expression
	Operator lexer.Token
	Right    Expression
}

func (b *BinaryExpression) GetSpan() position.Span { return b.Left.GetSpan().Union(b.Right.GetSpan()) }
func (b *BinaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Operator.Text, b.Right)
}
func (b *BinaryExpression) NodeKind() syntax.Kind { return syntax.BinaryExpression }
func (b *BinaryExpression) Children() []syntax.Node {
	return []syntax.Node{b.Left, b.Operator, b.Right}
}
func (b *BinaryExpression) LiteralValue() object.Object { return nil }
func (b *BinaryExpression) expressionNode()             {}

// UnaryExpression is a prefix operation.
type UnaryExpression struct {
	Operator lexer.Token
	Operand  Expression
}

func (u *UnaryExpression) GetSpan() position.Span      { return u.Operator.Span.Union(u.Operand.GetSpan()) }
func (u *UnaryExpression) String() string              { return fmt.Sprintf("(%s%s)", u.Operator.Text, u.Operand) }
func (u *UnaryExpression) NodeKind() syntax.Kind       { return syntax.UnaryExpression }
func (u *UnaryExpression) Children() []syntax.Node     { return []syntax.Node{u.Operator, u.Operand} }
func (u *UnaryExpression) LiteralValue() object.Object { return nil }
func (u *UnaryExpression) expressionNode()             {}

// ParenthesizedExpression keeps both parenthesis tokens around its inner
// expression. When the closing parenthesis was missing, Close holds the
// token found in its place.
type ParenthesizedExpression struct {
	Open  lexer.Token
	Inner Expression
	Close lexer.Token
}

func (p *ParenthesizedExpression) GetSpan() position.Span { return p.Open.Span.Union(p.Close.Span) }
func (p *ParenthesizedExpression) String() string         { return fmt.Sprintf("(%s)", p.Inner) }
func (p *ParenthesizedExpression) NodeKind() syntax.Kind  { return syntax.ParenthesizedExpression }
func (p *ParenthesizedExpression) Children() []syntax.Node {
	return []syntax.Node{p.Open, p.Inner, p.Close}
}
func (p *ParenthesizedExpression) LiteralValue() object.Object { return nil }
func (p *ParenthesizedExpression) expressionNode()             {}

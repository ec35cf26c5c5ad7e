package parser

import (
	"slices"

	"github.com/dumbbrain-lang/dumbbrain/internal/diagnostic"
	"github.com/dumbbrain-lang/dumbbrain/internal/lexer"
	"github.com/dumbbrain-lang/dumbbrain/internal/syntax"
)

// Parser is a precedence-climbing parser over a token stream. Syntax
// problems are recorded as diagnostics and parsing carries on; check
// Diagnostics once parsing is done.
type Parser struct {
	cursor      *cursor
	expected    []syntax.Kind // kinds checked since the last consumed token
	diagnostics diagnostic.List
}

// New creates a parser reading from source
func New(source TokenSource) *Parser {
	return &Parser{cursor: newCursor(source)}
}

// NewFromTokens creates a parser over an already lexed token slice
func NewFromTokens(tokens []lexer.Token) *Parser {
	return New(&sliceSource{tokens: tokens})
}

// NewFromSource creates a parser that lexes text lazily
func NewFromSource(text string) *Parser {
	return New(lexer.New(text))
}

// Parse parses one complete expression from tokens and reports any
// tokens left over after it.
func Parse(tokens []lexer.Token) (Expression, diagnostic.List) {
	p := NewFromTokens(tokens)
	expr := p.ParseToEnd()
	return expr, p.Diagnostics()
}

// Diagnostics returns the diagnostics recorded so far, in order
func (p *Parser) Diagnostics() diagnostic.List {
	return slices.Clone(p.diagnostics)
}

// Parse parses the expression at the cursor. Input after it is left
// unconsumed.
func (p *Parser) Parse() Expression {
	return p.parseExpression(syntax.NoPrecedence)
}

// ParseToEnd parses an expression and then expects the input to be
// exhausted. Leftover tokens produce a single diagnostic and are skipped.
func (p *Parser) ParseToEnd() Expression {
	expr := p.Parse()
	if _, ok := p.cursor.peek(); !ok {
		return expr
	}

	p.check(syntax.EndOfFileToken)
	p.error()
	for {
		if _, ok := p.cursor.next(); !ok {
			return expr
		}
	}
}

// parseExpression climbs operator precedence. A prefix operator binding at
// least as tightly as parent starts a unary expression; after the operand,
// infix operators binding strictly tighter than parent are folded left.
func (p *Parser) parseExpression(parent syntax.Precedence) Expression {
	var left Expression

	if tok, ok := p.cursor.peek(); ok {
		if prec := tok.Kind.UnaryPrecedence(); prec != syntax.NoPrecedence && prec >= parent {
			operator := p.bump()
			operand := p.parseExpression(prec)
			left = &UnaryExpression{Operator: operator, Operand: operand}
		}
	}
	if left == nil {
		left = p.parsePrimaryExpression()
	}

	for {
		tok, ok := p.cursor.peek()
		if !ok {
			return left
		}
		prec := tok.Kind.BinaryPrecedence()
		if prec == syntax.NoPrecedence || prec <= parent {
			return left
		}
		operator := p.bump()
		right := p.parseExpression(prec)
		left = &BinaryExpression{Left: left, Operator: operator, Right: right}
	}
}

// parsePrimaryExpression parses a literal or a parenthesized expression.
// Anything else is recorded as a diagnostic and the offending token is
// wrapped in a literal so the tree stays complete.
func (p *Parser) parsePrimaryExpression() Expression {
	if p.check(syntax.NumberToken, syntax.TrueKeyword, syntax.FalseKeyword) {
		return &LiteralExpression{Token: p.bump()}
	}

	if p.check(syntax.LeftParenthesisToken) {
		open := p.bump()
		inner := p.Parse()
		closing := p.expect(syntax.RightParenthesisToken)
		return &ParenthesizedExpression{Open: open, Inner: inner, Close: closing}
	}

	return &LiteralExpression{Token: p.error()}
}

// check reports whether the next token has one of kinds, remembering
// every kind asked about for the next diagnostic.
func (p *Parser) check(kinds ...syntax.Kind) bool {
	p.expected = append(p.expected, kinds...)
	tok, ok := p.cursor.peek()
	return ok && slices.Contains(kinds, tok.Kind)
}

// expect consumes a token of kind, or records a diagnostic and consumes
// whatever is there instead.
func (p *Parser) expect(kind syntax.Kind) lexer.Token {
	if p.check(kind) {
		return p.bump()
	}
	return p.error()
}

// bump consumes the next token and forgets the expected kinds
func (p *Parser) bump() lexer.Token {
	p.expected = p.expected[:0]
	tok := p.cursor.current()
	p.cursor.next()
	return tok
}

// error records a diagnostic at the next token, naming every kind checked
// since the last consumption, then consumes that token to recover. At the
// end of input there is nothing to consume and an end-of-file token is
// returned.
func (p *Parser) error() lexer.Token {
	tok := p.cursor.current()
	p.diagnostics = append(p.diagnostics, diagnostic.UnexpectedToken(tok.Span, tok.Kind, p.expected))
	return p.bump()
}

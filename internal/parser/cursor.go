package parser

import (
	"github.com/dumbbrain-lang/dumbbrain/internal/lexer"
	"github.com/dumbbrain-lang/dumbbrain/internal/position"
	"github.com/dumbbrain-lang/dumbbrain/internal/syntax"
)

// TokenSource yields tokens one at a time. *lexer.Lexer implements it.
type TokenSource interface {
	Next() (lexer.Token, bool)
}

// sliceSource replays an already lexed token slice.
type sliceSource struct {
	tokens []lexer.Token
	pos    int
}

func (s *sliceSource) Next() (lexer.Token, bool) {
	if s.pos >= len(s.tokens) {
		return lexer.Token{}, false
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, true
}

// cursor is a one-token lookahead over a TokenSource. Trivia is skipped
// before every peek and consume, so grammar rules never see it.
type cursor struct {
	source    TokenSource
	lookahead lexer.Token
	buffered  bool
	done      bool
	end       position.Span // position right after the last token read
	endOffset int
}

func newCursor(source TokenSource) *cursor {
	return &cursor{source: source, end: position.Point(1, 1)}
}

// fill loads the lookahead slot if it is empty
func (c *cursor) fill() {
	if c.buffered || c.done {
		return
	}
	tok, ok := c.source.Next()
	if !ok {
		c.done = true
		return
	}
	c.lookahead = tok
	c.buffered = true
	c.end = position.Point(tok.Span.LastLine, tok.Span.LastColumn)
	c.endOffset = tok.Position + len(tok.Text)
}

// skipTrivia drops whitespace tokens ahead of the cursor
func (c *cursor) skipTrivia() {
	for {
		c.fill()
		if !c.buffered || !c.lookahead.Kind.IsTrivia() {
			return
		}
		c.buffered = false
	}
}

// peek returns the next significant token without consuming it
func (c *cursor) peek() (lexer.Token, bool) {
	c.skipTrivia()
	return c.lookahead, c.buffered
}

// next consumes the next significant token
func (c *cursor) next() (lexer.Token, bool) {
	c.skipTrivia()
	if !c.buffered {
		return lexer.Token{}, false
	}
	c.buffered = false
	return c.lookahead, true
}

// current returns the next significant token, or a synthesized
// end-of-file token positioned right after the input.
func (c *cursor) current() lexer.Token {
	if tok, ok := c.peek(); ok {
		return tok
	}
	return lexer.Token{Kind: syntax.EndOfFileToken, Position: c.endOffset, Span: c.end}
}

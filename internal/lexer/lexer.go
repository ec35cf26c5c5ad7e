// Package lexer implements the DumbBrain lexical analyzer.
package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dumbbrain-lang/dumbbrain/internal/object"
	"github.com/dumbbrain-lang/dumbbrain/internal/position"
	"github.com/dumbbrain-lang/dumbbrain/internal/syntax"
)

const eof = -1

// Lexer turns source text into tokens on demand. It is not resumable
// from the middle of a stream; lex again with a fresh Lexer instead.
type Lexer struct {
	input        string
	position     int  // offset of ch
	readPosition int  // offset after ch
	ch           rune // current char under examination, eof at the end
	line         int  // line of ch
	column       int  // column of ch
}

// New creates a new lexer instance
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 1}
	l.load()
	return l
}

// Lex drains a fresh lexer over input
func Lex(input string) []Token {
	l := New(input)
	var tokens []Token
	for {
		tok, ok := l.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// load decodes the rune at readPosition into ch without moving the
// line/column counters.
func (l *Lexer) load() {
	l.position = l.readPosition
	if l.readPosition >= len(l.input) {
		l.ch = eof
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.readPosition += size
}

// readChar consumes ch and advances the line/column counters past it
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.load()
}

// readWhile consumes characters while pred holds
func (l *Lexer) readWhile(pred func(rune) bool) {
	for l.ch != eof && pred(l.ch) {
		l.readChar()
	}
}

// Next scans the next token. It returns false once the input is exhausted;
// no end-of-file token is produced.
func (l *Lexer) Next() (Token, bool) {
	if l.ch == eof {
		return Token{}, false
	}

	start := l.position
	firstLine, firstColumn := l.line, l.column

	var kind syntax.Kind
	var value object.Object

	switch ch := l.ch; {
	case isDigit(ch):
		l.readWhile(isDigit)
		kind = syntax.NumberToken
		// ParseFloat saturates very long literals to +Inf; keep that value.
		n, _ := strconv.ParseFloat(l.input[start:l.position], 64)
		value = object.Number(n)
	case unicode.IsLetter(ch):
		l.readWhile(isAlphaNumeric)
		kind = syntax.LookupIdent(l.input[start:l.position])
		switch kind {
		case syntax.TrueKeyword:
			value = object.Boolean(true)
		case syntax.FalseKeyword:
			value = object.Boolean(false)
		}
	case unicode.IsSpace(ch):
		l.readWhile(unicode.IsSpace)
		kind = syntax.WhitespaceToken
	default:
		kind = l.readOperator()
	}

	return Token{
		Kind:     kind,
		Position: start,
		Text:     l.input[start:l.position],
		Value:    value,
		Span: position.Span{
			FirstLine:   firstLine,
			FirstColumn: firstColumn,
			LastLine:    l.line,
			LastColumn:  l.column,
		},
	}, true
}

// readOperator consumes a punctuation token of one or two characters
func (l *Lexer) readOperator() syntax.Kind {
	ch := l.ch
	l.readChar()

	switch ch {
	case '+':
		return syntax.PlusToken
	case '-':
		return syntax.MinusToken
	case '*':
		return syntax.StarToken
	case '/':
		return syntax.SlashToken
	case '(':
		return syntax.LeftParenthesisToken
	case ')':
		return syntax.RightParenthesisToken
	case '<':
		if l.ch == '=' {
			l.readChar()
			return syntax.LessEqualsToken
		}
		return syntax.LessToken
	case '>':
		if l.ch == '=' {
			l.readChar()
			return syntax.GreaterEqualsToken
		}
		return syntax.GreaterToken
	case '=':
		if l.ch == '=' {
			l.readChar()
			return syntax.EqualsEqualsToken
		}
	case '!':
		if l.ch == '=' {
			l.readChar()
			return syntax.BangEqualsToken
		}
	case '&':
		if l.ch == '&' {
			l.readChar()
			return syntax.AmpersandAmpersandToken
		}
	case '|':
		if l.ch == '|' {
			l.readChar()
			return syntax.PipePipeToken
		}
	}

	return syntax.BadToken
}

// isDigit checks if character is ASCII digit
func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// isAlphaNumeric checks if character is a letter or a digit
func isAlphaNumeric(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

// Text concatenates the lexemes of tokens
func Text(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Text)
	}
	return b.String()
}

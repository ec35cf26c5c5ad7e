// Package syntax defines the lexical and syntactic categories of DumbBrain
// and the operator binding powers the parser climbs over.
package syntax

import "fmt"

// Kind identifies a token or tree node category
type Kind int

// String returns the CamelCase name of the kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

const (
	// Tokens
	NumberToken Kind = iota
	WhitespaceToken
	PlusToken
	MinusToken
	StarToken
	SlashToken
	EqualsEqualsToken
	BangEqualsToken
	LessToken
	LessEqualsToken
	GreaterToken
	GreaterEqualsToken
	AmpersandAmpersandToken
	PipePipeToken
	LeftParenthesisToken
	RightParenthesisToken
	IdentifierToken
	BadToken
	EndOfFileToken

	// Keywords
	TrueKeyword
	FalseKeyword

	// Tree nodes, for display only
	LiteralExpression
	BinaryExpression
	UnaryExpression
	ParenthesizedExpression
)

var kindNames = map[Kind]string{
	NumberToken:             "NumberToken",
	WhitespaceToken:         "WhitespaceToken",
	PlusToken:               "PlusToken",
	MinusToken:              "MinusToken",
	StarToken:               "StarToken",
	SlashToken:              "SlashToken",
	EqualsEqualsToken:       "EqualsEqualsToken",
	BangEqualsToken:         "BangEqualsToken",
	LessToken:               "LessToken",
	LessEqualsToken:         "LessEqualsToken",
	GreaterToken:            "GreaterToken",
	GreaterEqualsToken:      "GreaterEqualsToken",
	AmpersandAmpersandToken: "AmpersandAmpersandToken",
	PipePipeToken:           "PipePipeToken",
	LeftParenthesisToken:    "LeftParenthesisToken",
	RightParenthesisToken:   "RightParenthesisToken",
	IdentifierToken:         "IdentifierToken",
	BadToken:                "BadToken",
	EndOfFileToken:          "EndOfFileToken",

	TrueKeyword:  "TrueKeyword",
	FalseKeyword: "FalseKeyword",

	LiteralExpression:       "LiteralExpression",
	BinaryExpression:        "BinaryExpression",
	UnaryExpression:         "UnaryExpression",
	ParenthesizedExpression: "ParenthesizedExpression",
}

// keywords maps reserved words to their kinds
var keywords = map[string]Kind{
	"true":  TrueKeyword,
	"false": FalseKeyword,
}

// LookupIdent returns the keyword kind for ident, or IdentifierToken
func LookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return IdentifierToken
}

// IsTrivia reports whether tokens of this kind are skipped by the parser
func (k Kind) IsTrivia() bool {
	return k == WhitespaceToken
}

// IsLiteral reports whether the kind starts a literal expression
func (k Kind) IsLiteral() bool {
	switch k {
	case NumberToken, TrueKeyword, FalseKeyword:
		return true
	default:
		return false
	}
}

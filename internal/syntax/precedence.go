package syntax

// Precedence is an operator binding power. Higher binds tighter; zero means
// the kind is not an operator in that position.
type Precedence int

const (
	NoPrecedence Precedence = 0
	EQUALS       Precedence = 1 // == !=
	LOGICAL      Precedence = 2 // && ||
	LESSGREATER  Precedence = 3 // < <= > >=
	SUM          Precedence = 4 // + -
	PRODUCT      Precedence = 5 // * /
	PREFIX       Precedence = 6 // -X +X
)

// binaryPrecedences maps infix operator kinds to their binding power.
// Equality binds looser than && and ||, so `a && b == c` groups as
// `(a && b) == c`.
var binaryPrecedences = map[Kind]Precedence{
	EqualsEqualsToken: EQUALS,
	BangEqualsToken:   EQUALS,

	AmpersandAmpersandToken: LOGICAL,
	PipePipeToken:           LOGICAL,

	LessToken:          LESSGREATER,
	LessEqualsToken:    LESSGREATER,
	GreaterToken:       LESSGREATER,
	GreaterEqualsToken: LESSGREATER,

	PlusToken:  SUM,
	MinusToken: SUM,

	StarToken:  PRODUCT,
	SlashToken: PRODUCT,
}

// BinaryPrecedence returns the infix binding power of k
func (k Kind) BinaryPrecedence() Precedence {
	return binaryPrecedences[k]
}

// UnaryPrecedence returns the prefix binding power of k
func (k Kind) UnaryPrecedence() Precedence {
	switch k {
	case PlusToken, MinusToken:
		return PREFIX
	default:
		return NoPrecedence
	}
}

// Package binder turns the untyped syntax tree into a typed bound tree.
package binder

import (
	"fmt"

	"github.com/dumbbrain-lang/dumbbrain/internal/object"
)

// BinaryOperation is the semantic operation of an infix operator.
type BinaryOperation int

const (
	Add BinaryOperation = iota
	Subtract
	Multiply
	Divide
	Equality
	Inequality
	Less
	LessEquals
	Greater
	GreaterEquals
	LogicalAnd
	LogicalOr
)

var binaryNames = [...]string{
	Add:           "Add",
	Subtract:      "Subtract",
	Multiply:      "Multiply",
	Divide:        "Divide",
	Equality:      "Equality",
	Inequality:    "Inequality",
	Less:          "Less",
	LessEquals:    "LessEquals",
	Greater:       "Greater",
	GreaterEquals: "GreaterEquals",
	LogicalAnd:    "LogicalAnd",
	LogicalOr:     "LogicalOr",
}

func (op BinaryOperation) String() string {
	if op < 0 || int(op) >= len(binaryNames) {
		return fmt.Sprintf("BinaryOperation(%d)", int(op))
	}
	return binaryNames[op]
}

// IsArithmetic reports whether op takes and yields numbers
func (op BinaryOperation) IsArithmetic() bool { return op <= Divide }

// IsComparison reports whether op compares two values
func (op BinaryOperation) IsComparison() bool { return op >= Equality && op <= GreaterEquals }

// IsLogical reports whether op combines two booleans
func (op BinaryOperation) IsLogical() bool { return op == LogicalAnd || op == LogicalOr }

// UnaryOperation is the semantic operation of a prefix operator.
type UnaryOperation int

const (
	Identity UnaryOperation = iota
	Negation
)

func (op UnaryOperation) String() string {
	switch op {
	case Identity:
		return "Identity"
	case Negation:
		return "Negation"
	default:
		return fmt.Sprintf("UnaryOperation(%d)", int(op))
	}
}

// BoundExpression is a node of the typed tree. The set of implementations
// is closed: *BoundLiteral, *BoundBinary and *BoundUnary. Parentheses do
// not survive binding.
type BoundExpression interface {
	// Type returns the static type of the value the node evaluates to
	Type() object.Type
	String() string
	boundNode()
}

// BoundLiteral holds a literal value. A nil Value means no value was
// available; LiteralType still names the type the literal was bound as.
type BoundLiteral struct {
	Value       object.Object
	LiteralType object.Type
}

type BoundBinary struct {
	Left  BoundExpression
	Right BoundExpression
	Op    BinaryOperation
	typ   object.Type
}

type BoundUnary struct {
	Operand BoundExpression
	Op      UnaryOperation
	typ     object.Type
}

func (l *BoundLiteral) Type() object.Type { return l.LiteralType }
func (b *BoundBinary) Type() object.Type  { return b.typ }
func (u *BoundUnary) Type() object.Type   { return u.typ }

func (l *BoundLiteral) String() string { return object.Describe(l.Value) }
func (b *BoundBinary) String() string  { return fmt.Sprintf("%s(%s, %s)", b.Op, b.Left, b.Right) }
func (u *BoundUnary) String() string   { return fmt.Sprintf("%s(%s)", u.Op, u.Operand) }

func (*BoundLiteral) boundNode() {}
func (*BoundBinary) boundNode()  {}
func (*BoundUnary) boundNode()   {}

// NewBinary builds a binary node with an explicit result type.
func NewBinary(left BoundExpression, op BinaryOperation, right BoundExpression, typ object.Type) *BoundBinary {
	return &BoundBinary{Left: left, Right: right, Op: op, typ: typ}
}

// NewUnary builds a unary node with an explicit result type.
func NewUnary(op UnaryOperation, operand BoundExpression, typ object.Type) *BoundUnary {
	return &BoundUnary{Operand: operand, Op: op, typ: typ}
}

package binder

import (
	"github.com/dumbbrain-lang/dumbbrain/internal/errors"
	"github.com/dumbbrain-lang/dumbbrain/internal/object"
	"github.com/dumbbrain-lang/dumbbrain/internal/parser"
	"github.com/dumbbrain-lang/dumbbrain/internal/syntax"
)

// Bind resolves the static type of every node in expr. Arithmetic and
// prefix operators are checked here; comparison and logical operators are
// typed Boolean and their operands are checked during evaluation. The
// first type error aborts binding.
func Bind(expr parser.Expression) (BoundExpression, error) {
	switch e := expr.(type) {
	case *parser.LiteralExpression:
		return bindLiteral(e)
	case *parser.ParenthesizedExpression:
		return Bind(e.Inner)
	case *parser.BinaryExpression:
		return bindBinary(e)
	case *parser.UnaryExpression:
		return bindUnary(e)
	case nil:
		return nil, errors.Internal("no expression to bind")
	default:
		return nil, errors.Internal("unsupported expression %T", expr)
	}
}

func bindLiteral(e *parser.LiteralExpression) (BoundExpression, error) {
	switch e.Token.Kind {
	case syntax.NumberToken:
		return &BoundLiteral{Value: e.Token.Value, LiteralType: object.TypeNumber}, nil
	case syntax.TrueKeyword, syntax.FalseKeyword:
		return &BoundLiteral{Value: e.Token.Value, LiteralType: object.TypeBoolean}, nil
	default:
		return nil, errors.Internal("cannot bind %s %q at %s as a literal", e.Token.Kind, e.Token.Text, e.Token.Span.Start())
	}
}

func bindBinary(e *parser.BinaryExpression) (BoundExpression, error) {
	left, err := Bind(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := Bind(e.Right)
	if err != nil {
		return nil, err
	}

	op, err := BindBinaryOperator(e.Operator.Kind)
	if err != nil {
		return nil, err
	}

	if !op.IsArithmetic() {
		return NewBinary(left, op, right, object.TypeBoolean), nil
	}
	if left.Type() != object.TypeNumber || right.Type() != object.TypeNumber {
		return nil, errors.TypeMismatch(op, left.Type(), right.Type())
	}
	return NewBinary(left, op, right, object.TypeNumber), nil
}

func bindUnary(e *parser.UnaryExpression) (BoundExpression, error) {
	operand, err := Bind(e.Operand)
	if err != nil {
		return nil, err
	}

	op, err := BindUnaryOperator(e.Operator.Kind)
	if err != nil {
		return nil, err
	}
	if operand.Type() != object.TypeNumber {
		return nil, errors.UnaryTypeMismatch(op, operand.Type())
	}
	return NewUnary(op, operand, object.TypeNumber), nil
}

var binaryOperators = map[syntax.Kind]BinaryOperation{
	syntax.PlusToken:               Add,
	syntax.MinusToken:              Subtract,
	syntax.StarToken:               Multiply,
	syntax.SlashToken:              Divide,
	syntax.EqualsEqualsToken:       Equality,
	syntax.BangEqualsToken:         Inequality,
	syntax.LessToken:               Less,
	syntax.LessEqualsToken:         LessEquals,
	syntax.GreaterToken:            Greater,
	syntax.GreaterEqualsToken:      GreaterEquals,
	syntax.AmpersandAmpersandToken: LogicalAnd,
	syntax.PipePipeToken:           LogicalOr,
}

// BindBinaryOperator maps an infix operator token kind to its operation.
func BindBinaryOperator(kind syntax.Kind) (BinaryOperation, error) {
	if op, ok := binaryOperators[kind]; ok {
		return op, nil
	}
	return 0, errors.Internal("%s is not a binary operator", kind)
}

// BindUnaryOperator maps a prefix operator token kind to its operation.
func BindUnaryOperator(kind syntax.Kind) (UnaryOperation, error) {
	switch kind {
	case syntax.PlusToken:
		return Identity, nil
	case syntax.MinusToken:
		return Negation, nil
	default:
		return 0, errors.Internal("%s is not a unary operator", kind)
	}
}
